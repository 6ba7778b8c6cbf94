package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelection resolves an operator selection string against a snapshot of
// n networks. Accepted forms: single ids ("2"), comma lists ("1, 3"),
// ranges ("2-4"), and "all". Returned positions are 1-based and keep the
// operator's ordering. Duplicates and out-of-range ids are reported as
// errors, not silently dropped.
func ParseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty selection")
	}
	if n <= 0 {
		return nil, fmt.Errorf("no networks to select from")
	}

	if strings.EqualFold(input, "all") {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}

	seen := make(map[int]bool)
	var out []int

	add := func(id int) error {
		if id < 1 || id > n {
			return fmt.Errorf("selection %d out of range 1-%d", id, n)
		}
		if seen[id] {
			return fmt.Errorf("duplicate selection %d", id)
		}
		seen[id] = true
		out = append(out, id)
		return nil
	}

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty entry in selection %q", input)
		}

		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid range start %q", lo)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid range end %q", hi)
			}
			if end < start {
				return nil, fmt.Errorf("inverted range %q", part)
			}
			for id := start; id <= end; id++ {
				if err := add(id); err != nil {
					return nil, err
				}
			}
			continue
		}

		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid selection entry %q", part)
		}
		if err := add(id); err != nil {
			return nil, err
		}
	}

	return out, nil
}
