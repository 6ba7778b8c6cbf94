package aircrack

import (
	"fmt"
	"os/exec"
	"strings"
)

// requiredTools is the full suite the pipeline shells out to.
var requiredTools = []string{"airmon-ng", "airodump-ng", "aireplay-ng", "aircrack-ng"}

// Preflight verifies every required external tool is on PATH. Run it
// before touching the adapter so a missing tool fails fast instead of
// mid-capture.
func Preflight() error {
	var missing []string
	for _, tool := range requiredTools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (install the aircrack-ng suite)",
			strings.Join(missing, ", "))
	}
	return nil
}
