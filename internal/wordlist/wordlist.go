// Package wordlist resolves the candidate-passphrase file for cracking.
package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the bundled wordlist filename, created next to the
// working directory when no custom list is supplied.
const DefaultName = "airleech.txt"

// defaultEntries seeds a freshly created default wordlist. It exists so a
// first run works end to end; operators are expected to point --wordlist
// at a real dictionary.
var defaultEntries = []byte("password\n12345678\nqwerty123\nadmin123\nwifi12345\n")

// Resolve returns the wordlist path to use. A non-empty custom path must
// already exist. With no custom path, the default list under dir is
// returned, created with starter entries when missing.
func Resolve(custom, dir string) (string, error) {
	if custom != "" {
		abs, err := filepath.Abs(custom)
		if err != nil {
			return "", fmt.Errorf("wordlist: resolve %s: %w", custom, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("wordlist: %s: %w", abs, err)
		}
		return abs, nil
	}

	path := filepath.Join(dir, DefaultName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, defaultEntries, 0o644); err != nil {
		return "", fmt.Errorf("wordlist: create default %s: %w", path, err)
	}
	return path, nil
}
