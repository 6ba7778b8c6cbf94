package engine

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by a Cracker when the wordlist is exhausted
// without a match. It is an expected result, not a pipeline failure.
var ErrKeyNotFound = errors.New("passphrase not in wordlist")

// ErrArtifactCorrupt is returned when a capture artifact cannot be read by
// the verification or cracking tool. It is distinct from ErrKeyNotFound
// because the operator remediation differs (recapture vs. bigger wordlist).
var ErrArtifactCorrupt = errors.New("capture artifact unreadable")

// ErrNoNetworks is returned by Run when the live scan ends with an empty
// network table.
var ErrNoNetworks = errors.New("no networks discovered")

// AdapterError reports a monitor-mode enable or restore failure. It is
// fatal to the whole run.
type AdapterError struct {
	Interface string
	Op        string // "enable" or "restore"
	Err       error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter %s: %s failed: %v", e.Interface, e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }
