package aircrack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/0x6d61/airleech/internal/engine"
	"github.com/0x6d61/airleech/internal/proc"
)

// keyFoundRe extracts the passphrase from aircrack-ng's success banner:
// "KEY FOUND! [ passphrase ]".
var keyFoundRe = regexp.MustCompile(`KEY FOUND!\s*\[\s*(.*?)\s*\]`)

// corruptMarkers are aircrack-ng phrases that mean the capture file itself
// is unreadable, as opposed to merely lacking a handshake.
var corruptMarkers = []string{
	"Unsupported file format",
	"Invalid packet capture",
	"read(file header) failed",
}

// Aircrack wraps aircrack-ng for handshake validation and dictionary
// cracking. It satisfies engine.Verifier and engine.Cracker.
type Aircrack struct{}

var (
	_ engine.Verifier = Aircrack{}
	_ engine.Cracker  = Aircrack{}
)

// HasHandshake reports whether path holds a complete 4-way handshake for
// bssid. A missing file is simply "no handshake yet"; an unreadable one is
// engine.ErrArtifactCorrupt.
func (Aircrack) HasHandshake(ctx context.Context, path, bssid string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}

	// An empty wordlist makes aircrack-ng report handshake presence and
	// exit without cracking anything.
	out, err := proc.Run(ctx, "aircrack-ng", "-b", bssid, "-w", "/dev/null", path)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if isCorrupt(out) {
		return false, fmt.Errorf("%s: %w", path, engine.ErrArtifactCorrupt)
	}
	if strings.Contains(out, "1 handshake") {
		return true, nil
	}
	// Non-zero exit without a handshake marker just means "keep waiting".
	_ = err
	return false, nil
}

// Crack runs one dictionary attack and returns the recovered passphrase.
// Wordlist exhaustion is engine.ErrKeyNotFound; an unreadable artifact is
// engine.ErrArtifactCorrupt.
func (Aircrack) Crack(ctx context.Context, path, wordlist, bssid string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s: %w", path, engine.ErrArtifactCorrupt)
	}
	if _, err := os.Stat(wordlist); err != nil {
		return "", fmt.Errorf("wordlist %s: %w", wordlist, err)
	}

	out, err := proc.Run(ctx, "aircrack-ng", "-w", wordlist, "-b", bssid, "-q", path)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if isCorrupt(out) {
		return "", fmt.Errorf("%s: %w", path, engine.ErrArtifactCorrupt)
	}
	if m := keyFoundRe.FindStringSubmatch(out); m != nil {
		return m[1], nil
	}
	var spawn *proc.SpawnError
	if errors.As(err, &spawn) {
		return "", spawn
	}
	return "", engine.ErrKeyNotFound
}

func isCorrupt(out string) bool {
	for _, marker := range corruptMarkers {
		if strings.Contains(out, marker) {
			return true
		}
	}
	return false
}
