// Package aircrack adapts the aircrack-ng tool suite (airmon-ng,
// airodump-ng, aireplay-ng, aircrack-ng) to the engine's collaborator
// interfaces. Every tool is treated as an opaque command with a known
// argument and output contract.
package aircrack

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/0x6d61/airleech/internal/proc"
)

// monitorNameRe extracts the monitor interface name from airmon-ng output.
// Covers both the legacy "Created monitor mode interface wlan0mon" line and
// the mac80211 "monitor mode vif enabled ... on [phy0]wlan0mon" form.
var monitorNameRe = []*regexp.Regexp{
	regexp.MustCompile(`Created monitor mode interface (\w+)`),
	regexp.MustCompile(`monitor mode (?:vif )?enabled (?:for \S+ )?on (?:\[\w+\])?(\w+)`),
}

// Airmon switches adapters in and out of monitor mode via airmon-ng.
// Enable and restore are idempotent per interface.
type Airmon struct {
	mu      sync.Mutex
	enabled map[string]string // managed iface -> monitor iface
}

// NewAirmon creates an adapter manager.
func NewAirmon() *Airmon {
	return &Airmon{enabled: make(map[string]string)}
}

// EnableMonitor puts iface into monitor mode and returns the monitor
// interface name. Interfering services are killed first, the way the suite
// documents (airmon-ng check kill).
func (a *Airmon) EnableMonitor(ctx context.Context, iface string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if mon, ok := a.enabled[iface]; ok {
		return mon, nil
	}

	// Best effort; airmon-ng start still works when nothing interferes.
	_, _ = proc.Run(ctx, "airmon-ng", "check", "kill")

	out, err := proc.Run(ctx, "airmon-ng", "start", iface)
	if err != nil {
		return "", fmt.Errorf("airmon-ng start %s: %w", iface, err)
	}

	mon := parseMonitorName(out)
	if mon == "" {
		// airmon-ng's usual fallback naming.
		mon = iface + "mon"
	}

	a.enabled[iface] = mon
	return mon, nil
}

// Restore takes the interface back out of monitor mode and restarts
// NetworkManager so the managed interface reconnects. A second call for
// the same interface is a no-op.
func (a *Airmon) Restore(ctx context.Context, iface string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	mon, ok := a.enabled[iface]
	if !ok {
		return nil
	}
	delete(a.enabled, iface)

	if _, err := proc.Run(ctx, "airmon-ng", "stop", mon); err != nil {
		return fmt.Errorf("airmon-ng stop %s: %w", mon, err)
	}
	// Best effort; absent NetworkManager is not an error.
	_, _ = proc.Run(ctx, "service", "NetworkManager", "restart")
	return nil
}

func parseMonitorName(out string) string {
	for _, re := range monitorNameRe {
		if m := re.FindStringSubmatch(out); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
