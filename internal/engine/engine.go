// Package engine provides the core capture orchestration pipeline.
package engine

import "time"

// HiddenSSID is the sentinel stored for networks that broadcast no name.
const HiddenSSID = "<hidden>"

// Network represents one discovered access point for the current session.
type Network struct {
	// ID is the display id assigned at snapshot time. It is recomputed on
	// every snapshot and must not be used to re-identify a network later;
	// use the BSSID for that.
	ID         int
	BSSID      string
	SSID       string
	Channel    int
	Signal     int // normalized 0-100
	Encryption Encryption
	Vendor     string
	FirstSeen  time.Time
	LastSeen   time.Time
}

// Hidden reports whether the network still carries the hidden-SSID sentinel.
func (n Network) Hidden() bool {
	return n.SSID == HiddenSSID
}

// Client represents one station seen associated with (or probing) a target
// network during a single client-detection pass.
type Client struct {
	MAC       string
	Vendor    string
	FirstSeen time.Time
	LastSeen  time.Time
}

// Encryption classifies the security of a discovered network.
type Encryption int

const (
	EncUnknown Encryption = iota
	EncOpen
	EncWEP
	EncWPA
	EncWPA2
	EncWPA3
	EncMixed
)

// String returns the encryption name as shown in scan listings.
func (e Encryption) String() string {
	names := [...]string{"?", "OPN", "WEP", "WPA", "WPA2", "WPA3", "WPA/WPA2"}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "?"
}

// Status is the terminal state of one processed target.
type Status int

const (
	StatusSuccess Status = iota // handshake captured and passphrase recovered
	StatusHandshakeOnly
	StatusFailed
	StatusSkipped
	StatusAborted
)

// String returns the status name.
func (s Status) String() string {
	names := [...]string{"success", "handshake-only", "failed", "skipped", "aborted"}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// TargetOutcome is the finalized result record for one processed target.
type TargetOutcome struct {
	Network        Network
	Captured       bool
	CrackAttempted bool
	Passphrase     string // empty unless Status is StatusSuccess
	CapturePath    string // retained artifact, empty if none was written
	Status         Status
	FinishedAt     time.Time
}

// RunResult holds the complete result of one orchestrator run.
type RunResult struct {
	Interface        string
	MonitorInterface string
	WordlistPath     string
	StartTime        time.Time
	EndTime          time.Time
	Outcomes         []TargetOutcome
}

// CapturedCount returns the number of targets with a captured handshake.
func (r *RunResult) CapturedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Captured {
			n++
		}
	}
	return n
}

// CrackedCount returns the number of targets whose passphrase was recovered.
func (r *RunResult) CrackedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// SignalPercent converts a dBm power reading into a 0-100 quality figure.
// The mapping is the usual linear approximation: -100 dBm -> 0, -30 dBm -> 100.
func SignalPercent(dbm int) int {
	pct := (dbm + 100) * 100 / 70
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
