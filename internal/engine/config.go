package engine

import "time"

// Config holds configuration for one orchestrator run.
type Config struct {
	Interface       string        // wireless interface in managed mode
	HandshakeDir    string        // where captured artifacts are kept
	WordlistPath    string        // candidate passphrase file
	DetectDeadline  time.Duration // client-detection pass length
	CaptureDeadline time.Duration // handshake capture budget per target
	DecloakDeadline time.Duration // hidden-SSID reveal pass length
	PollInterval    time.Duration // artifact validity poll cadence
	DeauthInterval  time.Duration // burst cadence per deauth pool
	Verbose         int           // verbosity level 0-3
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HandshakeDir:    "handshakes",
		DetectDeadline:  15 * time.Second,
		CaptureDeadline: 60 * time.Second,
		DecloakDeadline: 10 * time.Second,
		PollInterval:    time.Second,
		DeauthInterval:  3 * time.Second,
	}
}
