package engine

import "context"

// --------------------------------------------------------------------------
// Interfaces for the external capture/crack tool suite (dependency injection)
// --------------------------------------------------------------------------

// SampleKind distinguishes network sightings from client sightings.
type SampleKind int

const (
	SampleNetwork SampleKind = iota
	SampleClient
)

// Sample is one parsed sighting from a scan operation's output stream.
type Sample struct {
	Kind       SampleKind
	BSSID      string // access point address, both kinds
	SSID       string // empty when the network hides its name
	Channel    int
	SignalDBM  int
	Encryption Encryption
	Station    string // client address, SampleClient only
}

// ScanSpec describes one scan operation to start.
type ScanSpec struct {
	Interface string
	Kind      SampleKind // SampleNetwork = all-channel sweep, SampleClient = single target
	BSSID     string     // target filter, SampleClient only
	Channel   int        // target channel, SampleClient only
}

// ScanStream is a live scan operation. Samples is closed when the operation
// stops. Stop is idempotent.
type ScanStream interface {
	Samples() <-chan Sample
	Stop() error
}

// ScanRunner starts scan operations.
type ScanRunner interface {
	Start(ctx context.Context, spec ScanSpec) (ScanStream, error)
}

// Capture is a running frame-capture operation writing to Path. Stop is
// idempotent and must terminate the underlying process.
type Capture interface {
	Path() string
	Stop() error
}

// CaptureRunner starts frame captures scoped to one target.
type CaptureRunner interface {
	Start(ctx context.Context, iface string, target Network) (Capture, error)
}

// Deauther issues one deauthentication burst. An empty station means a
// broadcast deauth against all clients of the BSSID. Bursts are idempotent;
// sending an extra one is harmless.
type Deauther interface {
	Burst(ctx context.Context, iface, bssid, station string) error
}

// Verifier answers whether a capture artifact holds a complete handshake.
// It returns ErrArtifactCorrupt when the file exists but cannot be parsed.
type Verifier interface {
	HasHandshake(ctx context.Context, path, bssid string) (bool, error)
}

// Cracker runs one dictionary attack against an artifact. It returns the
// recovered passphrase, ErrKeyNotFound on wordlist exhaustion, or
// ErrArtifactCorrupt when the artifact is unreadable.
type Cracker interface {
	Crack(ctx context.Context, path, wordlist, bssid string) (string, error)
}

// Adapter switches the wireless interface in and out of monitor mode.
// Both operations are idempotent and called exactly once per run.
type Adapter interface {
	EnableMonitor(ctx context.Context, iface string) (string, error)
	Restore(ctx context.Context, iface string) error
}

// VendorLookup resolves a hardware address prefix to a vendor label.
// It must not block; an empty result is valid and displayed silently.
type VendorLookup func(mac string) string

// Toolset bundles the external collaborators the orchestrator drives.
type Toolset struct {
	Scans   ScanRunner
	Capture CaptureRunner
	Deauth  Deauther
	Verify  Verifier
	Crack   Cracker
	Adapter Adapter
}

// Console is the presentation surface the orchestrator talks to. It is a
// pure sink plus operator prompts; no core logic lives behind it.
type Console interface {
	// Progressf prints one status line.
	Progressf(format string, args ...any)

	// ShowNetworks renders the current network table.
	ShowNetworks(networks []Network)

	// ShowClients renders the client table for one detection pass.
	ShowClients(clients []Client)

	// WaitForStop blocks until the operator asks to stop the live scan or
	// ctx is cancelled.
	WaitForStop(ctx context.Context) error

	// ReadSelection prompts for a target selection string.
	ReadSelection(ctx context.Context) (string, error)

	// Confirm asks a yes/no question, defaulting to no.
	Confirm(prompt string) bool
}
