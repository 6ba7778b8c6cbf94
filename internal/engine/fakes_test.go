package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// --- fake tool suite -------------------------------------------------------

type fakeStream struct {
	ch   chan Sample
	once sync.Once
}

func (s *fakeStream) Samples() <-chan Sample { return s.ch }

func (s *fakeStream) Stop() error {
	s.once.Do(func() { close(s.ch) })
	return nil
}

// fakeScans serves pre-baked samples per scan kind. Each Start returns a
// stream pre-filled with the matching sample set; the stream stays open
// until stopped.
type fakeScans struct {
	mu             sync.Mutex
	networkSamples []Sample // all-channel network sweep
	clientSamples  []Sample // targeted client-mode scan
	decloakSamples []Sample // targeted network-mode scan (hidden SSID pass)
	startErr       error
	started        []ScanSpec
}

func (f *fakeScans) Start(ctx context.Context, spec ScanSpec) (ScanStream, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.mu.Lock()
	f.started = append(f.started, spec)
	f.mu.Unlock()

	var samples []Sample
	switch {
	case spec.Kind == SampleClient:
		samples = f.clientSamples
	case spec.BSSID != "":
		samples = f.decloakSamples
	default:
		samples = f.networkSamples
	}

	st := &fakeStream{ch: make(chan Sample, len(samples)+1)}
	for _, s := range samples {
		st.ch <- s
	}
	return st, nil
}

func (f *fakeScans) startedSpecs() []ScanSpec {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ScanSpec(nil), f.started...)
}

type fakeDeauther struct {
	mu       sync.Mutex
	stations []string
	onBurst  func(bssid string)
}

func (d *fakeDeauther) Burst(ctx context.Context, iface, bssid, station string) error {
	d.mu.Lock()
	d.stations = append(d.stations, station)
	hook := d.onBurst
	d.mu.Unlock()
	if hook != nil {
		hook(bssid)
	}
	return nil
}

func (d *fakeDeauther) bursts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.stations...)
}

type fakeCapture struct {
	path  string
	mu    sync.Mutex
	stops int
}

func (c *fakeCapture) Path() string { return c.path }

func (c *fakeCapture) Stop() error {
	c.mu.Lock()
	c.stops++
	c.mu.Unlock()
	return nil
}

type fakeCaptureRunner struct {
	mu       sync.Mutex
	startErr error
	captures []*fakeCapture
	dir      string // capture files are created here
}

func (f *fakeCaptureRunner) Start(ctx context.Context, iface string, target Network) (Capture, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path := filepath.Join(f.dir, fmt.Sprintf("capture-%d-01.cap", len(f.captures)))
	if err := os.WriteFile(path, []byte("frames"), 0o644); err != nil {
		return nil, err
	}
	c := &fakeCapture{path: path}
	f.captures = append(f.captures, c)
	return c, nil
}

// fakeVerifier delegates to fn so tests can script per-path, per-poll
// behavior.
type fakeVerifier struct {
	mu    sync.Mutex
	polls int
	fn    func(path string, poll int) (bool, error)
}

func (v *fakeVerifier) HasHandshake(ctx context.Context, path, bssid string) (bool, error) {
	v.mu.Lock()
	v.polls++
	poll := v.polls
	v.mu.Unlock()
	if v.fn == nil {
		return false, nil
	}
	return v.fn(path, poll)
}

type fakeCracker struct {
	pass string
	err  error
}

func (c *fakeCracker) Crack(ctx context.Context, path, wordlist, bssid string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.pass, nil
}

type fakeAdapter struct {
	mu        sync.Mutex
	enableErr error
	enables   int
	restores  int
}

func (a *fakeAdapter) EnableMonitor(ctx context.Context, iface string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enableErr != nil {
		return "", a.enableErr
	}
	a.enables++
	return iface + "mon", nil
}

func (a *fakeAdapter) Restore(ctx context.Context, iface string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.restores++
	return nil
}

// --- fake console ----------------------------------------------------------

type fakeConsole struct {
	mu         sync.Mutex
	progress   []string
	selections []string
	confirm    bool
}

func (c *fakeConsole) Progressf(format string, args ...any) {
	c.mu.Lock()
	c.progress = append(c.progress, fmt.Sprintf(format, args...))
	c.mu.Unlock()
}

func (c *fakeConsole) ShowNetworks(networks []Network) {}
func (c *fakeConsole) ShowClients(clients []Client)    {}

// WaitForStop returns immediately: the live scan stops as soon as the
// buffered samples are drained.
func (c *fakeConsole) WaitForStop(ctx context.Context) error {
	return nil
}

func (c *fakeConsole) ReadSelection(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.selections) == 0 {
		return "", io.EOF
	}
	sel := c.selections[0]
	c.selections = c.selections[1:]
	return sel, nil
}

func (c *fakeConsole) Confirm(prompt string) bool { return c.confirm }

func (c *fakeConsole) progressLines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.progress...)
}

// --- helpers ---------------------------------------------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOrchestrator(t *testing.T, cfg *Config, tools Toolset, console Console, opts ...Option) *Orchestrator {
	t.Helper()
	opts = append(opts, WithLogger(testLogger()))
	return NewOrchestrator(cfg, tools, console, opts...)
}
