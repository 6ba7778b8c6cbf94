package aircrack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/0x6d61/airleech/internal/engine"
	"github.com/0x6d61/airleech/internal/proc"
)

// csvPollInterval is how often a scan stream re-reads airodump's CSV dump.
const csvPollInterval = time.Second

// Airodump runs airodump-ng scan operations.
type Airodump struct{}

// AirodumpCapture runs airodump-ng frame captures scoped to one target.
type AirodumpCapture struct{}

var (
	_ engine.ScanRunner    = Airodump{}
	_ engine.CaptureRunner = AirodumpCapture{}
)

// Start launches a scan operation writing CSV output to a temp dir, and
// tails that file into a sample stream. airodump-ng rewrites the whole
// table on every dump, so each poll re-emits the full table; the
// aggregator's dedup makes re-emission harmless.
func (Airodump) Start(ctx context.Context, spec engine.ScanSpec) (engine.ScanStream, error) {
	dir, err := os.MkdirTemp("", "airleech-scan-")
	if err != nil {
		return nil, fmt.Errorf("airodump: temp dir: %w", err)
	}
	prefix := filepath.Join(dir, "dump")
	csvPath := prefix + "-01.csv"

	args := []string{"--output-format", "csv", "--write", prefix, "--write-interval", "1"}
	if spec.Kind == engine.SampleClient || spec.BSSID != "" {
		args = append(args, "--bssid", spec.BSSID, "--channel", strconv.Itoa(spec.Channel))
	}
	args = append(args, spec.Interface)

	h, err := proc.Start("airodump-ng", args, proc.WithArtifacts(csvPath))
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	s := &scanStream{
		kind:    spec.Kind,
		handle:  h,
		dir:     dir,
		csvPath: csvPath,
		samples: make(chan engine.Sample),
		quit:    make(chan struct{}),
	}
	go s.poll(ctx)
	return s, nil
}

// scanStream tails one airodump CSV dump into a Sample channel.
type scanStream struct {
	kind    engine.SampleKind
	handle  *proc.Handle
	dir     string
	csvPath string
	samples chan engine.Sample
	quit    chan struct{}
	once    sync.Once
}

func (s *scanStream) Samples() <-chan engine.Sample { return s.samples }

// Stop terminates the scan process, stops the poller, and removes the
// stream's working files. Idempotent.
func (s *scanStream) Stop() error {
	var err error
	s.once.Do(func() {
		close(s.quit)
		err = s.handle.Stop()
		os.RemoveAll(s.dir)
	})
	return err
}

// poll re-reads the CSV dump on a fixed cadence and pushes every parsed
// sample of the stream's kind. The channel is closed when the stream
// stops.
func (s *scanStream) poll(ctx context.Context) {
	defer close(s.samples)

	ticker := time.NewTicker(csvPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
		}

		data, err := os.ReadFile(s.csvPath)
		if err != nil {
			// The dump appears a moment after the process starts.
			continue
		}
		for _, sample := range parseAirodumpCSV(string(data)) {
			if sample.Kind != s.kind {
				continue
			}
			select {
			case s.samples <- sample:
			case <-ctx.Done():
				return
			case <-s.quit:
				return
			}
		}
	}
}

// Start launches a frame capture scoped to one target, writing the pcap
// artifact to a temp dir.
func (AirodumpCapture) Start(ctx context.Context, iface string, target engine.Network) (engine.Capture, error) {
	dir, err := os.MkdirTemp("", "airleech-cap-")
	if err != nil {
		return nil, fmt.Errorf("airodump: temp dir: %w", err)
	}
	prefix := filepath.Join(dir, "capture")

	args := []string{
		"--bssid", target.BSSID,
		"--channel", strconv.Itoa(target.Channel),
		"--write", prefix,
		"--output-format", "pcap",
		iface,
	}
	h, err := proc.Start("airodump-ng", args)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	return &captureOp{handle: h, dir: dir, path: prefix + "-01.cap"}, nil
}

// captureOp is one running frame capture. The cap file is left in place on
// Stop; the engine copies it out before the temp dir goes away at process
// exit, and keeping it briefly costs nothing.
type captureOp struct {
	handle *proc.Handle
	dir    string
	path   string
	once   sync.Once
}

func (c *captureOp) Path() string { return c.path }

func (c *captureOp) Stop() error {
	var err error
	c.once.Do(func() {
		err = c.handle.Stop()
	})
	return err
}
