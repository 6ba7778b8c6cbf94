package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Orchestrator drives a full run: live scan, target selection, then the
// per-target detect -> capture -> crack pipeline, sequentially. The radio
// is a single exclusive resource, so targets are never processed in
// parallel and a new scan/capture operation only starts after the previous
// one's handle is stopped.
type Orchestrator struct {
	cfg     *Config
	tools   Toolset
	console Console
	vendors VendorLookup
	logger  *slog.Logger
	now     func() time.Time

	// onOutcome is called once per finalized target outcome, in order.
	onOutcome func(TargetOutcome)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithVendorLookup sets the MAC-vendor resolver applied to snapshots.
func WithVendorLookup(fn VendorLookup) Option {
	return func(o *Orchestrator) { o.vendors = fn }
}

// WithOutcomeCallback sets a function called with each finalized outcome.
func WithOutcomeCallback(fn func(TargetOutcome)) Option {
	return func(o *Orchestrator) { o.onOutcome = fn }
}

// WithLogger overrides the verbosity-derived logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// NewOrchestrator creates an orchestrator with all collaborators wired up.
func NewOrchestrator(cfg *Config, tools Toolset, console Console, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logLevel := slog.LevelError
	switch {
	case cfg.Verbose >= 3:
		logLevel = slog.LevelDebug
	case cfg.Verbose >= 2:
		logLevel = slog.LevelInfo
	case cfg.Verbose >= 1:
		logLevel = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	o := &Orchestrator{
		cfg:     cfg,
		tools:   tools,
		console: console,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the whole session.
//
// Pipeline:
//  1. Enable monitor mode (failure is fatal to the run)
//  2. Live scan until the operator stops it; take the final snapshot
//  3. Resolve the operator's selection into an ordered target list
//  4. Per target, sequentially: detect clients -> capture handshake -> crack
//  5. Finalize one outcome per started target
//
// Adapter restore runs on every exit path. On interrupt the in-flight
// target is finalized as aborted and earlier outcomes are kept; Run then
// returns the partial result together with ctx.Err().
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		Interface:    o.cfg.Interface,
		WordlistPath: o.cfg.WordlistPath,
		StartTime:    o.now(),
	}
	defer func() { result.EndTime = o.now() }()

	mon, err := o.tools.Adapter.EnableMonitor(ctx, o.cfg.Interface)
	if err != nil {
		return result, &AdapterError{Interface: o.cfg.Interface, Op: "enable", Err: err}
	}
	result.MonitorInterface = mon
	o.console.Progressf("monitor mode active on %s", mon)

	defer func() {
		// Restore must happen even after interrupt, so it gets its own
		// short-lived context.
		rctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if rerr := o.tools.Adapter.Restore(rctx, o.cfg.Interface); rerr != nil {
			o.logger.Error("adapter restore failed", "interface", o.cfg.Interface, "error", rerr)
			o.console.Progressf("warning: failed to restore %s: %v", o.cfg.Interface, rerr)
		}
	}()

	snapshot, err := o.liveScan(ctx, mon)
	if err != nil {
		return result, err
	}
	if len(snapshot) == 0 {
		return result, ErrNoNetworks
	}
	o.console.Progressf("%d networks found", len(snapshot))

	targets, err := o.selectTargets(ctx, snapshot)
	if err != nil {
		return result, err
	}

	for i, target := range targets {
		o.console.Progressf("[%d/%d] processing %s (%s)", i+1, len(targets), target.SSID, target.BSSID)

		outcome := o.processTarget(ctx, mon, target)
		result.Outcomes = append(result.Outcomes, outcome)
		if o.onOutcome != nil {
			o.onOutcome(outcome)
		}
		o.console.Progressf("[%d/%d] %s: %s", i+1, len(targets), target.SSID, outcome.Status)

		if outcome.Status == StatusAborted || ctx.Err() != nil {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// liveScan aggregates the continuous network scan until the operator stops
// it or ctx is cancelled, then returns the final snapshot with vendors
// resolved.
func (o *Orchestrator) liveScan(ctx context.Context, mon string) ([]Network, error) {
	agg := NewAggregator(ModeNetworks)

	stream, err := o.tools.Scans.Start(ctx, ScanSpec{Interface: mon, Kind: SampleNetwork})
	if err != nil {
		return nil, fmt.Errorf("start scan: %w", err)
	}
	defer stream.Stop()

	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		for s := range stream.Samples() {
			agg.Observe(s)
		}
	}()

	o.console.Progressf("scanning for networks, press any key to stop")

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = o.console.WaitForStop(ctx)
	}()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	last := -1
wait:
	for {
		select {
		case <-ctx.Done():
			break wait
		case <-stopped:
			break wait
		case <-ticker.C:
			if n := agg.Len(); n != last {
				o.console.Progressf("%d networks discovered so far", n)
				last = n
			}
		}
	}

	stream.Stop()
	<-consumed

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := agg.Snapshot()
	if o.vendors != nil {
		for i := range snap {
			snap[i].Vendor = o.vendors(snap[i].BSSID)
		}
	}
	return snap, nil
}

// selectTargets shows the frozen snapshot and loops until the operator's
// selection parses cleanly. Invalid input redisplays, it does not abort.
func (o *Orchestrator) selectTargets(ctx context.Context, snapshot []Network) ([]Network, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o.console.ShowNetworks(snapshot)

		input, err := o.console.ReadSelection(ctx)
		if err != nil {
			return nil, fmt.Errorf("read selection: %w", err)
		}

		ids, err := ParseSelection(input, len(snapshot))
		if err != nil {
			o.console.Progressf("invalid selection: %v", err)
			continue
		}

		targets := make([]Network, len(ids))
		for i, id := range ids {
			targets[i] = snapshot[id-1]
		}
		return targets, nil
	}
}

// processTarget runs the full per-target pipeline and always returns a
// finalized outcome. Stage-local failures become a failed outcome; the run
// keeps going. Only interrupt produces StatusAborted.
func (o *Orchestrator) processTarget(ctx context.Context, mon string, target Network) (outcome TargetOutcome) {
	outcome = TargetOutcome{Network: target}
	defer func() { outcome.FinishedAt = o.now() }()

	// Open networks have no handshake to take.
	if target.Encryption == EncOpen {
		o.console.Progressf("%s is an open network, skipping", target.SSID)
		outcome.Status = StatusSkipped
		return outcome
	}

	artifact := ArtifactPath(o.cfg.HandshakeDir, target)
	outcome.CapturePath = artifact

	// Reuse is opt-in and never trusted on file presence alone: the
	// validity check runs before the operator is even asked.
	if _, err := os.Stat(artifact); err == nil {
		ok, verr := o.tools.Verify.HasHandshake(ctx, artifact, target.BSSID)
		if verr == nil && ok && o.console.Confirm(fmt.Sprintf("valid handshake exists at %s, reuse it and skip capture?", artifact)) {
			o.console.Progressf("reusing existing handshake for %s", target.SSID)
			outcome.Captured = true
		}
	}

	if !outcome.Captured {
		if target.Hidden() {
			if ssid := o.decloak(ctx, mon, target); ssid != "" {
				o.console.Progressf("hidden SSID revealed: %s", ssid)
				target.SSID = ssid
				outcome.Network.SSID = ssid
				artifact = ArtifactPath(o.cfg.HandshakeDir, target)
				outcome.CapturePath = artifact
			} else if ctx.Err() == nil {
				o.console.Progressf("could not reveal hidden SSID, capturing anyway")
			}
		}

		clients, err := o.DetectClients(ctx, mon, target, o.cfg.DetectDeadline)
		if err != nil {
			if ctx.Err() != nil {
				outcome.Status = StatusAborted
				return outcome
			}
			o.console.Progressf("client detection failed: %v", err)
			outcome.Status = StatusFailed
			return outcome
		}
		o.console.ShowClients(clients)

		cap, err := o.CaptureHandshake(ctx, mon, target, clients, artifact, o.cfg.CaptureDeadline)
		outcome.Captured = cap.Captured
		if err != nil {
			if ctx.Err() != nil {
				outcome.Status = StatusAborted
				return outcome
			}
			o.console.Progressf("capture failed: %v", err)
			outcome.Status = StatusFailed
			return outcome
		}
		if !cap.Captured {
			o.console.Progressf("no handshake for %s within deadline", target.SSID)
			outcome.Status = StatusFailed
			return outcome
		}
	}

	outcome.CrackAttempted = true
	o.console.Progressf("cracking %s with %s", target.SSID, o.cfg.WordlistPath)

	pw, err := o.tools.Crack.Crack(ctx, artifact, o.cfg.WordlistPath, target.BSSID)
	switch {
	case err == nil:
		outcome.Passphrase = pw
		outcome.Status = StatusSuccess
		o.console.Progressf("passphrase found for %s: %s", target.SSID, pw)
	case errors.Is(err, ErrKeyNotFound):
		outcome.Status = StatusHandshakeOnly
		o.console.Progressf("passphrase not in wordlist for %s, handshake kept at %s", target.SSID, artifact)
	case ctx.Err() != nil:
		outcome.Status = StatusAborted
	default:
		o.console.Progressf("crack failed: %v", err)
		outcome.Status = StatusFailed
	}
	return outcome
}
