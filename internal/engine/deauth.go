package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// maxDeauthWorkers caps the number of concurrent deauth goroutines no
// matter how many clients were detected.
const maxDeauthWorkers = 4

// deauthPool issues deauthentication bursts at a fixed cadence against a
// set of stations. With no stations it falls back to broadcast deauth.
// Bursts within one pool share a single rate limiter so the aggregate
// cadence stays bounded regardless of worker count.
type deauthPool struct {
	deauther Deauther
	limiter  *rate.Limiter
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	bursts atomic.Int64
}

// newDeauthPool creates a pool sending at most one burst per interval.
func newDeauthPool(d Deauther, interval time.Duration, logger *slog.Logger) *deauthPool {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &deauthPool{
		deauther: d,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

// start launches the workers. Stations are distributed round-robin across
// at most maxDeauthWorkers goroutines; an empty station list starts a
// single broadcast worker.
func (p *deauthPool) start(ctx context.Context, iface, bssid string, stations []string) {
	ctx, p.cancel = context.WithCancel(ctx)

	if len(stations) == 0 {
		p.wg.Add(1)
		go p.worker(ctx, iface, bssid, []string{""})
		return
	}

	workers := len(stations)
	if workers > maxDeauthWorkers {
		workers = maxDeauthWorkers
	}
	for i := 0; i < workers; i++ {
		var mine []string
		for j := i; j < len(stations); j += workers {
			mine = append(mine, stations[j])
		}
		p.wg.Add(1)
		go p.worker(ctx, iface, bssid, mine)
	}
}

// worker cycles through its stations, one burst per limiter tick, until
// the context is cancelled.
func (p *deauthPool) worker(ctx context.Context, iface, bssid string, stations []string) {
	defer p.wg.Done()

	for i := 0; ; i++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return
		}
		station := stations[i%len(stations)]
		if err := p.deauther.Burst(ctx, iface, bssid, station); err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Debug("deauth burst failed",
				"bssid", bssid, "station", station, "error", err)
			continue
		}
		p.bursts.Add(1)
	}
}

// stop cancels all workers and waits for them to exit.
func (p *deauthPool) stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// sent returns the number of bursts successfully issued so far.
func (p *deauthPool) sent() int64 {
	return p.bursts.Load()
}
