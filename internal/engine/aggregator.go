package engine

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// AggregatorMode selects what an Aggregator deduplicates on.
type AggregatorMode int

const (
	// ModeNetworks dedupes by BSSID and sorts snapshots by signal.
	ModeNetworks AggregatorMode = iota
	// ModeClients dedupes by station MAC and preserves first-seen order.
	ModeClients
)

// Aggregator builds an in-memory table of observed networks or clients from
// a scan operation's sample stream. Observe never blocks and never performs
// I/O; vendor lookups and rendering happen against returned snapshots.
type Aggregator struct {
	mode AggregatorMode
	now  func() time.Time

	mu       sync.Mutex
	networks map[string]*Network
	clients  map[string]*Client
	order    []string // keys in first-seen order
}

// NewAggregator creates an aggregator for the given mode.
func NewAggregator(mode AggregatorMode) *Aggregator {
	return &Aggregator{
		mode:     mode,
		now:      time.Now,
		networks: make(map[string]*Network),
		clients:  make(map[string]*Client),
	}
}

// Observe applies one sample in arrival order. Samples of the wrong kind
// for the aggregator's mode are dropped.
func (a *Aggregator) Observe(s Sample) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	switch a.mode {
	case ModeNetworks:
		if s.Kind != SampleNetwork {
			return
		}
		key := strings.ToUpper(s.BSSID)
		if key == "" {
			return
		}
		n, ok := a.networks[key]
		if !ok {
			n = &Network{
				BSSID:     key,
				SSID:      HiddenSSID,
				FirstSeen: now,
			}
			a.networks[key] = n
			a.order = append(a.order, key)
		}
		// Latest sample wins for the volatile fields.
		n.LastSeen = now
		n.Signal = SignalPercent(s.SignalDBM)
		if s.Channel > 0 {
			n.Channel = s.Channel
		}
		if s.Encryption != EncUnknown {
			n.Encryption = s.Encryption
		}
		// SSID promotion is monotonic: a real name replaces the hidden
		// sentinel once and is never reverted by a later empty sample.
		if n.SSID == HiddenSSID && s.SSID != "" {
			n.SSID = s.SSID
		}

	case ModeClients:
		if s.Kind != SampleClient {
			return
		}
		key := strings.ToUpper(s.Station)
		if key == "" {
			return
		}
		c, ok := a.clients[key]
		if !ok {
			c = &Client{MAC: key, FirstSeen: now}
			a.clients[key] = c
			a.order = append(a.order, key)
		}
		c.LastSeen = now
	}
}

// Snapshot returns a copy of the network table sorted by descending signal,
// ties broken by first-seen order, with display ids reassigned 1..n.
// Ids are valid only for this snapshot.
func (a *Aggregator) Snapshot() []Network {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mode != ModeNetworks {
		return nil
	}

	firstSeen := make(map[string]int, len(a.order))
	for i, key := range a.order {
		firstSeen[key] = i
	}

	out := make([]Network, 0, len(a.networks))
	for _, n := range a.networks {
		out = append(out, *n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Signal != out[j].Signal {
			return out[i].Signal > out[j].Signal
		}
		return firstSeen[out[i].BSSID] < firstSeen[out[j].BSSID]
	})
	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// ClientSnapshot returns a copy of the client table in first-seen order.
func (a *Aggregator) ClientSnapshot() []Client {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mode != ModeClients {
		return nil
	}

	out := make([]Client, 0, len(a.clients))
	for _, key := range a.order {
		if c, ok := a.clients[key]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// Len returns the number of distinct entries observed so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == ModeNetworks {
		return len(a.networks)
	}
	return len(a.clients)
}

// FindByBSSID resolves a network by its stable key after scanning stopped.
func (a *Aggregator) FindByBSSID(bssid string) (Network, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.networks[strings.ToUpper(bssid)]
	if !ok {
		return Network{}, false
	}
	return *n, true
}
