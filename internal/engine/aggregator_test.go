package engine

import (
	"testing"
	"time"
)

func networkSample(bssid, ssid string, dbm int) Sample {
	return Sample{
		Kind:       SampleNetwork,
		BSSID:      bssid,
		SSID:       ssid,
		Channel:    6,
		SignalDBM:  dbm,
		Encryption: EncWPA2,
	}
}

func TestAggregatorDedupesByBSSID(t *testing.T) {
	agg := NewAggregator(ModeNetworks)

	agg.Observe(networkSample("aa:bb:cc:00:00:01", "HomeNet", -60))
	agg.Observe(networkSample("AA:BB:CC:00:00:01", "HomeNet", -50))
	agg.Observe(networkSample("aa:bb:cc:00:00:02", "OtherNet", -70))

	if got := agg.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	n, ok := agg.FindByBSSID("aa:bb:cc:00:00:01")
	if !ok {
		t.Fatal("FindByBSSID() did not find deduped network")
	}
	if want := SignalPercent(-50); n.Signal != want {
		t.Errorf("Signal = %d, want %d (latest sample wins)", n.Signal, want)
	}
}

func TestAggregatorSnapshotOrderAndIDs(t *testing.T) {
	agg := NewAggregator(ModeNetworks)

	// Arrival order differs from signal order on purpose.
	agg.Observe(networkSample("aa:bb:cc:00:00:01", "Weak", -72))   // 40%
	agg.Observe(networkSample("aa:bb:cc:00:00:02", "Strong", -51)) // 70%
	agg.Observe(networkSample("aa:bb:cc:00:00:03", "Mid", -61))   // 55%

	snap := agg.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}

	wantSSIDs := []string{"Strong", "Mid", "Weak"}
	wantSignals := []int{70, 55, 40}
	for i := range snap {
		if snap[i].SSID != wantSSIDs[i] {
			t.Errorf("snap[%d].SSID = %q, want %q", i, snap[i].SSID, wantSSIDs[i])
		}
		if snap[i].Signal != wantSignals[i] {
			t.Errorf("snap[%d].Signal = %d, want %d", i, snap[i].Signal, wantSignals[i])
		}
		if snap[i].ID != i+1 {
			t.Errorf("snap[%d].ID = %d, want %d", i, snap[i].ID, i+1)
		}
	}
}

func TestAggregatorSignalTieBreaksOnFirstSeen(t *testing.T) {
	agg := NewAggregator(ModeNetworks)

	agg.Observe(networkSample("aa:bb:cc:00:00:01", "First", -60))
	agg.Observe(networkSample("aa:bb:cc:00:00:02", "Second", -60))

	snap := agg.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snap))
	}
	if snap[0].SSID != "First" || snap[1].SSID != "Second" {
		t.Errorf("tie order = [%q, %q], want [First, Second]", snap[0].SSID, snap[1].SSID)
	}
}

func TestAggregatorSSIDPromotionIsMonotonic(t *testing.T) {
	agg := NewAggregator(ModeNetworks)
	bssid := "AA:BB:CC:00:00:01"

	agg.Observe(networkSample(bssid, "", -60))
	if n, _ := agg.FindByBSSID(bssid); !n.Hidden() {
		t.Fatalf("SSID = %q, want hidden sentinel before promotion", n.SSID)
	}

	agg.Observe(networkSample(bssid, "RevealedNet", -60))
	if n, _ := agg.FindByBSSID(bssid); n.SSID != "RevealedNet" {
		t.Fatalf("SSID = %q, want RevealedNet after promotion", n.SSID)
	}

	// A later beacon without the name must not revert the promotion.
	agg.Observe(networkSample(bssid, "", -55))
	if n, _ := agg.FindByBSSID(bssid); n.SSID != "RevealedNet" {
		t.Errorf("SSID = %q, promotion was reverted by an empty sample", n.SSID)
	}
}

func TestAggregatorDropsWrongKindAndEmptyKeys(t *testing.T) {
	agg := NewAggregator(ModeNetworks)

	agg.Observe(Sample{Kind: SampleClient, BSSID: "AA:BB:CC:00:00:01", Station: "11:22:33:00:00:01"})
	agg.Observe(Sample{Kind: SampleNetwork, BSSID: ""})

	if got := agg.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestAggregatorClientFirstSeenOrder(t *testing.T) {
	agg := NewAggregator(ModeClients)

	for _, mac := range []string{"11:22:33:00:00:03", "11:22:33:00:00:01", "11:22:33:00:00:02"} {
		agg.Observe(Sample{Kind: SampleClient, Station: mac})
	}
	// Re-sighting must not reorder.
	agg.Observe(Sample{Kind: SampleClient, Station: "11:22:33:00:00:01"})

	snap := agg.ClientSnapshot()
	want := []string{"11:22:33:00:00:03", "11:22:33:00:00:01", "11:22:33:00:00:02"}
	if len(snap) != len(want) {
		t.Fatalf("client snapshot length = %d, want %d", len(snap), len(want))
	}
	for i := range want {
		if snap[i].MAC != want[i] {
			t.Errorf("snap[%d].MAC = %q, want %q", i, snap[i].MAC, want[i])
		}
	}
}

func TestAggregatorTimestamps(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	agg := NewAggregator(ModeNetworks)
	agg.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	bssid := "AA:BB:CC:00:00:01"
	agg.Observe(networkSample(bssid, "Net", -60))
	agg.Observe(networkSample(bssid, "Net", -58))

	n, _ := agg.FindByBSSID(bssid)
	if !n.FirstSeen.Equal(base.Add(time.Second)) {
		t.Errorf("FirstSeen = %v, want %v", n.FirstSeen, base.Add(time.Second))
	}
	if !n.LastSeen.Equal(base.Add(2 * time.Second)) {
		t.Errorf("LastSeen = %v, want %v", n.LastSeen, base.Add(2*time.Second))
	}
}
