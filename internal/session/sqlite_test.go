package session

import (
	"context"
	"testing"
	"time"

	"github.com/0x6d61/airleech/internal/engine"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord() *RunRecord {
	return &RunRecord{
		Interface: "wlan0",
		Wordlist:  "/tmp/words.txt",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EndedAt:   time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		Outcomes: []OutcomeRecord{
			{
				BSSID:          "AA:BB:CC:00:00:01",
				SSID:           "HomeNet",
				Channel:        6,
				Encryption:     "WPA2",
				Captured:       true,
				CrackAttempted: true,
				Passphrase:     "sunshine1",
				CapturePath:    "handshakes/HomeNet_aabbcc000001.cap",
				Status:         "success",
			},
			{
				BSSID:      "AA:BB:CC:00:00:02",
				SSID:       "CafeNet",
				Channel:    11,
				Encryption: "WPA2",
				Captured:   true,
				Status:     "handshake-only",
			},
		},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := store.SaveRun(ctx, rec); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("SaveRun() did not assign an ID")
	}

	got, err := store.LoadRun(ctx, rec.ID)
	if err != nil {
		t.Fatalf("LoadRun() error: %v", err)
	}
	if got == nil {
		t.Fatal("LoadRun() = nil for a saved run")
	}
	if got.Interface != "wlan0" || len(got.Outcomes) != 2 {
		t.Errorf("loaded run = %+v", got)
	}
	if got.Outcomes[0].Passphrase != "sunshine1" {
		t.Errorf("passphrase = %q, want sunshine1", got.Outcomes[0].Passphrase)
	}
}

func TestLoadRunNotFound(t *testing.T) {
	store := newTestStore(t)
	got, err := store.LoadRun(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("LoadRun() error: %v", err)
	}
	if got != nil {
		t.Errorf("LoadRun() = %+v, want nil for unknown id", got)
	}
}

func TestSaveRunUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := store.SaveRun(ctx, rec); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	rec.Outcomes = rec.Outcomes[:1]
	if err := store.SaveRun(ctx, rec); err != nil {
		t.Fatalf("second SaveRun() error: %v", err)
	}

	summaries, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("ListRuns() = %d rows after upsert, want 1", len(summaries))
	}
	if summaries[0].Targets != 1 {
		t.Errorf("Targets = %d after upsert, want 1", summaries[0].Targets)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := sampleRecord()
	older.StartedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := sampleRecord()
	newer.StartedAt = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	for _, rec := range []*RunRecord{older, newer} {
		if err := store.SaveRun(ctx, rec); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}

	summaries, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("ListRuns() = %d rows, want 2", len(summaries))
	}
	if summaries[0].ID != newer.ID {
		t.Error("ListRuns() is not newest first")
	}
	if summaries[0].Captured != 2 || summaries[0].Cracked != 1 {
		t.Errorf("summary counts = %d/%d, want 2/1", summaries[0].Captured, summaries[0].Cracked)
	}
}

func TestDeleteRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := store.SaveRun(ctx, rec); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	got, err := store.LoadRun(ctx, rec.ID)
	if err != nil {
		t.Fatalf("LoadRun() error: %v", err)
	}
	if got != nil {
		t.Error("run still present after Delete()")
	}
}

func TestRecordFromResult(t *testing.T) {
	res := &engine.RunResult{
		Interface:    "wlan0",
		WordlistPath: "words.txt",
		StartTime:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Outcomes: []engine.TargetOutcome{
			{
				Network: engine.Network{
					BSSID:      "AA:BB:CC:00:00:01",
					SSID:       "HomeNet",
					Channel:    6,
					Encryption: engine.EncWPA2,
				},
				Captured:       true,
				CrackAttempted: true,
				Passphrase:     "sunshine1",
				Status:         engine.StatusSuccess,
			},
		},
	}

	rec := RecordFromResult(res)
	if rec.Interface != "wlan0" || len(rec.Outcomes) != 1 {
		t.Fatalf("record = %+v", rec)
	}
	out := rec.Outcomes[0]
	if out.Encryption != "WPA2" || out.Status != "success" {
		t.Errorf("outcome strings = %q/%q, want WPA2/success", out.Encryption, out.Status)
	}
}
