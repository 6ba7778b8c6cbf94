// Package session persists run results, one record per completed (or
// interrupted) run, so past captures and recovered passphrases can be
// reviewed later.
package session

import (
	"context"
	"time"

	"github.com/0x6d61/airleech/internal/engine"
)

// OutcomeRecord is the stored form of one target outcome.
type OutcomeRecord struct {
	BSSID          string    `json:"bssid"`
	SSID           string    `json:"ssid"`
	Channel        int       `json:"channel"`
	Encryption     string    `json:"encryption"`
	Captured       bool      `json:"captured"`
	CrackAttempted bool      `json:"crack_attempted"`
	Passphrase     string    `json:"passphrase,omitempty"`
	CapturePath    string    `json:"capture_path,omitempty"`
	Status         string    `json:"status"`
	FinishedAt     time.Time `json:"finished_at"`
}

// RunRecord captures one full run.
type RunRecord struct {
	ID        string          `json:"id"`
	Interface string          `json:"interface"`
	Wordlist  string          `json:"wordlist"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   time.Time       `json:"ended_at"`
	Outcomes  []OutcomeRecord `json:"outcomes"`
}

// RunSummary is a lightweight run overview for listings.
type RunSummary struct {
	ID        string    `json:"id"`
	Interface string    `json:"interface"`
	Targets   int       `json:"targets"`
	Captured  int       `json:"captured"`
	Cracked   int       `json:"cracked"`
	StartedAt time.Time `json:"started_at"`
}

// Store persists and retrieves run records.
type Store interface {
	SaveRun(ctx context.Context, rec *RunRecord) error
	LoadRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context) ([]*RunSummary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// RecordFromResult converts an engine run result into its stored form.
func RecordFromResult(res *engine.RunResult) *RunRecord {
	rec := &RunRecord{
		Interface: res.Interface,
		Wordlist:  res.WordlistPath,
		StartedAt: res.StartTime,
		EndedAt:   res.EndTime,
	}
	for _, o := range res.Outcomes {
		rec.Outcomes = append(rec.Outcomes, OutcomeRecord{
			BSSID:          o.Network.BSSID,
			SSID:           o.Network.SSID,
			Channel:        o.Network.Channel,
			Encryption:     o.Network.Encryption.String(),
			Captured:       o.Captured,
			CrackAttempted: o.CrackAttempted,
			Passphrase:     o.Passphrase,
			CapturePath:    o.CapturePath,
			Status:         o.Status.String(),
			FinishedAt:     o.FinishedAt,
		})
	}
	return rec
}
