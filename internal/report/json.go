package report

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/0x6d61/airleech/internal/engine"
)

// JSONReporter outputs structured JSON.
type JSONReporter struct {
	// Compact outputs single-line JSON when true (no indentation).
	Compact bool
}

// Format returns "json".
func (r *JSONReporter) Format() string {
	return "json"
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	SchemaVersion string        `json:"schema_version"`
	Tool          string        `json:"tool"`
	Run           jsonRun       `json:"run"`
	Targets       []jsonOutcome `json:"targets"`
	Summary       jsonSummary   `json:"summary"`
}

// jsonRun represents run metadata in JSON.
type jsonRun struct {
	Interface        string    `json:"interface"`
	MonitorInterface string    `json:"monitor_interface,omitempty"`
	Wordlist         string    `json:"wordlist,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	DurationSeconds  float64   `json:"duration_seconds"`
}

// jsonOutcome represents one target outcome in JSON.
type jsonOutcome struct {
	BSSID          string `json:"bssid"`
	SSID           string `json:"ssid"`
	Channel        int    `json:"channel"`
	Encryption     string `json:"encryption"`
	Signal         int    `json:"signal"`
	Vendor         string `json:"vendor,omitempty"`
	Captured       bool   `json:"captured"`
	CrackAttempted bool   `json:"crack_attempted"`
	Passphrase     string `json:"passphrase,omitempty"`
	CapturePath    string `json:"capture_path,omitempty"`
	Status         string `json:"status"`
}

// jsonSummary represents the summary in JSON.
type jsonSummary struct {
	Targets   int `json:"targets"`
	Captured  int `json:"captured"`
	Recovered int `json:"recovered"`
}

// Generate writes the run result as JSON to w.
func (r *JSONReporter) Generate(ctx context.Context, result *engine.RunResult, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := jsonOutput{
		SchemaVersion: "1.0",
		Tool:          "airleech",
		Run: jsonRun{
			Interface:        result.Interface,
			MonitorInterface: result.MonitorInterface,
			Wordlist:         result.WordlistPath,
			StartTime:        result.StartTime,
			EndTime:          result.EndTime,
			DurationSeconds:  result.EndTime.Sub(result.StartTime).Seconds(),
		},
		Targets: make([]jsonOutcome, 0, len(result.Outcomes)),
		Summary: jsonSummary{
			Targets:   len(result.Outcomes),
			Captured:  result.CapturedCount(),
			Recovered: result.CrackedCount(),
		},
	}

	for _, o := range result.Outcomes {
		out.Targets = append(out.Targets, jsonOutcome{
			BSSID:          o.Network.BSSID,
			SSID:           o.Network.SSID,
			Channel:        o.Network.Channel,
			Encryption:     o.Network.Encryption.String(),
			Signal:         o.Network.Signal,
			Vendor:         o.Network.Vendor,
			Captured:       o.Captured,
			CrackAttempted: o.CrackAttempted,
			Passphrase:     o.Passphrase,
			CapturePath:    o.CapturePath,
			Status:         o.Status.String(),
		})
	}

	enc := json.NewEncoder(w)
	if !r.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
