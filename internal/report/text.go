package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/0x6d61/airleech/internal/engine"
)

const (
	doubleLine = "═" // ═
	singleLine = "─" // ─
	lineWidth  = 50
)

// TextReporter outputs plain terminal text.
type TextReporter struct{}

// Format returns "text".
func (r *TextReporter) Format() string {
	return "text"
}

// Generate writes the formatted run result to w.
func (r *TextReporter) Generate(ctx context.Context, result *engine.RunResult, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := &strings.Builder{}

	doubleBar := strings.Repeat(doubleLine, lineWidth)
	singleBar := strings.Repeat(singleLine, lineWidth)

	fmt.Fprintln(b, doubleBar)
	fmt.Fprintln(b, "airleech - Capture & Crack Run Results")
	fmt.Fprintln(b, doubleBar)

	fmt.Fprintf(b, "Interface: %s", result.Interface)
	if result.MonitorInterface != "" {
		fmt.Fprintf(b, " (monitor: %s)", result.MonitorInterface)
	}
	fmt.Fprintln(b)
	if result.WordlistPath != "" {
		fmt.Fprintf(b, "Wordlist:  %s\n", result.WordlistPath)
	}
	duration := result.EndTime.Sub(result.StartTime)
	fmt.Fprintf(b, "Duration:  %.1fs\n", duration.Seconds())

	if len(result.Outcomes) == 0 {
		fmt.Fprintln(b, singleBar)
		fmt.Fprintln(b, "No targets processed.")
	} else {
		for _, o := range result.Outcomes {
			fmt.Fprintln(b, singleBar)
			fmt.Fprintf(b, "[%s] %s (%s)\n", strings.ToUpper(o.Status.String()), o.Network.SSID, o.Network.BSSID)
			fmt.Fprintf(b, "  Channel:    %d\n", o.Network.Channel)
			fmt.Fprintf(b, "  Encryption: %s\n", o.Network.Encryption)
			fmt.Fprintf(b, "  Captured:   %t\n", o.Captured)
			if o.CapturePath != "" && o.Captured {
				fmt.Fprintf(b, "  Artifact:   %s\n", o.CapturePath)
			}
			if o.Passphrase != "" {
				fmt.Fprintf(b, "  Passphrase: %s\n", o.Passphrase)
			}
		}
	}

	fmt.Fprintln(b, doubleBar)
	fmt.Fprintf(b, "Summary: %d target(s), %d handshake(s) captured, %d passphrase(s) recovered\n",
		len(result.Outcomes), result.CapturedCount(), result.CrackedCount())
	fmt.Fprintln(b, doubleBar)

	_, err := io.WriteString(w, b.String())
	return err
}
