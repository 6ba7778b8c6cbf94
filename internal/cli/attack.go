package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0x6d61/airleech/internal/aircrack"
	"github.com/0x6d61/airleech/internal/engine"
	"github.com/0x6d61/airleech/internal/oui"
	"github.com/0x6d61/airleech/internal/proc"
	"github.com/0x6d61/airleech/internal/report"
	"github.com/0x6d61/airleech/internal/session"
	"github.com/0x6d61/airleech/internal/wordlist"
)

// interruptExitCode distinguishes a clean operator-initiated interrupt
// from a fatal failure (which exits 1 via cobra's error path).
const interruptExitCode = 130

var attackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Run the full capture-and-crack pipeline against selected networks",
	Long: `Attack runs the whole engagement: a live scan until you stop it, target
selection, then per target a client-detection pass, handshake capture with
concurrent deauthentication, and a dictionary crack of the captured
handshake.`,
	RunE: runAttack,
}

func init() {
	rootCmd.AddCommand(attackCmd)
}

// runAttack is the main attack command handler. It wires up the full
// pipeline: adapter -> scan -> selection -> detect -> capture -> crack ->
// store -> report.
func runAttack(cmd *cobra.Command, args []string) error {
	fmt.Println("[!] Legal disclaimer: Usage of airleech against networks without prior mutual consent is illegal.")

	// ------------------------------------------------------------------ //
	// 1. Read flags
	// ------------------------------------------------------------------ //
	iface, _ := cmd.Flags().GetString("interface")
	if iface == "" {
		return fmt.Errorf("wireless interface is required (use --interface or -i)")
	}
	wordlistFlag, _ := cmd.Flags().GetString("wordlist")
	handshakeDir, _ := cmd.Flags().GetString("handshake-dir")
	resultsPath, _ := cmd.Flags().GetString("results")
	detectTimeout, _ := cmd.Flags().GetDuration("detect-timeout")
	captureTimeout, _ := cmd.Flags().GetDuration("capture-timeout")
	deauthInterval, _ := cmd.Flags().GetDuration("deauth-interval")
	pollInterval, _ := cmd.Flags().GetDuration("poll-interval")
	verbose, _ := cmd.Flags().GetInt("verbose")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	// ------------------------------------------------------------------ //
	// 2. Preflight: privileges and external tools
	// ------------------------------------------------------------------ //
	if os.Geteuid() != 0 {
		return fmt.Errorf("monitor mode and frame injection require root, re-run with sudo")
	}
	if err := aircrack.Preflight(); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	wordlistPath, err := wordlist.Resolve(wordlistFlag, wd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(handshakeDir, 0o755); err != nil {
		return fmt.Errorf("create handshake dir: %w", err)
	}

	// ------------------------------------------------------------------ //
	// 3. Config
	// ------------------------------------------------------------------ //
	cfg := engine.DefaultConfig()
	cfg.Interface = iface
	cfg.HandshakeDir = handshakeDir
	cfg.WordlistPath = wordlistPath
	cfg.DetectDeadline = detectTimeout
	cfg.CaptureDeadline = captureTimeout
	cfg.DeauthInterval = deauthInterval
	cfg.PollInterval = pollInterval
	cfg.Verbose = verbose

	// ------------------------------------------------------------------ //
	// 4. Context (CTRL+C interrupts the run, children get stopped)
	// ------------------------------------------------------------------ //
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		// Kill every registered child even if the component that started
		// it has already returned control (detached background scans).
		proc.DefaultRegistry.StopAll()
	}()

	// ------------------------------------------------------------------ //
	// 5. Result store (optional)
	// ------------------------------------------------------------------ //
	var store session.Store
	if resultsPath != "" {
		s, err := session.NewSQLiteStore(resultsPath)
		if err != nil {
			return fmt.Errorf("failed to open result store %q: %w", resultsPath, err)
		}
		defer s.Close()
		store = s
	}

	// ------------------------------------------------------------------ //
	// 6. Build orchestrator
	// ------------------------------------------------------------------ //
	tools := engine.Toolset{
		Scans:   aircrack.Airodump{},
		Capture: aircrack.AirodumpCapture{},
		Deauth:  aircrack.Aireplay{},
		Verify:  aircrack.Aircrack{},
		Crack:   aircrack.Aircrack{},
		Adapter: aircrack.NewAirmon(),
	}
	console := newTerminalConsole()
	orch := engine.NewOrchestrator(cfg, tools, console,
		engine.WithVendorLookup(oui.Lookup),
	)

	// ------------------------------------------------------------------ //
	// 7. Run
	// ------------------------------------------------------------------ //
	result, runErr := orch.Run(ctx)

	// Whatever happened, no child process may survive the run.
	proc.DefaultRegistry.StopAll()

	// ------------------------------------------------------------------ //
	// 8. Persist and report (partial results included on interrupt)
	// ------------------------------------------------------------------ //
	if store != nil && len(result.Outcomes) > 0 {
		rec := session.RecordFromResult(result)
		if err := store.SaveRun(context.Background(), rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save run: %v\n", err)
		} else {
			console.Progressf("run %s saved to %s", rec.ID, resultsPath)
		}
	}

	reporter, err := report.New(format)
	if err != nil {
		return err
	}
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := reporter.Generate(context.Background(), result, out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			console.Progressf("interrupted by operator, partial results kept")
			if store != nil {
				store.Close()
			}
			os.Exit(interruptExitCode)
		}
		return runErr
	}
	return nil
}
