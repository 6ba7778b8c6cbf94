package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/0x6d61/airleech/internal/session"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past runs from the result store",
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	resultsPath, _ := cmd.Flags().GetString("results")
	if resultsPath == "" {
		return fmt.Errorf("no result store configured (--results)")
	}

	store, err := session.NewSQLiteStore(resultsPath)
	if err != nil {
		return fmt.Errorf("open result store %q: %w", resultsPath, err)
	}
	defer store.Close()

	summaries, err := store.ListRuns(context.Background())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	tbl := table.New("ID", "IFACE", "TARGETS", "CAPTURED", "CRACKED", "STARTED").
		WithHeaderFormatter(headerFmt)
	for _, s := range summaries {
		tbl.AddRow(s.ID, s.Interface, s.Targets, s.Captured, s.Cracked,
			s.StartedAt.Format("2006-01-02 15:04"))
	}
	tbl.Print()
	return nil
}
