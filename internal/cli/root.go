package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "airleech",
	Short: "WiFi handshake capture and cracking orchestrator",
	Long: `airleech - WiFi handshake capture and cracking orchestrator

Drives the aircrack-ng suite through a full engagement: discover networks,
pick targets, detect clients, force reassociation to capture the WPA
handshake, then attempt offline dictionary recovery of the passphrase.

WARNING: Use this tool only against networks you have explicit permission
to test. Unauthorized access to computer networks is illegal.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Target flags
	rootCmd.PersistentFlags().StringP("interface", "i", "", "Wireless interface in managed mode (required for attack)")
	rootCmd.PersistentFlags().StringP("wordlist", "w", "", "Path to candidate passphrase file (default: bundled list)")
	rootCmd.PersistentFlags().String("handshake-dir", "handshakes", "Directory for captured handshake artifacts")
	rootCmd.PersistentFlags().String("results", "airleech.db", "Run result store (SQLite), empty to disable")

	// Timing flags
	rootCmd.PersistentFlags().Duration("detect-timeout", 15*time.Second, "Client-detection pass length per target")
	rootCmd.PersistentFlags().Duration("capture-timeout", 60*time.Second, "Handshake capture budget per target")
	rootCmd.PersistentFlags().Duration("deauth-interval", 3*time.Second, "Cadence between deauthentication bursts")
	rootCmd.PersistentFlags().Duration("poll-interval", time.Second, "Handshake validity poll cadence")

	// Output flags
	rootCmd.PersistentFlags().IntP("verbose", "v", 0, "Verbosity level (0-3)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Report file path (default: stdout)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "Report format (text, json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("airleech %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
