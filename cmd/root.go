package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "murajaah",
	Short: "Qur'an memorization review engine",
	Long: `murajaah schedules spaced-repetition reviews of memorized verses,
scores recitation audio against the canonical text and keeps an
append-only hasanat reward ledger.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
