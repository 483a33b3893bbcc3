package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd renders the report when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "bench-report",
	Short: "Chart Total rows against bit size for the big integer benchmarks",
	Long: `bench-report loads benchmark_results.json and draws a 2x2 grid of
Total rows vs. bit size charts for modMul, modSquare, assertEqual and
rsaVerify, labelling the 1024 and 2048 bit points.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRender,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Report failed")
		os.Exit(1)
	}
}

func init() {
	addRenderFlags(rootCmd)
}
