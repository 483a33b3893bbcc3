package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tclemos/bench-report/report"
)

var (
	archiveDir       string
	archiveRunID     string
	archiveInput     string
	archiveLogFormat string
	archiveCacheSize int64
)

// archiveCmd groups the result archive commands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store and manage benchmark result sets in a Pebble archive",
}

var archiveImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a benchmark results file under a run ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.ImportRun(archiveConfig(cmd))
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := report.ListRuns(archiveConfig(cmd))
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN ID\tRECORDS\tIMPORTED\tSOURCE")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.RunID, r.Records, r.ImportedAt.Format(time.RFC3339), r.Source)
		}
		return tw.Flush()
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an archived run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.DeleteRun(archiveConfig(cmd))
	},
}

// archiveConfig keeps logs on stderr so list output stays machine readable.
func archiveConfig(cmd *cobra.Command) report.ArchiveConfig {
	return report.ArchiveConfig{
		ArchivePath:    archiveDir,
		RunID:          archiveRunID,
		InputPath:      archiveInput,
		BlockCacheSize: archiveCacheSize,
		LogFormat:      archiveLogFormat,
		LogOutput:      cmd.ErrOrStderr(),
	}
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveImportCmd, archiveListCmd, archiveDeleteCmd)

	archiveCmd.PersistentFlags().StringVar(&archiveDir, "archive", report.DefaultArchivePath, "Path to the results archive")
	archiveCmd.PersistentFlags().StringVar(&archiveLogFormat, "log-format", "console", "Log format: 'json' or 'console'")
	archiveCmd.PersistentFlags().Int64Var(&archiveCacheSize, "block-cache-size", report.DefaultBlockCacheSize, "Archive block cache size in bytes (negative for disabled)")

	archiveImportCmd.Flags().StringVar(&archiveRunID, "run-id", "", "Run ID to store the results under")
	archiveImportCmd.Flags().StringVar(&archiveInput, "input", report.DefaultInputPath, "Path to the benchmark results JSON array")
	_ = archiveImportCmd.MarkFlagRequired("run-id")

	archiveDeleteCmd.Flags().StringVar(&archiveRunID, "run-id", "", "Run ID to delete")
	_ = archiveDeleteCmd.MarkFlagRequired("run-id")
}
