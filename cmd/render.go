package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tclemos/bench-report/report"
)

// Display shows the rendered grid when no output file is given. main wires
// in the desktop viewer.
var Display report.DisplayFunc

var (
	inputPath      string
	backend        string
	outputPath     string
	width          int
	height         int
	caption        string
	referenceSizes []int
	logFormat      string

	// Archive source configuration
	archivePath    string
	runID          string
	blockCacheSize int64 // in bytes, negative means disabled
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the Total rows charts (gonum, gochart or echarts)",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := report.Config{
		InputPath:      inputPath,
		ArchivePath:    archivePath,
		RunID:          runID,
		BlockCacheSize: blockCacheSize,
		Backend:        backend,
		OutputPath:     outputPath,
		Width:          width,
		Height:         height,
		Caption:        caption,
		ReferenceSizes: referenceSizes,
		LogFormat:      logFormat,
		Display:        Display,
	}
	return report.RunReport(cfg)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addRenderFlags(renderCmd)
}

// addRenderFlags binds the render flags to c. The root command shares them
// so that running without a subcommand behaves like render.
func addRenderFlags(c *cobra.Command) {
	c.Flags().StringVar(&inputPath, "input", report.DefaultInputPath, "Path to the benchmark results JSON array")
	c.Flags().StringVar(&backend, "backend", string(report.RendererGonum), "Renderer: 'gonum', 'gochart' or 'echarts'")
	c.Flags().StringVar(&outputPath, "out", "", "Write the charts to this file (.png, .svg, .pdf, .html) instead of opening a window")
	c.Flags().IntVar(&width, "width", report.DefaultWidth, "Grid width in pixels")
	c.Flags().IntVar(&height, "height", report.DefaultHeight, "Grid height in pixels")
	c.Flags().StringVar(&caption, "caption", "", "Optional caption drawn along the bottom of raster output")
	c.Flags().IntSliceVar(&referenceSizes, "reference-size", report.DefaultReferenceSizes, "Bit sizes whose points are labelled")
	c.Flags().StringVar(&logFormat, "log-format", "console", "Log format: 'json' or 'console'")

	// Archive source flags
	c.Flags().StringVar(&archivePath, "archive", report.DefaultArchivePath, "Path to the results archive (used with --run-id)")
	c.Flags().StringVar(&runID, "run-id", "", "Render an archived run instead of --input")
	c.Flags().Int64Var(&blockCacheSize, "block-cache-size", report.DefaultBlockCacheSize, "Archive block cache size in bytes (negative for disabled)")
}
