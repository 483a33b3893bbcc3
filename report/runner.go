package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DisplayFunc shows a rendered grid and blocks until the user closes it.
type DisplayFunc func(title string, img image.Image, width, height int) error

// Config defines the report parameters passed from CLI
type Config struct {
	InputPath      string // benchmark results file, used when RunID is empty
	ArchivePath    string // pebble archive directory
	RunID          string // archived run to render instead of InputPath
	BlockCacheSize int64  // archive block cache in bytes, negative means disabled

	Backend        string    // "gonum", "gochart" or "echarts"
	OutputPath     string    // file to write; empty shows the grid interactively
	Width          int       // pixels
	Height         int       // pixels
	Caption        string    // optional text strip on raster output
	ReferenceSizes []int     // bit sizes to annotate, DefaultReferenceSizes if empty
	LogFormat      string    // "json" or "console", default is "console"
	LogOutput      io.Writer // log destination, stdout if nil

	Display DisplayFunc // interactive viewer, required when OutputPath is empty
}

// ErrNoDisplay is returned when no output file is set and there is no viewer.
var ErrNoDisplay = errors.New("no output file and no display available")

// WindowTitle is the title of the interactive viewer window.
const WindowTitle = "Benchmark Total Rows"

// RunReport orchestrates the full report lifecycle: load, build the panel
// grid, then either write it to cfg.OutputPath or hand it to cfg.Display.
// Nothing is written or shown unless every step before it succeeded.
func RunReport(cfg Config) error {
	SetupLog(cfg.LogFormat, cfg.LogOutput)
	initialLog(cfg)
	start := time.Now()

	records, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	log.Debug().Interface("record", records[0]).Msg("Sample data structure")

	refs := cfg.ReferenceSizes
	if len(refs) == 0 {
		refs = DefaultReferenceSizes
	}
	panels, err := BuildPanels(records, refs)
	if err != nil {
		return err
	}
	for _, p := range panels {
		logMetrics(ComputeMetrics(p))
	}

	rcfg := RendererConfig{
		Type:    RendererType(cfg.Backend),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Caption: cfg.Caption,
	}

	if cfg.OutputPath != "" {
		if rcfg.Format, err = FormatFromPath(cfg.OutputPath); err != nil {
			return fmt.Errorf("%s: %w", cfg.OutputPath, err)
		}
		if err := writeReport(cfg.OutputPath, rcfg, panels); err != nil {
			return err
		}
		log.Info().
			Str("output", cfg.OutputPath).
			Dur("elapsed", time.Since(start)).
			Msg("Report written")
		return nil
	}

	if cfg.Display == nil {
		return ErrNoDisplay
	}
	img, err := rasterize(rcfg, panels)
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("Showing report")
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	return cfg.Display(WindowTitle, Caption(img, cfg.Caption), width, height)
}

func loadRecords(cfg Config) ([]Record, error) {
	if cfg.RunID == "" {
		path := cfg.InputPath
		if path == "" {
			path = DefaultInputPath
		}
		log.Info().Str("path", path).Msg("Loading benchmark results")
		return Load(path)
	}

	log.Info().
		Str("archive", cfg.ArchivePath).
		Str("run_id", cfg.RunID).
		Msg("Loading archived benchmark results")
	store, err := NewPebbleStore(StoreConfig{
		Path:           cfg.ArchivePath,
		ReadOnly:       true,
		BlockCacheSize: cfg.BlockCacheSize,
	})
	if err != nil {
		return nil, err
	}
	defer store.Close()

	records, err := store.Load(cfg.RunID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// writeReport renders into memory first so a failed render leaves no file.
func writeReport(path string, rcfg RendererConfig, panels []Panel) error {
	r, err := NewRenderer(rcfg)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, panels); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func rasterize(rcfg RendererConfig, panels []Panel) (image.Image, error) {
	r, err := NewRenderer(rcfg)
	if err != nil {
		return nil, err
	}
	ras, ok := r.(Rasterizer)
	if !ok {
		return nil, fmt.Errorf("%s: %w", rcfg.Type, ErrNotRasterizable)
	}
	return ras.Rasterize(panels)
}

func initialLog(cfg Config) {
	source := cfg.InputPath
	if cfg.RunID != "" {
		source = cfg.ArchivePath + "#" + cfg.RunID
	}
	output := cfg.OutputPath
	if output == "" {
		output = "window"
	}
	backend := cfg.Backend
	if backend == "" {
		backend = string(RendererGonum)
	}

	log.Info().
		Str("source", source).
		Str("backend", backend).
		Str("output", output).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Ints("reference_sizes", cfg.ReferenceSizes).
		Msg("Starting report")
}

func logMetrics(m Metrics) {
	log.Info().
		Str("operation", string(m.Operation)).
		Int("points", m.Points).
		Float64("min_rows", m.MinRows).
		Float64("max_rows", m.MaxRows).
		Int("min_size", m.MinSize).
		Int("max_size", m.MaxSize).
		Float64("growth", m.Growth).
		Int("annotations", m.Annotations).
		Msg("Series extracted")
}

// SetupLog configures the global logger for the requested format. A nil w
// logs to stdout.
func SetupLog(format string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if strings.ToLower(format) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = log.Output(w)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	}
}
