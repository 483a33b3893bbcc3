package report

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// ArchiveConfig defines the archive command parameters passed from CLI
type ArchiveConfig struct {
	ArchivePath    string
	RunID          string
	InputPath      string // results file to import
	BlockCacheSize int64
	LogFormat      string
	LogOutput      io.Writer // stdout if nil
}

func (cfg ArchiveConfig) open(readOnly bool) (*PebbleStore, error) {
	return NewPebbleStore(StoreConfig{
		Path:           cfg.ArchivePath,
		ReadOnly:       readOnly,
		BlockCacheSize: cfg.BlockCacheSize,
	})
}

// ImportRun validates a results file and stores it under cfg.RunID.
func ImportRun(cfg ArchiveConfig) error {
	SetupLog(cfg.LogFormat, cfg.LogOutput)
	if err := ValidateRunID(cfg.RunID); err != nil {
		return fmt.Errorf("%q: %w", cfg.RunID, err)
	}
	path := cfg.InputPath
	if path == "" {
		path = DefaultInputPath
	}

	records, err := Load(path)
	if err != nil {
		return err
	}

	store, err := cfg.open(false)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(cfg.RunID, path, records); err != nil {
		return fmt.Errorf("archive %s: %w", cfg.RunID, err)
	}
	log.Info().
		Str("run_id", cfg.RunID).
		Str("source", path).
		Int("records", len(records)).
		Msg("Run archived")
	return nil
}

// ListRuns returns every archived run.
func ListRuns(cfg ArchiveConfig) ([]RunInfo, error) {
	SetupLog(cfg.LogFormat, cfg.LogOutput)
	store, err := cfg.open(true)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Runs()
}

// DeleteRun removes cfg.RunID from the archive.
func DeleteRun(cfg ArchiveConfig) error {
	SetupLog(cfg.LogFormat, cfg.LogOutput)
	store, err := cfg.open(false)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cfg.RunID); err != nil {
		return err
	}
	log.Info().Str("run_id", cfg.RunID).Msg("Run deleted")
	return nil
}
