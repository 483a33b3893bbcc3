package report

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	metaPrefix   = "meta/"
	recordPrefix = "run/"
)

// PebbleStore implements ResultStore on a Pebble database.
//
// Keys:
//
//	meta/<run>               RunInfo JSON
//	run/<run>/<uint32 index> record JSON
type PebbleStore struct {
	db    *pebble.DB
	cache *pebble.Cache
	now   func() time.Time
}

// NewPebbleStore opens (or creates) the archive at cfg.Path
func NewPebbleStore(cfg StoreConfig) (*PebbleStore, error) {
	if cfg.Path == "" {
		return nil, ErrStoreRequired
	}
	opts := &pebble.Options{
		ReadOnly: cfg.ReadOnly,
		Logger:   pebbleLogger{l: log.With().Str("component", "pebble").Logger()},
	}

	var cache *pebble.Cache
	if cfg.BlockCacheSize >= 0 {
		cache = pebble.NewCache(cfg.BlockCacheSize)
		opts.Cache = cache
		log.Debug().
			Int64("block_cache_size", cfg.BlockCacheSize).
			Msg("Opening archive with block cache")
	}

	db, err := pebble.Open(cfg.Path, opts)
	if err != nil {
		if cache != nil {
			cache.Unref()
		}
		return nil, fmt.Errorf("open archive %s: %w", cfg.Path, err)
	}

	return &PebbleStore{db: db, cache: cache, now: time.Now}, nil
}

// Put implements ResultStore.Put for Pebble
func (p *PebbleStore) Put(runID, source string, records []Record) error {
	if p.db == nil {
		return ErrStoreClosed
	}
	if err := ValidateRunID(runID); err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	prefix := runPrefix(runID)
	if err := batch.DeleteRange(prefix, upperBound(prefix), nil); err != nil {
		return err
	}
	for i, rec := range records {
		value, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		if err := batch.Set(recordKey(runID, i), value, nil); err != nil {
			return err
		}
	}

	info, err := json.Marshal(RunInfo{
		RunID:      runID,
		Source:     source,
		Records:    len(records),
		ImportedAt: p.now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := batch.Set(metaKey(runID), info, nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Load implements ResultStore.Load for Pebble
func (p *PebbleStore) Load(runID string) ([]Record, error) {
	if p.db == nil {
		return nil, ErrStoreClosed
	}
	if err := ValidateRunID(runID); err != nil {
		return nil, err
	}
	if _, err := p.info(runID); err != nil {
		return nil, err
	}

	prefix := runPrefix(runID)
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upperBound(prefix)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var records []Record
	for iter.First(); iter.Valid(); iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("decode archived record %d of %s: %w", len(records), runID, err)
		}
		records = append(records, rec)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// Runs implements ResultStore.Runs for Pebble
func (p *PebbleStore) Runs() ([]RunInfo, error) {
	if p.db == nil {
		return nil, ErrStoreClosed
	}
	prefix := []byte(metaPrefix)
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upperBound(prefix)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var runs []RunInfo
	for iter.First(); iter.Valid(); iter.Next() {
		var info RunInfo
		if err := json.Unmarshal(iter.Value(), &info); err != nil {
			return nil, fmt.Errorf("decode run info %q: %w", iter.Key(), err)
		}
		runs = append(runs, info)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].RunID < runs[j].RunID })
	return runs, nil
}

// Delete implements ResultStore.Delete for Pebble
func (p *PebbleStore) Delete(runID string) error {
	if p.db == nil {
		return ErrStoreClosed
	}
	if err := ValidateRunID(runID); err != nil {
		return err
	}
	if _, err := p.info(runID); err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	prefix := runPrefix(runID)
	if err := batch.DeleteRange(prefix, upperBound(prefix), nil); err != nil {
		return err
	}
	if err := batch.Delete(metaKey(runID), nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Close implements ResultStore.Close for Pebble
func (p *PebbleStore) Close() error {
	var err error
	if p.db != nil {
		err = p.db.Close()
		p.db = nil
	}

	if p.cache != nil {
		p.cache.Unref()
		p.cache = nil
	}

	return err
}

func (p *PebbleStore) info(runID string) (RunInfo, error) {
	value, closer, err := p.db.Get(metaKey(runID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return RunInfo{}, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return RunInfo{}, err
	}
	defer closer.Close()

	var info RunInfo
	if err := json.Unmarshal(value, &info); err != nil {
		return RunInfo{}, fmt.Errorf("decode run info %s: %w", runID, err)
	}
	return info, nil
}

// pebbleLogger routes pebble's internal messages through zerolog. Routine
// job output is debug noise for a report tool.
type pebbleLogger struct {
	l zerolog.Logger
}

func (p pebbleLogger) Infof(format string, args ...interface{}) {
	p.l.Debug().Msgf(format, args...)
}

func (p pebbleLogger) Errorf(format string, args ...interface{}) {
	p.l.Error().Msgf(format, args...)
}

func (p pebbleLogger) Fatalf(format string, args ...interface{}) {
	p.l.Fatal().Msgf(format, args...)
}

func metaKey(runID string) []byte {
	return []byte(metaPrefix + runID)
}

func runPrefix(runID string) []byte {
	return []byte(recordPrefix + runID + "/")
}

// recordKey orders records by their input index.
func recordKey(runID string, idx int) []byte {
	return binary.BigEndian.AppendUint32(runPrefix(runID), uint32(idx))
}

// upperBound returns the smallest key greater than every key with prefix.
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
