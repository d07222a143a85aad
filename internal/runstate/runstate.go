// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runstate derives the fetch-window cutoff for a run and
// persists the run state that anchors the next one.
//
// A run's cutoff comes from exactly one of three places: an explicit
// lookback override, the persisted state of the last committed run, or
// a first-run default. Resumed cutoffs are shifted 48 hours before the
// last commit point: arXiv announces papers in daily batches whose
// submission timestamps can precede the public announcement by 1-3
// days, especially across weekends, so resuming exactly at the prior
// commit would silently miss papers. Consecutive windows therefore
// always overlap; the reconciliation engine absorbs the re-fetched
// overlap as duplicates.
package runstate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/paperwatch/pkg/types"
)

const (
	// OverlapMargin is the backward shift applied to resumed cutoffs.
	OverlapMargin = 48 * time.Hour

	// DefaultLookback anchors the first-ever run: wide enough to span a
	// weekend with no prior state.
	DefaultLookback = 3 * 24 * time.Hour
)

// Store reads and writes the persisted run state at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the state file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state. A missing or corrupt file is not an
// error: it returns (nil, nil) and the caller proceeds as a first run.
func (s *Store) Load() (*types.RunState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}
	var st types.RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, nil
	}
	if st.LastRunDate.IsZero() {
		return nil, nil
	}
	return &st, nil
}

// Cutoff computes the earliest publication timestamp the run accepts.
// explicitDays overrides everything when >= 0; otherwise a persisted
// state resumes from LastRunDate minus the overlap margin; otherwise
// the default lookback applies. Progress is reported on w.
func (s *Store) Cutoff(explicitDays int, now time.Time, w io.Writer) time.Time {
	if explicitDays >= 0 {
		cutoff := now.Add(-time.Duration(explicitDays) * 24 * time.Hour)
		fmt.Fprintf(w, "using explicit lookback: %d days (cutoff %s)\n",
			explicitDays, cutoff.Format("2006-01-02"))
		return cutoff
	}

	if st, _ := s.Load(); st != nil {
		cutoff := st.LastRunDate.Add(-OverlapMargin)
		fmt.Fprintf(w, "resuming from last run %s (cutoff %s)\n",
			st.LastRunDate.Format(time.RFC3339), cutoff.Format(time.RFC3339))
		return cutoff
	}

	cutoff := now.Add(-DefaultLookback)
	fmt.Fprintf(w, "no previous run found, defaulting to 3-day lookback (cutoff %s)\n",
		cutoff.Format("2006-01-02"))
	return cutoff
}

// Commit persists the run state in full. The write is all-or-nothing:
// the state is staged in a temporary file and renamed into place, so a
// crash mid-write leaves the previous state intact.
//
// Callers must only commit after a successful, non-dry run that found
// at least one paper; a zero-paper run leaves the old state in place so
// the same window is retried next time instead of silently advancing.
func (s *Store) Commit(st types.RunState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("staging run state: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing run state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing run state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing run state: %w", err)
	}
	return nil
}
