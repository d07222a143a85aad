// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperwatch/internal/classify"
	"github.com/pdiddy/paperwatch/internal/fetch"
	"github.com/pdiddy/paperwatch/internal/runstate"
	"github.com/pdiddy/paperwatch/pkg/types"
)

type stubSource struct {
	papers []*types.PaperRecord
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, cutoff time.Time, cfg types.FetchConfig) ([]*types.PaperRecord, error) {
	return s.papers, nil
}

type stubAnnotator struct {
	classifyCalls int
}

func (a *stubAnnotator) ClassifyBatch(ctx context.Context, papers []*types.PaperRecord) ([]classify.Verdict, error) {
	a.classifyCalls++
	verdicts := make([]classify.Verdict, len(papers))
	for i := range papers {
		verdicts[i] = classify.Verdict{PaperIndex: i, Classification: types.ClassAcademia}
	}
	return verdicts, nil
}

func (a *stubAnnotator) Summarize(ctx context.Context, papers []*types.PaperRecord) ([]classify.SummaryItem, error) {
	return nil, nil
}

func digestConfig(dir string) types.PipelineConfig {
	return types.PipelineConfig{
		Classify: types.ClassifyConfig{BatchSize: 10, MaxCalls: 5},
		Delivery: types.DeliveryConfig{ReportsDir: filepath.Join(dir, "reports")},
		State:    types.StateConfig{Path: filepath.Join(dir, "state.json")},
	}
}

func TestRunDigestZeroPapersEndsRunEarly(t *testing.T) {
	dir := t.TempDir()
	cfg := digestConfig(dir)

	// Seed a prior run so the no-commit decision is observable as an
	// unchanged record, not just an absent file.
	prior := types.RunState{
		LastRunDate:   time.Date(2026, 3, 8, 6, 0, 0, 0, time.UTC),
		LastRunPapers: 7,
	}
	require.NoError(t, runstate.NewStore(cfg.State.Path).Commit(prior))

	ann := &stubAnnotator{}
	var buf strings.Builder
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	err := runDigest(context.Background(), cfg, []fetch.Source{&stubSource{}}, ann,
		runOptions{lookbackDays: -1}, now, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "no papers found, state NOT updated")
	assert.Equal(t, 0, ann.classifyCalls, "empty window must not spend annotation calls")

	_, statErr := os.Stat(cfg.Delivery.ReportsDir)
	assert.True(t, os.IsNotExist(statErr), "empty window must not write a digest")

	st, err := runstate.NewStore(cfg.State.Path).Load()
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.LastRunDate.Equal(prior.LastRunDate), "state must be unchanged")
	assert.Equal(t, 7, st.LastRunPapers)
}

func TestRunDigestDryRunDoesNotCommit(t *testing.T) {
	dir := t.TempDir()
	cfg := digestConfig(dir)

	src := &stubSource{papers: []*types.PaperRecord{
		{ID: "2301.00001", Title: "Learning to Rank at Scale", Source: "stub"},
	}}
	ann := &stubAnnotator{}
	var buf strings.Builder
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	err := runDigest(context.Background(), cfg, []fetch.Source{src}, ann,
		runOptions{lookbackDays: 3, dryRun: true}, now, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "dry run: state NOT updated")
	assert.Equal(t, 1, ann.classifyCalls)

	// The digest is still archived on a dry run.
	entries, err := os.ReadDir(cfg.Delivery.ReportsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	st, err := runstate.NewStore(cfg.State.Path).Load()
	require.NoError(t, err)
	assert.Nil(t, st, "dry run must not create run state")
}

func TestRunDigestCommitsAfterRunWithPapers(t *testing.T) {
	dir := t.TempDir()
	cfg := digestConfig(dir)

	src := &stubSource{papers: []*types.PaperRecord{
		{ID: "2301.00001", Title: "Learning to Rank at Scale", Source: "stub"},
	}}
	var buf strings.Builder
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	err := runDigest(context.Background(), cfg, []fetch.Source{src}, &stubAnnotator{},
		runOptions{lookbackDays: 3, noEmail: true}, now, &buf)
	require.NoError(t, err)

	st, err := runstate.NewStore(cfg.State.Path).Load()
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.LastRunDate.Equal(now))
	assert.Equal(t, 1, st.LastRunPapers)
	assert.Equal(t, 0, st.LastRunIndustry)
}
