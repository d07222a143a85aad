// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paperwatch/internal/classify"
	"github.com/pdiddy/paperwatch/internal/dedup"
	"github.com/pdiddy/paperwatch/internal/fetch"
	"github.com/pdiddy/paperwatch/internal/report"
	"github.com/pdiddy/paperwatch/internal/runstate"
	"github.com/pdiddy/paperwatch/pkg/types"
)

var (
	lookbackDays int
	dryRun       bool
	noEmail      bool
	maxCalls     int
	batchSize    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, reconcile, classify, and deliver the paper digest",
	Long: `Run executes one full digest cycle: it derives the fetch window from
the persisted run state (or --lookback-days), queries the enabled sources,
reconciles duplicate records across them, classifies industry affiliation
with the configured model, writes the HTML and YAML digest to the reports
directory, emails it, and commits the new run state.

With --dry-run the digest is still written to disk, but no email is sent
and the run state is not advanced.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().IntVar(&lookbackDays, "lookback-days", -1,
		"fetch papers from the last N days, overriding the persisted run state")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"write the digest but skip email and leave the run state untouched")
	runCmd.Flags().BoolVar(&noEmail, "no-email", false,
		"skip email delivery, still committing the run state")
	runCmd.Flags().IntVar(&maxCalls, "max-calls", 0,
		"override the annotation call budget")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 0,
		"override the classification batch size")

	rootCmd.AddCommand(runCmd)
}

// runOptions carries the per-run flag values into the pipeline.
type runOptions struct {
	lookbackDays int
	dryRun       bool
	noEmail      bool
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	if maxCalls > 0 {
		cfg.Classify.MaxCalls = maxCalls
	}
	if batchSize > 0 {
		cfg.Classify.BatchSize = batchSize
	}

	if cfg.Classify.APIKey == "" {
		return fmt.Errorf("openai api key not set: add openai-api-key to .secrets/ or set classify.api_key")
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.Fetch.QueriesPerMinute)/60.0), 1)

	// Source order is priority order: the reconciliation engine keeps
	// the first record seen under each identity, so arXiv's richer
	// metadata wins over Semantic Scholar and Hugging Face.
	var sources []fetch.Source
	if cfg.Fetch.EnableArxiv {
		sources = append(sources, &fetch.ArxivSource{Client: client, Limiter: limiter})
	}
	if cfg.Fetch.EnableSemanticScholar {
		sources = append(sources, &fetch.SemanticScholarSource{
			Client:  client,
			APIKey:  cfg.Fetch.SemanticScholarAPIKey,
			Limiter: limiter,
		})
	}
	if cfg.Fetch.EnableHuggingFace {
		sources = append(sources, &fetch.HuggingFaceSource{Client: client})
	}

	ann := classify.NewOpenAIAnnotator(cfg.Classify.APIKey, cfg.Classify.Model, cfg.Classify.MaxRetries)
	opts := runOptions{lookbackDays: lookbackDays, dryRun: dryRun, noEmail: noEmail}

	return runDigest(cmd.Context(), cfg, sources, ann, opts, time.Now().UTC(), cmd.OutOrStdout())
}

// runDigest executes one digest cycle with the given collaborators.
// Sources and the annotator are injected so tests can exercise the
// pipeline's commit decisions without the network.
func runDigest(ctx context.Context, cfg types.PipelineConfig, sources []fetch.Source, ann classify.Annotator, opts runOptions, now time.Time, out io.Writer) error {
	store := runstate.NewStore(cfg.State.Path)
	cutoff := store.Cutoff(opts.lookbackDays, now, out)

	raw := fetch.FetchAll(ctx, sources, cutoff, cfg.Fetch, out)
	papers, _ := dedup.Deduplicate(raw, out)

	// An empty window ends the run before any annotation, archiving, or
	// mail: the prior state stays in place so the same window is retried
	// next time.
	if len(papers) == 0 {
		fmt.Fprintln(out, "no papers found, state NOT updated")
		return nil
	}

	budget := classify.NewBudget(cfg.Classify.MaxCalls)
	classify.ClassifyAll(ctx, ann, papers, cfg.Classify, budget, out)

	var industry []*types.PaperRecord
	for _, p := range papers {
		if p.Classification == types.ClassIndustry {
			industry = append(industry, p)
		}
	}

	classify.Summarize(ctx, ann, industry, cfg.Classify, budget, out)
	fmt.Fprintf(out, "annotation calls used: %d of %d\n", budget.Used(), budget.Max())

	html, err := report.FormatHTML(industry, len(papers), cutoff, now)
	if err != nil {
		return fmt.Errorf("formatting digest: %w", err)
	}

	if err := os.MkdirAll(cfg.Delivery.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}
	htmlPath, err := report.Save(cfg.Delivery.ReportsDir, html, industry, now)
	if err != nil {
		return fmt.Errorf("saving digest: %w", err)
	}
	fmt.Fprintf(out, "digest saved to %s\n", htmlPath)

	if opts.dryRun || opts.noEmail {
		fmt.Fprintln(out, "email delivery skipped")
	} else {
		subject := fmt.Sprintf("RecSys & LLM industry papers - %s (%d papers)",
			now.Format("Jan 2, 2006"), len(industry))
		if _, err := report.SendMail(cfg.Delivery, subject, html, out); err != nil {
			fmt.Fprintf(out, "warning: %v (digest archived at %s)\n", err, htmlPath)
		}
	}

	if opts.dryRun {
		fmt.Fprintln(out, "dry run: state NOT updated")
	} else {
		if err := store.Commit(types.RunState{
			LastRunDate:     now,
			LastRunPapers:   len(papers),
			LastRunIndustry: len(industry),
		}); err != nil {
			return fmt.Errorf("committing run state: %w", err)
		}
		fmt.Fprintf(out, "run state committed (%s)\n", now.Format(time.RFC3339))
	}

	report.WriteTable(industry, len(papers), out)
	return nil
}
