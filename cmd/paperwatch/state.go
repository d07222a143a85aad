// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperwatch/internal/runstate"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the persisted run state and the window the next run would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		out := cmd.OutOrStdout()

		store := runstate.NewStore(cfg.State.Path)
		st, err := store.Load()
		if err != nil {
			return err
		}
		if st == nil {
			fmt.Fprintf(out, "no run state at %s; the next run uses the default 3-day lookback\n",
				cfg.State.Path)
			return nil
		}

		fmt.Fprintf(out, "last run:        %s\n", st.LastRunDate.Format(time.RFC3339))
		fmt.Fprintf(out, "papers fetched:  %d\n", st.LastRunPapers)
		fmt.Fprintf(out, "industry papers: %d\n", st.LastRunIndustry)
		fmt.Fprintf(out, "next cutoff:     %s (48h overlap)\n",
			st.LastRunDate.Add(-runstate.OverlapMargin).Format(time.RFC3339))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
