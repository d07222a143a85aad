// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunState is the single durable record tracking the last successful
// run. It is read at run start to derive the fetch cutoff and rewritten
// in full after a successful, non-dry run.
type RunState struct {
	// LastRunDate is the logical "now" of the last committed run.
	LastRunDate time.Time `json:"last_run_date"`

	// LastRunPapers counts unique papers found by that run.
	LastRunPapers int `json:"last_run_papers"`

	// LastRunIndustry counts papers classified as industry.
	LastRunIndustry int `json:"last_run_industry"`
}
