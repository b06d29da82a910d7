// Package pipeline runs the full assignment: cost model, validation, solve
// and projection.
//
// The same [Runner] backs the CLI and the HTTP API, so both apply the same
// defaults, caching and history recording.
//
// # Stages
//
//  1. Detect clone groups in the slot titles and build the cost matrix.
//  2. Validate the matrix. Warnings are collected, never fatal.
//  3. Solve with the Hungarian algorithm, optionally cross-checked by
//     exhaustive search for small inputs.
//  4. Project the assignment onto candidate and slot labels.
//
// Only the solve is cached. Stages 1, 2 and 4 are cheap and always rerun, so
// a cache hit yields exactly the report a fresh run would.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	res, err := runner.Execute(ctx, roster, pipeline.Options{Verify: true})
//	if err != nil {
//	    return err
//	}
//	for _, rec := range res.Report.Records {
//	    fmt.Println(rec.Candidate, rec.Role)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JHertz5/role-assignment/pkg/cache"
	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/hungarian"
	"github.com/JHertz5/role-assignment/pkg/project"
	"github.com/JHertz5/role-assignment/pkg/roles"
	"github.com/JHertz5/role-assignment/pkg/validate"
)

const (
	// DefaultSeed is the shuffle seed used when none is given.
	DefaultSeed = cost.DefaultSeed

	// DefaultCost is the cost of an unranked slot when none is given.
	DefaultCost = cost.DefaultCost

	// MaxCandidates and MaxSlots bound the matrix of a single run.
	MaxCandidates = 1000
	MaxSlots      = 1000
)

// checkSize rejects runs too large to solve within a request timeout.
func checkSize(candidates, slots int) error {
	if candidates > MaxCandidates {
		return errors.New(errors.ErrCodeInvalidInput, "%d candidates exceeds the limit of %d", candidates, MaxCandidates)
	}
	if slots > MaxSlots {
		return errors.New(errors.ErrCodeInvalidInput, "%d slots exceeds the limit of %d", slots, MaxSlots)
	}
	return nil
}

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	DefaultCost int    `json:"default_cost,omitempty"`
	Seed        uint64 `json:"seed,omitempty"`
	// NoShuffle keeps candidates in input order. Shuffling is on by default.
	NoShuffle bool `json:"no_shuffle,omitempty"`
	// CloneAware counts ranks once per clone group during validation.
	CloneAware bool `json:"clone_aware,omitempty"`
	// Verify cross-checks the solver against exhaustive search when the
	// matrix is small enough.
	Verify bool `json:"verify,omitempty"`
	// Refresh ignores cached solutions but still stores the new one.
	Refresh bool `json:"refresh,omitempty"`

	// Source names the input in run history, e.g. a file path.
	Source string      `json:"-"`
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// unusable values. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.DefaultCost == 0 {
		o.DefaultCost = DefaultCost
	}
	if err := errors.ValidateDefaultCost(o.DefaultCost); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Policy returns the validation policy selected by o.
func (o *Options) Policy() validate.Policy {
	if o.CloneAware {
		return validate.PolicyCloneAware
	}
	return validate.PolicyStrict
}

// CostOptions returns the cost-model options.
func (o *Options) CostOptions() cost.Options {
	return cost.Options{DefaultCost: o.DefaultCost, Shuffle: !o.NoShuffle, Seed: o.Seed}
}

// ResultKeyOpts returns the cache key options for a roster run.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		DefaultCost: o.DefaultCost,
		Seed:        o.Seed,
		Shuffle:     !o.NoShuffle,
		CloneAware:  o.CloneAware,
	}
}

// Result holds everything a run produced.
type Result struct {
	RunID     string `json:"run_id"`
	InputHash string `json:"input_hash"`

	Groups    *roles.CloneGroups `json:"-"`
	Matrix    *cost.Matrix       `json:"-"`
	RowLabels []string           `json:"row_labels"`
	ColLabels []string           `json:"col_labels"`

	Assignment hungarian.Assignment `json:"assignment"`
	Warnings   []validate.Warning   `json:"warnings"`
	Report     *project.Report      `json:"report"`

	// Verified is true when exhaustive search confirmed the optimum.
	Verified bool  `json:"verified"`
	CacheHit bool  `json:"cache_hit"`
	Stats    Stats `json:"stats"`
}

// Stats contains run statistics.
type Stats struct {
	Candidates  int           `json:"candidates"`
	Slots       int           `json:"slots"`
	CloneGroups int           `json:"clone_groups"`
	BuildTime   time.Duration `json:"build_time"`
	SolveTime   time.Duration `json:"solve_time"`
}
