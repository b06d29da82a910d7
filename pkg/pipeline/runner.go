package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/JHertz5/role-assignment/pkg/cache"
	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/hungarian"
	"github.com/JHertz5/role-assignment/pkg/observability"
	"github.com/JHertz5/role-assignment/pkg/project"
	"github.com/JHertz5/role-assignment/pkg/roles"
	"github.com/JHertz5/role-assignment/pkg/store"
	"github.com/JHertz5/role-assignment/pkg/validate"
)

// Cache key types reported to observability hooks.
const (
	keyTypeResult = "result"
	keyTypeSolve  = "solve"
)

// Runner executes pipeline runs with caching and run history.
//
// The Runner keeps no per-run state, so one Runner may serve concurrent
// runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() string
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means DefaultKeyer, a nil store disables history and a nil logger means
// log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, s store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if s == nil {
		s = store.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  s,
		Logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Execute runs the full pipeline over a roster.
func (r *Runner) Execute(ctx context.Context, roster roles.Roster, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if err := checkSize(len(roster.Candidates), len(roster.Roles)); err != nil {
		return nil, err
	}

	inputHash, err := cache.HashJSON(roster)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash roster")
	}
	res := &Result{RunID: r.runID(), InputHash: inputHash}
	logger.Debug("starting run", "run", res.RunID, "candidates", len(roster.Candidates), "slots", len(roster.Roles))

	buildStart := time.Now()
	groups, err := roles.DetectCloneGroups(roster.Roles)
	if err != nil {
		return nil, err
	}
	built, err := cost.Build(groups, roster.Candidates, opts.CostOptions())
	observability.Pipeline().OnBuildComplete(ctx, len(roster.Candidates), len(roster.Roles), time.Since(buildStart), err)
	if err != nil {
		return nil, err
	}
	res.Groups = groups
	res.Matrix = built.Matrix
	res.RowLabels = built.RowLabels
	res.ColLabels = built.ColLabels
	res.Stats.BuildTime = time.Since(buildStart)
	res.Stats.CloneGroups = countClones(groups)

	logger.Info("built cost matrix",
		"rows", built.Matrix.Rows(),
		"cols", built.Matrix.Cols(),
		"clone_groups", res.Stats.CloneGroups,
		"shuffled", !opts.NoShuffle)

	key := r.Keyer.ResultKey(inputHash, opts.ResultKeyOpts())
	if err := r.finish(ctx, res, keyTypeResult, key, validate.Options{Policy: opts.Policy(), Groups: groups}, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// SolveMatrix runs validation, solve and projection over a pre-built
// matrix, as read from a cost-matrix file. Validation uses the strict
// policy since no clone groups are known. The matrix default cost must not
// collide with a rank.
func (r *Runner) SolveMatrix(ctx context.Context, m *cost.Matrix, rowLabels, colLabels []string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.NoShuffle = true
	opts.Seed = 0
	if err := errors.ValidateDefaultCost(m.Default()); err != nil {
		return nil, err
	}
	if err := checkSize(m.Rows(), m.Cols()); err != nil {
		return nil, err
	}
	if len(rowLabels) != m.Rows() || len(colLabels) != m.Cols() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"labels %dx%d for %dx%d matrix", len(rowLabels), len(colLabels), m.Rows(), m.Cols())
	}

	inputHash, err := cache.HashJSON(struct {
		Default int      `json:"default"`
		Cells   [][]int  `json:"cells"`
		Rows    []string `json:"rows"`
		Cols    []string `json:"cols"`
	}{m.Default(), m.Ints(), rowLabels, colLabels})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash matrix")
	}

	res := &Result{
		RunID:     r.runID(),
		InputHash: inputHash,
		Matrix:    m,
		RowLabels: rowLabels,
		ColLabels: colLabels,
	}
	if err := r.finish(ctx, res, keyTypeSolve, r.Keyer.SolveKey(inputHash), validate.Options{}, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// finish validates, solves, projects and records res.
func (r *Runner) finish(ctx context.Context, res *Result, keyType, key string, vopts validate.Options, opts Options) error {
	logger := opts.Logger
	m := res.Matrix
	res.Stats.Candidates = m.Rows()
	res.Stats.Slots = m.Cols()

	warnings, err := validate.Validate(m, res.RowLabels, vopts)
	if err != nil {
		return err
	}
	res.Warnings = warnings
	observability.Pipeline().OnValidate(ctx, len(warnings))
	for _, w := range warnings {
		logger.Warn(w.String())
	}

	solveStart := time.Now()
	var report *project.Report
	a, hit := r.cachedAssignment(ctx, keyType, key, opts)
	if hit {
		if report, err = project.Project(m, a, res.RowLabels, res.ColLabels); err != nil {
			logger.Debug("discarding cached assignment", "key", key, "err", err)
			_ = r.Cache.Delete(ctx, key)
			hit = false
		}
	}
	if !hit {
		if a, err = hungarian.SolveMatrixContext(ctx, m); err != nil {
			observability.Pipeline().OnSolveComplete(ctx, m.Rows(), m.Cols(), 0, time.Since(solveStart), err)
			return err
		}
		if report, err = project.Project(m, a, res.RowLabels, res.ColLabels); err != nil {
			return err
		}
		r.storeAssignment(ctx, keyType, key, a)
	}
	res.Assignment = a
	res.Report = report
	res.CacheHit = hit
	res.Stats.SolveTime = time.Since(solveStart)
	observability.Pipeline().OnSolveComplete(ctx, m.Rows(), m.Cols(), report.TotalCost, res.Stats.SolveTime, nil)

	if opts.Verify {
		if err := verify(m, a, logger); err != nil {
			return err
		}
		res.Verified = max(m.Rows(), m.Cols()) <= hungarian.MaxExhaustive
	}

	logger.Info("solved assignment",
		"run", res.RunID,
		"total_cost", report.TotalCost,
		"first_choice", report.Histogram.First,
		"unmatched", len(report.Unmatched),
		"cache_hit", hit,
		"duration", res.Stats.SolveTime)

	r.record(ctx, res, opts)
	return nil
}

func (r *Runner) cachedAssignment(ctx context.Context, keyType, key string, opts Options) (hungarian.Assignment, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Debug("cache read failed", "err", err)
	}
	var a hungarian.Assignment
	if err != nil || !hit || json.Unmarshal(data, &a) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return a, true
}

func (r *Runner) storeAssignment(ctx context.Context, keyType, key string, a hungarian.Assignment) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// record saves the run to history. History is auxiliary, so failures are
// logged and not returned.
func (r *Runner) record(ctx context.Context, res *Result, opts Options) {
	run := &store.Run{
		ID:         res.RunID,
		CreatedAt:  r.timestamp(),
		Source:     opts.Source,
		InputHash:  res.InputHash,
		Seed:       opts.Seed,
		Shuffle:    !opts.NoShuffle,
		Candidates: res.Stats.Candidates,
		Slots:      res.Stats.Slots,
		Warnings:   len(res.Warnings),
		CacheHit:   res.CacheHit,
		Report:     res.Report,
	}
	if err := r.Store.Save(ctx, run); err != nil {
		opts.Logger.Warn("could not record run", "run", res.RunID, "err", err)
	}
}

// verify compares the solver's total with exhaustive search. Matrices too
// large to enumerate are skipped with a log line.
func verify(m *cost.Matrix, a hungarian.Assignment, logger *log.Logger) error {
	if max(m.Rows(), m.Cols()) > hungarian.MaxExhaustive {
		logger.Warn("skipping verification", "rows", m.Rows(), "cols", m.Cols(), "limit", hungarian.MaxExhaustive)
		return nil
	}
	costs := m.Ints()
	_, best, err := hungarian.Exhaustive(costs)
	if err != nil {
		return err
	}
	if got := a.Total(costs); got != best {
		return errors.New(errors.ErrCodeInternal, "solver total %d differs from exhaustive optimum %d", got, best)
	}
	logger.Debug("verified optimum", "total_cost", best)
	return nil
}

func countClones(g *roles.CloneGroups) int {
	n := 0
	for _, role := range g.Roles() {
		if role.IsClone() {
			n++
		}
	}
	return n
}

// Close releases the cache and store.
func (r *Runner) Close() error {
	cerr := r.Cache.Close()
	serr := r.Store.Close()
	if cerr != nil {
		return cerr
	}
	return serr
}

func (r *Runner) runID() string {
	if r.newID != nil {
		return r.newID()
	}
	return uuid.NewString()
}

func (r *Runner) timestamp() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
