package cost

import (
	"math/rand/v2"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/perm"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

// DefaultSeed is the shuffle seed used when none is configured.
const DefaultSeed = uint64(42)

// Options configures [Build].
type Options struct {
	// DefaultCost is the cost of a slot the candidate did not rank.
	// Zero selects [DefaultCost]; 1 and 2 are rejected as they collide with ranks.
	DefaultCost int

	// Shuffle permutes candidate rows before the matrix is built.
	//
	// The solver is permutation-invariant over rows, so shuffling never changes
	// the optimal total cost. It only spreads tie-breaks, which otherwise
	// favour candidates listed first, across the roster.
	Shuffle bool

	// Seed drives the shuffle. The same seed yields the same row order.
	Seed uint64
}

// Result is the output of [Build].
type Result struct {
	Matrix    *Matrix
	RowLabels []string // candidate names in matrix row order
	ColLabels []string // slot display titles in column order
	Order     []int    // Order[k] is the roster index of matrix row k
}

// Build encodes candidate preferences as a cost matrix over the slots of groups.
//
// Each candidate must give exactly [roles.Ranks] preferences, none empty and
// no title repeated. Every preference must resolve through groups, either as
// a clone stem (all its slots) or as one exact slot title. When two
// preferences of one candidate cover the same slot the better rank is kept.
//
// Build is a pure function of its inputs.
func Build(groups *roles.CloneGroups, candidates []roles.Candidate, opts Options) (*Result, error) {
	def := opts.DefaultCost
	if def == 0 {
		def = DefaultCost
	}
	if err := errors.ValidateDefaultCost(def); err != nil {
		return nil, err
	}

	order := perm.Seq(len(candidates))
	if opts.Shuffle {
		rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	m := newFilled(len(candidates), groups.Len(), def)
	rowLabels := make([]string, len(candidates))
	seenNames := make(map[string]bool, len(candidates))

	for row, src := range order {
		c := candidates[src]
		if err := errors.ValidateLabel("candidate name", c.Name); err != nil {
			return nil, err
		}
		name := roles.Normalize(c.Name)
		if seenNames[name] {
			return nil, errors.New(errors.ErrCodeInvalidPreferences, "candidate %q listed twice", name)
		}
		seenNames[name] = true
		rowLabels[row] = name

		if err := encodeRow(m, row, groups, c); err != nil {
			return nil, err
		}
	}

	return &Result{
		Matrix:    m,
		RowLabels: rowLabels,
		ColLabels: groups.Titles(),
		Order:     order,
	}, nil
}

func encodeRow(m *Matrix, row int, groups *roles.CloneGroups, c roles.Candidate) error {
	if len(c.Preferences) != roles.Ranks {
		return errors.New(errors.ErrCodeInvalidPreferences, "candidate %q has %d preferences, want %d",
			c.Name, len(c.Preferences), roles.Ranks)
	}

	seen := make(map[string]bool, roles.Ranks)
	for rank, pref := range c.Preferences {
		key := roles.Normalize(pref)
		if key == "" {
			return errors.New(errors.ErrCodeInvalidPreferences, "candidate %q has an empty choice at rank %d", c.Name, rank+1)
		}
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidPreferences, "candidate %q lists %q more than once", c.Name, key)
		}
		seen[key] = true

		slots, ok := groups.Resolve(key)
		if !ok {
			return errors.New(errors.ErrCodeUnknownRole, "candidate %q prefers unknown role %q", c.Name, key)
		}
		for _, slot := range slots {
			if m.At(row, slot) > rank {
				m.set(row, slot, rank)
			}
		}
	}
	return nil
}
