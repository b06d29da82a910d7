// Package roles defines the candidates and role slots that take part in an
// assignment, and groups identical slots into clone groups.
//
// # Slots and Clone Groups
//
// A slot is one assignable position. A logical role with several identical
// positions is written as several slot titles sharing a stem and carrying an
// ordinal suffix:
//
//	Software Engineer (1)
//	Software Engineer (2)
//	Lab
//
// [DetectCloneGroups] turns such a title list into a [CloneGroups] value in
// which "Software Engineer" owns slots 0 and 1 and "Lab" owns slot 2. A
// candidate who ranks "Software Engineer" is treated as ranking both slots
// equally. Callers that already know the grouping use [NewCloneGroups].
//
// All values in this package are immutable once constructed.
package roles

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/JHertz5/role-assignment/pkg/errors"
)

// Ranks is the number of preferences every candidate states.
// Rank 0 is the most preferred role.
const Ranks = 3

// Candidate is one graduate with ranked role preferences.
type Candidate struct {
	Name        string   `json:"name" yaml:"name"`
	Preferences []string `json:"preferences" yaml:"preferences"`
}

// Roster is the full input of one assignment run: the slot titles in column
// order and the candidates in row order.
type Roster struct {
	Roles      []string    `json:"roles" yaml:"roles"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// Names returns the candidate names in roster order.
func (r Roster) Names() []string {
	names := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		names[i] = c.Name
	}
	return names
}

// Role is one logical role and the slot indices that belong to it.
type Role struct {
	Stem  string
	Slots []int
}

// IsClone reports whether the role has more than one slot.
func (r Role) IsClone() bool {
	return len(r.Slots) > 1
}

// CloneGroups partitions a list of slot titles into logical roles.
type CloneGroups struct {
	titles  []string
	roles   []Role
	byStem  map[string]int
	byTitle map[string]int
	groupOf []int
}

// NewCloneGroups builds CloneGroups from an already-resolved grouping of slot
// indices keyed by stem. Every slot in titles must appear in exactly one
// group; an unreferenced slot, a slot listed twice, an out-of-range index or
// an empty stem fails with ErrCodeInvalidCloneGroup.
func NewCloneGroups(titles []string, groups map[string][]int) (*CloneGroups, error) {
	g := &CloneGroups{
		titles:  make([]string, len(titles)),
		byStem:  make(map[string]int, len(groups)),
		byTitle: make(map[string]int, len(titles)),
		groupOf: make([]int, len(titles)),
	}
	for i := range g.groupOf {
		g.groupOf[i] = -1
	}
	for i, t := range titles {
		if err := errors.ValidateLabel("role title", t); err != nil {
			return nil, err
		}
		g.titles[i] = Normalize(t)
		if _, dup := g.byTitle[g.titles[i]]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "duplicate slot title %q", g.titles[i])
		}
		g.byTitle[g.titles[i]] = i
	}

	stems := make([]string, 0, len(groups))
	for stem := range groups {
		stems = append(stems, stem)
	}
	// Order groups by their first slot so the result does not depend on map order.
	slices.SortFunc(stems, func(a, b string) int {
		if d := firstSlot(groups[a]) - firstSlot(groups[b]); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	for _, stem := range stems {
		slots := groups[stem]
		key := Normalize(stem)
		if key == "" {
			return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "clone group has an empty stem")
		}
		if len(slots) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "clone group %q has no slots", key)
		}
		if _, dup := g.byStem[key]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "clone group %q defined twice", key)
		}
		idx := len(g.roles)
		for _, s := range slots {
			if s < 0 || s >= len(titles) {
				return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "clone group %q references slot %d outside [0,%d)", key, s, len(titles))
			}
			if g.groupOf[s] >= 0 {
				return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "slot %q belongs to both %q and %q",
					g.titles[s], g.roles[g.groupOf[s]].Stem, key)
			}
			g.groupOf[s] = idx
		}
		sorted := slices.Clone(slots)
		slices.Sort(sorted)
		g.roles = append(g.roles, Role{Stem: key, Slots: sorted})
		g.byStem[key] = idx
	}

	for s, grp := range g.groupOf {
		if grp < 0 {
			return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "slot %q is not in any clone group", g.titles[s])
		}
	}
	return g, nil
}

func firstSlot(slots []int) int {
	if len(slots) == 0 {
		return -1
	}
	return slices.Min(slots)
}

// Len returns the number of slots.
func (g *CloneGroups) Len() int {
	return len(g.titles)
}

// Titles returns the slot display titles in column order.
func (g *CloneGroups) Titles() []string {
	return slices.Clone(g.titles)
}

// Title returns the display title of slot i.
func (g *CloneGroups) Title(i int) string {
	return g.titles[i]
}

// Roles returns the logical roles ordered by their first slot.
func (g *CloneGroups) Roles() []Role {
	out := make([]Role, len(g.roles))
	for i, r := range g.roles {
		out[i] = Role{Stem: r.Stem, Slots: slices.Clone(r.Slots)}
	}
	return out
}

// GroupOf returns the index into Roles of the group owning slot i.
func (g *CloneGroups) GroupOf(i int) int {
	return g.groupOf[i]
}

// Resolve maps a preference to the slots it covers. A stem resolves to every
// slot of its group; an exact slot title resolves to that one slot. Stems are
// tried first, so a plain title that is also a stem covers the whole group.
func (g *CloneGroups) Resolve(name string) ([]int, bool) {
	key := Normalize(name)
	if idx, ok := g.byStem[key]; ok {
		return slices.Clone(g.roles[idx].Slots), true
	}
	if slot, ok := g.byTitle[key]; ok {
		return []int{slot}, true
	}
	return nil, false
}

// Normalize canonicalizes a title for comparison: Unicode NFKC, surrounding
// space trimmed and inner whitespace runs collapsed to one space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
