package roles

import (
	"regexp"
	"strconv"

	"github.com/JHertz5/role-assignment/pkg/errors"
)

// ordinalRe matches a trailing ordinal suffix such as "Lab (2)".
var ordinalRe = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)

// SplitOrdinal splits a slot title into its stem and ordinal suffix.
// ok is false when the title carries no suffix, in which case stem is the
// normalized title itself.
func SplitOrdinal(title string) (stem string, ordinal int, ok bool) {
	t := Normalize(title)
	m := ordinalRe.FindStringSubmatch(t)
	if m == nil {
		return t, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Digits too long for int: treat as part of the title.
		return t, 0, false
	}
	return Normalize(m[1]), n, true
}

// DetectCloneGroups groups slot titles by the ordinal-suffix convention.
//
// Titles "X (1)", "X (2)" form one group with stem "X". A plain title "X"
// joins the same group if suffixed slots of X exist. Groups are ordered by
// first appearance.
//
// It fails with ErrCodeInvalidCloneGroup when a suffixed title has an empty
// stem ("(3)"), when two slots of one stem share an ordinal ("X (1)" and
// "X (01)"), or when a title appears twice.
func DetectCloneGroups(titles []string) (*CloneGroups, error) {
	groups := make(map[string][]int)
	ordinals := make(map[string]map[int]string)
	seen := make(map[string]bool, len(titles))

	for i, raw := range titles {
		if err := errors.ValidateLabel("role title", raw); err != nil {
			return nil, err
		}
		title := Normalize(raw)
		if seen[title] {
			return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "duplicate role title %q", title)
		}
		seen[title] = true

		stem, ord, ok := SplitOrdinal(title)
		if ok {
			if stem == "" {
				return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "role title %q has an ordinal but no name", title)
			}
			if ordinals[stem] == nil {
				ordinals[stem] = make(map[int]string)
			}
			if prev, dup := ordinals[stem][ord]; dup {
				return nil, errors.New(errors.ErrCodeInvalidCloneGroup, "role titles %q and %q share ordinal %d", prev, title, ord)
			}
			ordinals[stem][ord] = title
		}
		groups[stem] = append(groups[stem], i)
	}

	return NewCloneGroups(titles, groups)
}
