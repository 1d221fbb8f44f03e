package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/cperrin88/mirrorget/pkg/catalog"
	"github.com/cperrin88/mirrorget/pkg/errutils"
)

// suggest returns up to MaxSuggestions names close to input, best match first.
// Subsequence matches rank ahead of plain edit-distance matches.
func suggest(input string, names []string) []string {
	if input == "" || len(names) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(input, names)
	sort.Sort(ranks)

	seen := make(map[string]bool)
	var out []string
	for _, r := range ranks {
		if !seen[r.Target] {
			seen[r.Target] = true
			out = append(out, r.Target)
		}
	}

	type near struct {
		name string
		dist int
	}
	var nearby []near
	lower := strings.ToLower(input)
	for _, name := range names {
		if seen[name] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(name)); d <= MaxSuggestionDistance {
			nearby = append(nearby, near{name: name, dist: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, n := range nearby {
		out = append(out, n.name)
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// lookupError decorates a catalog lookup error with "did you mean" hints.
func lookupError(c *catalog.Catalog, list, item string, err error) error {
	var candidates []string
	var input string
	switch {
	case errors.Is(err, errutils.ErrMirrorListNotFound):
		candidates, input = c.MirrorLists(), list
	case errors.Is(err, errutils.ErrItemNotFound):
		if ml, ok := c.List(list); ok {
			candidates = ml.Keys()
		}
		input = item
	default:
		return err
	}

	hints := suggest(input, candidates)
	if len(hints) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %s?)", err, quoteJoin(hints))
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
