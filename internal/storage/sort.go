package storage

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SortOptions controls the SORT command.
type SortOptions struct {
	// By selects the sort weight per element: empty sorts by the element
	// itself, "nosort" keeps list order, and a pattern containing '*' looks
	// up the string key obtained by substituting the element.
	By string
	// Get projects each sorted element through lookup patterns; "#" stands
	// for the element itself. Multiple patterns interleave per element.
	Get []string
	// Desc reverses the sort order.
	Desc bool
	// Alpha compares lexicographically instead of numerically.
	Alpha bool
	// Limit optionally windows the result.
	Limit *Limit
	// Store, when set, writes the result to that key as a list and leaves
	// the destination absent for an empty result.
	Store string
}

// Sort orders the list at key and returns the (optionally projected and
// windowed) result. An absent key yields an empty result and leaves any
// Store destination untouched.
func (db *DB) Sort(key string, opts SortOptions) ([]string, error) {
	ent, err := db.entity(key, TypeList, false, "SORT")
	if err != nil {
		return nil, err
	}
	if ent == nil || (opts.Limit != nil && opts.Limit.Num == 0) {
		return nil, nil
	}

	items := append([]string(nil), ent.List...)

	weights, err := db.sortWeights(items, opts.By)
	if err != nil {
		return nil, err
	}

	if opts.By != "nosort" {
		if err := sortByWeight(items, weights, opts.Alpha, opts.Desc); err != nil {
			return nil, err
		}
	}

	results := db.projectSorted(items, opts.Get)

	if opts.Limit != nil {
		start, num := translateLimit(len(results), opts.Limit.Start, opts.Limit.Num)
		if num == 0 {
			results = nil
		} else {
			end := start + num
			if end > len(results) {
				end = len(results)
			}
			results = results[start:end]
		}
	}

	if opts.Store != "" {
		db.storeList(opts.Store, results)
	}
	return results, nil
}

// sortWeights resolves the BY option into one weight string per item.
func (db *DB) sortWeights(items []string, by string) ([]string, error) {
	switch {
	case by == "" || by == "nosort":
		return items, nil
	case strings.Contains(by, "*"):
		weights := make([]string, len(items))
		for i, item := range items {
			value, _, err := db.Get(strings.ReplaceAll(by, "*", item))
			if err != nil {
				return nil, err
			}
			weights[i] = value
		}
		return weights, nil
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "invalid value for BY: %q", by)
	}
}

func sortByWeight(items, weights []string, alpha, desc bool) error {
	var numeric []float64
	if !alpha {
		numeric = make([]float64, len(weights))
		for i, w := range weights {
			f, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return errors.Wrapf(ErrInvalidArgument, "weight %q is not a number", w)
			}
			numeric[i] = f
		}
	}

	indices := make([]int, len(items))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		i, j := indices[a], indices[b]
		var less bool
		if alpha {
			less = weights[i] < weights[j]
		} else {
			less = numeric[i] < numeric[j]
		}
		if desc {
			return !less && (alpha && weights[i] != weights[j] || !alpha && numeric[i] != numeric[j])
		}
		return less
	})

	sorted := make([]string, len(items))
	for pos, i := range indices {
		sorted[pos] = items[i]
	}
	copy(items, sorted)
	return nil
}

// projectSorted applies the GET patterns, interleaving multiple projections
// per element. Lookup misses project to the empty string.
func (db *DB) projectSorted(items []string, gets []string) []string {
	if len(gets) == 0 {
		return items
	}

	results := make([]string, 0, len(items)*len(gets))
	for _, item := range items {
		for _, pattern := range gets {
			if pattern == "#" {
				results = append(results, item)
				continue
			}
			value, _, err := db.Get(strings.ReplaceAll(pattern, "*", item))
			if err != nil {
				value = ""
			}
			results = append(results, value)
		}
	}
	return results
}

// storeList unconditionally overwrites destination with the given elements;
// an empty result leaves the destination absent.
func (db *DB) storeList(destination string, elements []string) {
	db.dropKey(destination)
	if len(elements) == 0 {
		return
	}
	db.data[destination] = &Entity{Type: TypeList, List: append([]string(nil), elements...)}
}
