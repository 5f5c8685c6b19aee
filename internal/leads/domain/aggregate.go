package domain

import "sort"

// Group is one bucket of an aggregation: the distinct key, how many rows
// share it, and the most common value of each companion dimension among
// those rows.
type Group struct {
	Key        string            `json:"key"`
	Count      int               `json:"count"`
	MostCommon map[string]string `json:"mostCommon"`
}

// GroupBy buckets rows by the given dimension and reports counts plus the
// modal value of each other dimension per bucket. Ties on the mode go to
// the value seen first in input order. The result is sorted by count,
// largest first; equal counts keep first-occurrence order. An empty input
// yields an empty result.
func GroupBy(leads []Lead, dim Dimension) []Group {
	companions := companionsOf(dim)

	type tally struct {
		count int
		first int
		modes map[Dimension]*modeTracker
	}
	buckets := make(map[string]*tally)
	order := make([]string, 0)

	for i, lead := range leads {
		key := lead.Value(dim)
		b, ok := buckets[key]
		if !ok {
			b = &tally{first: i, modes: make(map[Dimension]*modeTracker, len(companions))}
			for _, c := range companions {
				b.modes[c] = newModeTracker()
			}
			buckets[key] = b
			order = append(order, key)
		}
		b.count++
		for _, c := range companions {
			b.modes[c].observe(lead.Value(c))
		}
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		most := make(map[string]string, len(companions))
		for _, c := range companions {
			most[string(c)] = b.modes[c].mode()
		}
		groups = append(groups, Group{Key: key, Count: b.count, MostCommon: most})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

func companionsOf(dim Dimension) []Dimension {
	all := []Dimension{DimensionOwner, DimensionStatus, DimensionSource}
	out := make([]Dimension, 0, 2)
	for _, d := range all {
		if d != dim {
			out = append(out, d)
		}
	}
	return out
}

// modeTracker counts value frequencies, remembering the order each value
// was first observed so ties resolve deterministically.
type modeTracker struct {
	counts map[string]int
	first  map[string]int
	seen   int
}

func newModeTracker() *modeTracker {
	return &modeTracker{counts: make(map[string]int), first: make(map[string]int)}
}

func (m *modeTracker) observe(value string) {
	if _, ok := m.counts[value]; !ok {
		m.first[value] = m.seen
	}
	m.counts[value]++
	m.seen++
}

func (m *modeTracker) mode() string {
	best := ""
	bestCount := -1
	bestFirst := 0
	for value, count := range m.counts {
		if count > bestCount || (count == bestCount && m.first[value] < bestFirst) {
			best, bestCount, bestFirst = value, count, m.first[value]
		}
	}
	return best
}
