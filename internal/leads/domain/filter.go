package domain

// FilterByDateRange keeps the rows whose creation date falls inside the
// inclusive range. Rows whose timestamp does not parse are kept: an
// unreadable date must never hide a lead from a report.
func FilterByDateRange(leads []Lead, r DateRange) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, lead := range leads {
		t, ok := ParseCreatedTime(lead.CreatedTime)
		if !ok || r.Contains(t) {
			out = append(out, lead)
		}
	}
	return out
}

// Filters restricts rows per dimension before aggregation. Values within
// one dimension are alternatives; dimensions combine conjunctively. A nil
// or empty value list leaves that dimension unconstrained.
type Filters map[Dimension][]string

// Apply returns the rows matching every constrained dimension.
func (f Filters) Apply(leads []Lead) []Lead {
	if len(f) == 0 {
		return leads
	}
	out := make([]Lead, 0, len(leads))
	for _, lead := range leads {
		if f.matches(lead) {
			out = append(out, lead)
		}
	}
	return out
}

func (f Filters) matches(lead Lead) bool {
	for dim, values := range f {
		if len(values) == 0 {
			continue
		}
		hit := false
		for _, v := range values {
			if lead.Value(dim) == v {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
