package domain

import "testing"

func TestGroupByCountsAndOrder(t *testing.T) {
	leads := []Lead{
		{Owner: "Ravi", Status: "New", Source: "Facebook"},
		{Owner: "Priya", Status: "New", Source: "Google"},
		{Owner: "Ravi", Status: "Contacted", Source: "Facebook"},
		{Owner: "Ravi", Status: "New", Source: "Referral"},
		{Owner: "Priya", Status: "Lost", Source: "Google"},
	}
	groups := GroupBy(leads, DimensionOwner)
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Key != "Ravi" || groups[0].Count != 3 {
		t.Errorf("groups[0] = %q/%d, want Ravi/3", groups[0].Key, groups[0].Count)
	}
	if groups[1].Key != "Priya" || groups[1].Count != 2 {
		t.Errorf("groups[1] = %q/%d, want Priya/2", groups[1].Key, groups[1].Count)
	}

	total := 0
	for _, g := range groups {
		total += g.Count
	}
	if total != len(leads) {
		t.Errorf("counts sum to %d, want %d", total, len(leads))
	}

	if got := groups[0].MostCommon[string(DimensionStatus)]; got != "New" {
		t.Errorf("Ravi most common status = %q, want New", got)
	}
	if got := groups[0].MostCommon[string(DimensionSource)]; got != "Facebook" {
		t.Errorf("Ravi most common source = %q, want Facebook", got)
	}
}

func TestGroupByModeTieFirstOccurrence(t *testing.T) {
	leads := []Lead{
		{Owner: "Ravi", Status: "Contacted", Source: "Google"},
		{Owner: "Ravi", Status: "New", Source: "Facebook"},
		{Owner: "Ravi", Status: "New", Source: "Google"},
		{Owner: "Ravi", Status: "Contacted", Source: "Facebook"},
	}
	groups := GroupBy(leads, DimensionOwner)
	if got := groups[0].MostCommon[string(DimensionStatus)]; got != "Contacted" {
		t.Errorf("tie broke to %q, want first-seen Contacted", got)
	}
	if got := groups[0].MostCommon[string(DimensionSource)]; got != "Google" {
		t.Errorf("tie broke to %q, want first-seen Google", got)
	}
}

func TestGroupByEqualCountsKeepInputOrder(t *testing.T) {
	leads := []Lead{
		{Source: "Referral"},
		{Source: "Google"},
		{Source: "Referral"},
		{Source: "Google"},
	}
	groups := GroupBy(leads, DimensionSource)
	if groups[0].Key != "Referral" || groups[1].Key != "Google" {
		t.Errorf("order = %q, %q; want Referral, Google", groups[0].Key, groups[1].Key)
	}
}

func TestGroupByEmpty(t *testing.T) {
	if groups := GroupBy(nil, DimensionStatus); len(groups) != 0 {
		t.Errorf("len = %d, want 0", len(groups))
	}
}
