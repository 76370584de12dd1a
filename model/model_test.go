package model

import "testing"

func TestSummaryTotal(t *testing.T) {
	s := Summary{Batches: []BatchReport{
		{Name: "a", Written: []string{"/x", "/y"}},
		{Name: "b"},
		{Name: "c", Written: []string{"/x"}},
	}}

	if got := s.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
	if got := s.Modified(); len(got) != 3 || got[2] != "/x" {
		t.Errorf("Modified() = %v", got)
	}
	if s.Batches[1].Changed() {
		t.Errorf("batch b should not be changed")
	}
}
