package model

// BatchReport holds what one batch changed.
type BatchReport struct {
	Name  string
	Title string
	// Lines are the human-readable change descriptions, in target order.
	Lines []string
	// Written lists the absolute paths written by the batch, each at most once.
	Written []string
}

// Changed reports whether the batch modified any file.
func (r BatchReport) Changed() bool {
	return len(r.Written) > 0
}

// Summary holds the results of a run for display.
type Summary struct {
	Batches []BatchReport
	Message string
}

// Total returns the number of file writes across all batches.
func (s Summary) Total() int {
	n := 0
	for _, b := range s.Batches {
		n += len(b.Written)
	}
	return n
}

// Modified returns every written path in run order. A file touched by two
// batches appears twice.
func (s Summary) Modified() []string {
	var out []string
	for _, b := range s.Batches {
		out = append(out, b.Written...)
	}
	return out
}
