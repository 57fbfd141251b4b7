package search

import "strings"

// Local is the fallback searcher. It scans a fresh snapshot of every
// record on each query, so it never goes stale and never needs
// indexing calls.
type Local struct {
	snapshot func() []Record
}

// NewLocal creates a fallback searcher over a snapshot provider.
func NewLocal(snapshot func() []Record) *Local {
	return &Local{snapshot: snapshot}
}

// Healthy always reports true; the snapshot lives in process memory.
func (l *Local) Healthy() bool {
	return true
}

// Search does a case-insensitive substring scan over title and snippet.
func (l *Local) Search(q Query) ([]Result, int, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	var matches []Result
	for _, rec := range l.snapshot() {
		if q.FilterType != "" && rec.Type != q.FilterType {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.Title), needle) &&
			!strings.Contains(strings.ToLower(rec.Snippet), needle) {
			continue
		}
		matches = append(matches, Result{
			Type:    rec.Type,
			ID:      rec.ID,
			Title:   rec.Title,
			Snippet: rec.Snippet,
			Status:  rec.Status,
		})
	}

	total := len(matches)

	// Out-of-range paging values degrade to the defaults instead of
	// slicing past the bounds.
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}
