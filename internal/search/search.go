// Package search provides cross-collection search, backed by
// Meilisearch when available with an in-memory fallback.
package search

// ResultType identifies the kind of entity in a search result.
type ResultType string

const (
	ResultProject   ResultType = "project"
	ResultGrant     ResultType = "grant"
	ResultIPR       ResultType = "ipr"
	ResultIdea      ResultType = "idea"
	ResultPrototype ResultType = "prototype"
	ResultPartner   ResultType = "partner"
	ResultStartup   ResultType = "startup"
	ResultMentor    ResultType = "mentor"
	ResultResource  ResultType = "resource"
)

// Record is the flattened form of any entity as stored in the index.
type Record struct {
	ID      string     `json:"id"`
	Type    ResultType `json:"type"`
	Title   string     `json:"title"`
	Snippet string     `json:"snippet"`
	Status  string     `json:"status"`
}

// Result is a single search hit returned to the caller.
type Result struct {
	Type    ResultType `json:"type"`
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Snippet string     `json:"snippet"`
	Status  string     `json:"status,omitempty"`
}

// Query describes a search request.
type Query struct {
	Text       string
	FilterType ResultType // empty = all types
	Limit      int
	Offset     int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}
