package search

import "log"

// Service is the facade that tries Meilisearch first and falls back to
// the in-memory scan.
type Service struct {
	meili *Meili
	local *Local
}

// NewService creates a search service. meili may be nil if Meilisearch
// is not configured.
func NewService(meili *Meili, local *Local) *Service {
	return &Service{meili: meili, local: local}
}

// primary returns the backend that should serve the next query:
// Meilisearch while it is configured and healthy, the in-memory scan
// otherwise.
func (s *Service) primary() Searcher {
	if s.meili != nil && s.meili.Healthy() {
		return s.meili
	}
	return s.local
}

// Mode reports which backend would serve a query right now.
func (s *Service) Mode() string {
	if s.primary() == Searcher(s.meili) {
		return "meilisearch"
	}
	return "local"
}

// Search queries the primary backend, dropping to the in-memory scan
// when it fails mid-flight.
func (s *Service) Search(q Query) Response {
	results, total, err := s.primary().Search(q)
	if err != nil {
		log.Printf("search: primary backend error, falling back to local scan: %v", err)
		results, total, err = s.local.Search(q)
		if err != nil {
			return Response{Results: []Result{}, Total: 0, Query: q.Text}
		}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// IndexRecord pushes one record to Meilisearch (fire-and-forget).
func (s *Service) IndexRecord(rec Record) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexRecord(rec); err != nil {
			log.Printf("search: index record %s: %v", rec.ID, err)
		}
	}()
}

// DeleteRecord removes one record from Meilisearch (fire-and-forget).
func (s *Service) DeleteRecord(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteRecord(id); err != nil {
			log.Printf("search: delete record %s: %v", id, err)
		}
	}()
}

// ReindexAll pushes the full snapshot to Meilisearch. Called at
// startup when Meilisearch is healthy.
func (s *Service) ReindexAll() {
	if s.meili == nil || !s.meili.Healthy() || s.local == nil {
		return
	}
	if err := s.meili.IndexRecords(s.local.snapshot()); err != nil {
		log.Printf("search: reindex: %v", err)
	}
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
