package app

import (
	"net/http"
	"testing"

	"catalyst/api/internal/listview"
)

func listIDs(t *testing.T, payload map[string]any) []string {
	t.Helper()
	items, _ := payload["items"].([]any)
	ids := make([]string, 0, len(items))
	for _, raw := range items {
		item, _ := raw.(map[string]any)
		id, _ := item["id"].(string)
		ids = append(ids, id)
	}
	return ids
}

func TestListDefaultsToFirstPage(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload := decodeMap(t, rec)
	if payload["total"] != float64(5) || payload["page"] != float64(1) {
		t.Fatalf("unexpected paging: %v", payload)
	}
	if payload["pageSize"] != float64(listview.DefaultPageSize) {
		t.Fatalf("expected default page size, got %v", payload["pageSize"])
	}
}

func TestListStatusFilter(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects?status=active", token, nil)
	payload := decodeMap(t, rec)
	if payload["total"] != float64(2) {
		t.Fatalf("expected 2 active projects, got %v", payload["total"])
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/projects?status=all", token, nil)
	if total := decodeMap(t, rec)["total"]; total != float64(5) {
		t.Fatalf("status=all should not constrain, got %v", total)
	}
}

func TestListSearchAndFilterCombine(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects?q=battery&status=active", token, nil)
	payload := decodeMap(t, rec)
	ids := listIDs(t, payload)
	if len(ids) != 1 || ids[0] != "PRJ-2025-001" {
		t.Fatalf("expected only the battery project, got %v", ids)
	}
}

func TestListTagMembershipFilter(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects?tags=energy", token, nil)
	if total := decodeMap(t, rec)["total"]; total != float64(2) {
		t.Fatalf("expected 2 energy-tagged projects, got %v", total)
	}
}

func TestListBudgetRange(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects?min_budget=200000&max_budget=500000", token, nil)
	payload := decodeMap(t, rec)
	ids := listIDs(t, payload)
	if len(ids) != 2 {
		t.Fatalf("expected budgets 420000 and 240000, got %v", ids)
	}
}

func TestListSortDescending(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects?sort=budget&dir=desc&pageSize=100", token, nil)
	ids := listIDs(t, decodeMap(t, rec))
	if ids[0] != "PRJ-2025-003" {
		t.Fatalf("expected the largest budget first, got %v", ids)
	}
	if ids[len(ids)-1] != "PRJ-2024-004" {
		t.Fatalf("expected the smallest budget last, got %v", ids)
	}
}

func TestListPagination(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/projects?pageSize=2&page=3", token, nil)
	payload := decodeMap(t, rec)
	if payload["totalPages"] != float64(3) {
		t.Fatalf("expected 3 pages of 2, got %v", payload["totalPages"])
	}
	if items, _ := payload["items"].([]any); len(items) != 1 {
		t.Fatalf("last page should hold the remaining record, got %d", len(items))
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/projects?pageSize=2&page=9", token, nil)
	if items, _ := decodeMap(t, rec)["items"].([]any); len(items) != 0 {
		t.Fatalf("out-of-range page should be empty, got %d items", len(items))
	}
}

func TestListRejectsMalformedParams(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	for _, path := range []string{"/api/projects?page=abc", "/api/projects?min_budget=lots"} {
		rec := doJSON(t, handler, http.MethodGet, path, token, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", path, rec.Code)
		}
	}
}

func TestIPRVariantFieldFilter(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	// Only trademarks carry countries; patents must drop out silently.
	rec := doJSON(t, handler, http.MethodGet, "/api/ipr?countries=US", token, nil)
	payload := decodeMap(t, rec)
	if payload["total"] != float64(2) {
		t.Fatalf("expected the two US trademarks, got %v", payload["total"])
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/ipr?kind=patent", token, nil)
	if total := decodeMap(t, rec)["total"]; total != float64(2) {
		t.Fatalf("expected 2 patents, got %v", total)
	}
}

func TestSearchEndpointSpansCollections(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/search?q=battery", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload := decodeMap(t, rec)
	// The project, the consortium grant, and the cycler rack all match.
	if payload["total"] != float64(3) {
		t.Fatalf("expected 3 hits across collections, got %v", payload["total"])
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/search?q=battery&type=grant", token, nil)
	if total := decodeMap(t, rec)["total"]; total != float64(1) {
		t.Fatalf("expected 1 grant hit, got %v", total)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/search?q=x&type=starship", token, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown type should be rejected, got %d", rec.Code)
	}
}

func TestSearchReflectsMutations(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodDelete, "/api/resources/RES-2025-002", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed with %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/search?q=battery", token, nil)
	if total := decodeMap(t, rec)["total"]; total != float64(2) {
		t.Fatalf("expected the deleted rack to leave the results, got %v", total)
	}
}

func TestSearchRejectsNegativePaging(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	for _, path := range []string{
		"/api/search?q=battery&limit=-1",
		"/api/search?q=battery&offset=-5",
	} {
		rec := doJSON(t, handler, http.MethodGet, path, token, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d: %s", path, rec.Code, rec.Body.String())
		}
	}
}
