package app

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func validProjectBody() map[string]any {
	return map[string]any{
		"title":         "Thermal Storage Pilot",
		"department":    "Mechanical Engineering",
		"lead":          "Riley Chen",
		"status":        "planning",
		"startDate":     "2025-10-01",
		"endDate":       "2026-10-01",
		"budget":        150000,
		"fundingSource": "Internal",
		"methodology":   "Experimental",
		"objectives":    []string{"Demonstrate 8h heat retention"},
		"deliverables":  []string{"Pilot rig"},
	}
}

func TestCreateProjectAssignsSequencedID(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	body := validProjectBody()
	body["id"] = "PRJ-9999-999" // client-sent ids are ignored

	rec := doJSON(t, handler, http.MethodPost, "/api/projects", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	want := fmt.Sprintf("PRJ-%d-006", time.Now().Year())
	if got := decodeMap(t, rec)["id"]; got != want {
		t.Fatalf("expected id %s, got %v", want, got)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	body := validProjectBody()
	body["title"] = ""
	body["objectives"] = []string{"   "}

	rec := doJSON(t, handler, http.MethodPost, "/api/projects", token, body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeMap(t, rec)
	details, _ := payload["details"].(map[string]any)
	if details["title"] == nil || details["objectives"] == nil {
		t.Fatalf("expected field-level problems, got %v", payload)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	body := validProjectBody()
	body["status"] = "percolating"

	rec := doJSON(t, handler, http.MethodPost, "/api/projects", token, body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestUpdateMergesPartialBody(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodPut, "/api/projects/PRJ-2025-001", token, map[string]any{
		"budget": 500000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeMap(t, rec)
	if payload["budget"] != float64(500000) {
		t.Fatalf("budget not updated: %v", payload["budget"])
	}
	if payload["title"] != "Solid-State Battery Research" {
		t.Fatalf("untouched field changed: %v", payload["title"])
	}
	if payload["id"] != "PRJ-2025-001" {
		t.Fatalf("id changed: %v", payload["id"])
	}
}

func TestUpdateKeepsRecordPosition(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodPut, "/api/projects/PRJ-2025-003", token, map[string]any{
		"lead": "Dana Fox",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed with %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/projects?pageSize=100", token, nil)
	payload := decodeMap(t, rec)
	items, _ := payload["items"].([]any)
	third, _ := items[2].(map[string]any)
	if third["id"] != "PRJ-2025-003" {
		t.Fatalf("updated record moved, position 2 holds %v", third["id"])
	}
}

func TestUpdateRejectsIllegalTransition(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	// planning → completed skips the active stage.
	rec := doJSON(t, handler, http.MethodPut, "/api/projects/PRJ-2025-002", token, map[string]any{
		"status": "completed",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if decodeMap(t, rec)["code"] != "INVALID_TRANSITION" {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/projects/PRJ-2025-002", token, map[string]any{
		"status": "active",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("legal transition rejected with %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIPRTransitionsFollowVariantTable(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	// A granted patent is terminal.
	rec := doJSON(t, handler, http.MethodPut, "/api/ipr/IPR-2024-002", token, map[string]any{
		"status": "pending",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	// A pending trademark can register.
	rec = doJSON(t, handler, http.MethodPut, "/api/ipr/IPR-2025-006", token, map[string]any{
		"status": "registered",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateCannotChangeIPRKind(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodPut, "/api/ipr/IPR-2025-001", token, map[string]any{
		"kind": "license",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if decodeMap(t, rec)["kind"] != "patent" {
		t.Fatalf("kind should be immutable: %s", rec.Body.String())
	}
}

func TestDeleteRemovesOnlyTargetRecord(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodDelete, "/api/projects/PRJ-2025-001", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/projects/PRJ-2025-001", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted record still readable: %d", rec.Code)
	}

	// No cascade: the grant funded by the same program is untouched.
	rec = doJSON(t, handler, http.MethodGet, "/api/grants", token, nil)
	if total := decodeMap(t, rec)["total"]; total != float64(5) {
		t.Fatalf("grants changed after project delete: %v", total)
	}
}

func TestDeleteUnknownRecordIs404(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	rec := doJSON(t, handler, http.MethodDelete, "/api/projects/PRJ-0000-000", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMutationDelayHonorsContext(t *testing.T) {
	_, svc := newTestServer(t)
	svc.cfg.MutationDelay = 50 * time.Millisecond

	started := time.Now()
	if err := svc.delay(t.Context()); err != nil {
		t.Fatalf("delay failed: %v", err)
	}
	if elapsed := time.Since(started); elapsed < 50*time.Millisecond {
		t.Fatalf("delay returned early after %v", elapsed)
	}
}

func TestCreateProjectRequiresDatesAndBudget(t *testing.T) {
	handler, _ := newTestServer(t)
	token := signInResearcher(t, handler)

	body := validProjectBody()
	delete(body, "startDate")
	delete(body, "endDate")
	body["budget"] = 0

	rec := doJSON(t, handler, http.MethodPost, "/api/projects", token, body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	details, _ := decodeMap(t, rec)["details"].(map[string]any)
	for _, field := range []string{"startDate", "endDate", "budget"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected a %s problem, got %v", field, details)
		}
	}
}
