package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"catalyst/api/internal/config"
	"catalyst/api/internal/session"
	"catalyst/api/internal/store"
)

// memSessions is an in-memory stand-in for the Redis session store.
type memSessions struct {
	mu      sync.Mutex
	refresh map[string]session.Identity
	revoked map[string]bool
	pingErr error
}

func newMemSessions() *memSessions {
	return &memSessions{
		refresh: map[string]session.Identity{},
		revoked: map[string]bool{},
	}
}

func (m *memSessions) SaveRefreshSession(_ context.Context, tokenHash string, identity session.Identity, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[tokenHash] = identity
	return nil
}

func (m *memSessions) LookupRefreshSession(_ context.Context, tokenHash string) (session.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.refresh[tokenHash]
	if !ok {
		return session.Identity{}, session.ErrNoSession
	}
	return identity, nil
}

func (m *memSessions) RevokeRefreshSession(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, tokenHash)
	return nil
}

func (m *memSessions) RevokeAccessToken(_ context.Context, jti string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *memSessions) IsAccessTokenRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

func (m *memSessions) Ping(context.Context) error {
	return m.pingErr
}

func newTestServer(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load store: %v", err)
	}
	cfg := config.Config{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		CORSOrigin: "*",
	}
	svc := New(cfg, st, newMemSessions(), nil)
	return NewHTTPServer(svc, cfg.CORSOrigin).Handler(), svc
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func signIn(t *testing.T, handler http.Handler, email, password string) (token, refreshToken string) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("sign-in failed with %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeMap(t, rec)
	token, _ = payload["token"].(string)
	refreshToken, _ = payload["refreshToken"].(string)
	if token == "" || refreshToken == "" {
		t.Fatalf("sign-in response missing tokens: %v", payload)
	}
	return token, refreshToken
}

func signInResearcher(t *testing.T, handler http.Handler) string {
	t.Helper()
	token, _ := signIn(t, handler, "researcher@example.com", store.DemoPassword)
	return token
}

func signInAdmin(t *testing.T, handler http.Handler) string {
	t.Helper()
	token, _ := signIn(t, handler, "admin@example.com", store.DemoPassword)
	return token
}
