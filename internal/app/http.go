package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalyst/api/internal/auth"
	"catalyst/api/internal/authpw"
	"catalyst/api/internal/export"
	"catalyst/api/internal/listview"
	"catalyst/api/internal/rbac"
	"catalyst/api/internal/search"
	"catalyst/api/internal/session"
	"catalyst/api/internal/store"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"redis":  map[string]any{"status": "ok"},
			"search": map[string]any{"mode": s.service.SearchMode()},
		}

		if err := s.service.Ping(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["redis"] = map[string]any{
				"status": "error",
				"error":  err.Error(),
			}
		}

		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	// Auth routes (no session required)
	if r.Method == http.MethodPost && r.URL.Path == "/api/auth/signup" {
		s.handleSignUp(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/auth/signin" {
		s.handleSignIn(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/session" {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false, "user": nil})
			return
		}
		sess, err := s.service.SessionFromToken(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false, "user": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"user":          sessionUser(sess),
		})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/session/refresh" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		sess, err := s.service.Refresh(r.Context(), body.RefreshToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token invalid", nil)
			return
		}
		writeJSON(w, http.StatusOK, sessionPayload(sess))
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/session/logout" {
		sess := Session{}
		if token := bearerToken(r); token != "" {
			if parsed, err := s.service.SessionFromToken(r.Context(), token); err == nil {
				sess = parsed
			}
		}
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = decodeBody(r, &body)
		_ = s.service.Logout(r.Context(), sess, body.RefreshToken)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/search" {
		s.handleSearch(w, r, sess)
		return
	}

	parts := splitPath(r.URL.Path)
	if len(parts) < 2 || parts[0] != "api" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}
	name := parts[1]
	rest := parts[2:]

	// Bulk routes sit beside the per-record ones for projects and grants.
	if len(rest) == 1 && rest[0] == "export" && r.Method == http.MethodGet {
		switch name {
		case "projects":
			s.handleExport(w, r, sess, s.service.ExportProjects)
			return
		case "grants":
			s.handleExport(w, r, sess, s.service.ExportGrants)
			return
		}
	}
	if len(rest) == 1 && rest[0] == "import" && r.Method == http.MethodPost {
		switch name {
		case "projects":
			handleImport(s, w, r, sess, s.service.ImportProjects, s.service.res.projects.collection.Len)
			return
		case "grants":
			handleImport(s, w, r, sess, s.service.ImportGrants, s.service.res.grants.collection.Len)
			return
		}
	}

	switch name {
	case "projects":
		serveCollection(s, w, r, sess, &s.service.res.projects, rest)
	case "grants":
		serveCollection(s, w, r, sess, &s.service.res.grants, rest)
	case "ipr":
		serveCollection(s, w, r, sess, &s.service.res.ipr, rest)
	case "ideas":
		serveCollection(s, w, r, sess, &s.service.res.ideas, rest)
	case "prototypes":
		serveCollection(s, w, r, sess, &s.service.res.prototypes, rest)
	case "partners":
		serveCollection(s, w, r, sess, &s.service.res.partners, rest)
	case "startups":
		serveCollection(s, w, r, sess, &s.service.res.startups, rest)
	case "mentors":
		serveCollection(s, w, r, sess, &s.service.res.mentors, rest)
	case "resources":
		serveCollection(s, w, r, sess, &s.service.res.resources, rest)
	case "users":
		s.serveUsers(w, r, sess, rest)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

// serveCollection is the shared list/create/get/update/delete path.
func serveCollection[T any](s *HTTPServer, w http.ResponseWriter, r *http.Request, sess Session, res *resource[T], rest []string) {
	if len(rest) > 1 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}

	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		if !s.service.Can(sess.Role, rbac.ActionRead) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
			return
		}
		q, err := parseListQuery(r)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, listview.Apply(res.collection.Items(), res.schema, q))

	case len(rest) == 0 && r.Method == http.MethodPost:
		if !s.service.Can(sess.Role, rbac.ActionWrite) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
			return
		}
		var item T
		if err := decodeBody(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		created, err := createRecord(r.Context(), s.service, res, item)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case len(rest) == 1 && r.Method == http.MethodGet:
		if !s.service.Can(sess.Role, rbac.ActionRead) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
			return
		}
		item, err := getRecord(res, rest[0])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, item)

	case len(rest) == 1 && r.Method == http.MethodPut:
		if !s.service.Can(sess.Role, rbac.ActionWrite) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
			return
		}
		patch := map[string]any{}
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		updated, err := updateRecord(r.Context(), s.service, res, rest[0], patch)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case len(rest) == 1 && r.Method == http.MethodDelete:
		if !s.service.Can(sess.Role, rbac.ActionDelete) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
			return
		}
		if err := deleteRecord(r.Context(), s.service, res, rest[0]); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	}
}

// serveUsers is the account surface; every method is admin-only.
func (s *HTTPServer) serveUsers(w http.ResponseWriter, r *http.Request, sess Session, rest []string) {
	if !s.service.Can(sess.Role, rbac.ActionManageUsers) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
		return
	}

	if len(rest) == 0 && r.Method == http.MethodPost {
		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		user, err := s.service.CreateUser(r.Context(), body.Name, body.Email, body.Password, body.Role)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, user)
		return
	}

	if len(rest) == 1 && r.Method == http.MethodDelete && rest[0] == sess.UserID {
		writeError(w, http.StatusConflict, "SELF_DELETE", "Cannot delete the signed-in account", nil)
		return
	}

	serveCollection(s, w, r, sess, &s.service.res.users, rest)
}

func (s *HTTPServer) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	sess, err := s.service.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, authpw.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "SERVER_ERROR", "Sign-in failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (s *HTTPServer) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	sess, err := s.service.SignUp(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			writeError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already registered", nil)
			return
		}
		writeError(w, http.StatusBadRequest, "SIGNUP_FAILED", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusCreated, sessionPayload(sess))
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request, sess Session) {
	if !s.service.Can(sess.Role, rbac.ActionRead) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	filterType := search.ResultType(strings.TrimSpace(r.URL.Query().Get("type")))
	if filterType != "" && !knownResultType(filterType) {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "unknown search type", nil)
		return
	}
	limit := 20
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}
	offset := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "offset must be a non-negative integer", nil)
			return
		}
		offset = parsed
	}

	payload := s.service.Search(search.Query{Text: q, FilterType: filterType, Limit: limit, Offset: offset})
	writeJSON(w, http.StatusOK, payload)
}

func knownResultType(t search.ResultType) bool {
	switch t {
	case search.ResultProject, search.ResultGrant, search.ResultIPR, search.ResultIdea,
		search.ResultPrototype, search.ResultPartner, search.ResultStartup,
		search.ResultMentor, search.ResultResource:
		return true
	}
	return false
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request, sess Session, doExport func(export.Format, []string) (*export.Result, error)) {
	if !s.service.Can(sess.Role, rbac.ActionRead) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
		return
	}

	format := export.Format(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = export.FormatJSON
	}
	var ids []string
	if raw := strings.TrimSpace(r.URL.Query().Get("ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
	}

	result, err := doExport(format, ids)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func handleImport[T any](s *HTTPServer, w http.ResponseWriter, r *http.Request, sess Session, doImport func(context.Context, []T) (int, error), total func() int) {
	if !s.service.Can(sess.Role, rbac.ActionWrite) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
		return
	}

	var items []T
	if err := decodeBody(r, &items); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	imported, err := doImport(r.Context(), items)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": imported, "total": total()})
}

func sessionUser(sess Session) map[string]any {
	return map[string]any{
		"id":    sess.UserID,
		"name":  sess.UserName,
		"email": sess.Email,
		"role":  sess.Role,
	}
}

func sessionPayload(sess Session) map[string]any {
	return map[string]any{
		"token":        sess.Token,
		"refreshToken": sess.RefreshToken,
		"user":         sessionUser(sess),
	}
}

// parseListQuery maps query parameters onto the list pipeline. Reserved
// keys configure search, sort, and paging; min_/max_ prefixes bound
// numeric fields; anything else is an equality filter on that field.
func parseListQuery(r *http.Request) (listview.Query, error) {
	q := listview.Query{
		Filters: map[string]string{},
		Ranges:  map[string]listview.Range{},
	}
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])
		switch key {
		case "q":
			q.Search = value
		case "page":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return q, fmt.Errorf("page must be an integer")
			}
			q.Page = parsed
		case "pageSize":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return q, fmt.Errorf("pageSize must be an integer")
			}
			q.PageSize = parsed
		case "sort":
			q.SortKey = value
		case "dir":
			if value == string(listview.Desc) {
				q.SortDir = listview.Desc
			} else {
				q.SortDir = listview.Asc
			}
		default:
			if field, ok := strings.CutPrefix(key, "min_"); ok {
				bound, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return q, fmt.Errorf("%s must be a number", key)
				}
				rng := q.Ranges[field]
				rng.Min = bound
				rng.HasMin = true
				q.Ranges[field] = rng
			} else if field, ok := strings.CutPrefix(key, "max_"); ok {
				bound, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return q, fmt.Errorf("%s must be a number", key)
				}
				rng := q.Ranges[field]
				rng.Max = bound
				rng.HasMax = true
				q.Ranges[field] = rng
			} else {
				q.Filters[key] = value
			}
		}
	}
	return q, nil
}

func (s *HTTPServer) requireSession(w http.ResponseWriter, r *http.Request) (Session, bool) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return Session{}, false
	}
	sess, err := s.service.SessionFromToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
			return Session{}, false
		}
		writeError(w, http.StatusInternalServerError, "SERVER_ERROR", "Session lookup failed", nil)
		return Session{}, false
	}
	return sess, true
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	return uuid.NewString()
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, "NOT_FOUND", "Not found", nil
	}
	if errors.Is(err, store.ErrEmailExists) {
		return http.StatusConflict, "EMAIL_EXISTS", "Email already registered", nil
	}
	if errors.Is(err, session.ErrNoSession) ||
		errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, authpw.ErrInvalidCredentials) {
		return http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
