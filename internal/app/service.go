package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"catalyst/api/internal/auth"
	"catalyst/api/internal/authpw"
	"catalyst/api/internal/config"
	"catalyst/api/internal/export"
	"catalyst/api/internal/rbac"
	"catalyst/api/internal/search"
	"catalyst/api/internal/session"
	"catalyst/api/internal/store"
	"catalyst/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Email        string
	Role         string
	JTI          string
	ExpiresAt    time.Time
}

type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash string, identity session.Identity, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (session.Identity, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
	RevokeAccessToken(ctx context.Context, jti string, until time.Time) error
	IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error)
	Ping(ctx context.Context) error
}

type Service struct {
	cfg      config.Config
	store    *store.Store
	sessions sessionStore
	authpw   *authpw.Service
	search   *search.Service
	res      *resources
}

// New wires the service. meili may be nil; search then runs entirely on
// the in-memory scan.
func New(cfg config.Config, st *store.Store, sessions sessionStore, meili *search.Meili) *Service {
	res := newResources(st)
	return &Service{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		authpw:   authpw.NewService(st, st.Users.NewID),
		search:   search.NewService(meili, search.NewLocal(res.snapshot)),
		res:      res,
	}
}

// Bootstrap restores the persisted collections and pushes the full
// snapshot into Meilisearch when it is available.
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		return err
	}
	s.search.ReindexAll()
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.sessions.Ping(ctx)
}

func (s *Service) Can(role string, action rbac.Action) bool {
	return rbac.Can(rbac.Normalize(role), action)
}

func assignableRole(role string) bool {
	for _, known := range rbac.Roles() {
		if string(known) == role {
			return true
		}
	}
	return false
}

func (s *Service) Search(q search.Query) search.Response {
	return s.search.Search(q)
}

func (s *Service) SearchMode() string {
	return s.search.Mode()
}

// CreateUser is the admin path for provisioning accounts. Unlike
// self-service signup it keeps the role the admin picked; a role
// outside the assignable set is rejected rather than silently
// normalized.
func (s *Service) CreateUser(ctx context.Context, name, email, password, role string) (store.User, error) {
	if !assignableRole(role) {
		return store.User{}, errValidation("Validation failed", map[string]string{
			"role": fmt.Sprintf("unknown role %q", role),
		})
	}
	if err := s.delay(ctx); err != nil {
		return store.User{}, err
	}
	user, err := s.authpw.SignUp(ctx, authpw.SignUpRequest{Name: name, Email: email, Password: password, Role: role})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return store.User{}, err
		}
		return store.User{}, errValidation(err.Error(), nil)
	}
	return user, nil
}

// delay models the deliberate round-trip latency every mutation carries.
// Reads are never delayed.
func (s *Service) delay(ctx context.Context) error {
	if s.cfg.MutationDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.MutationDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := s.authpw.SignIn(ctx, authpw.SignInRequest{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

// SignUp is the public self-service path. Accounts always start as
// researchers; a caller-supplied role is ignored. Other roles are
// assigned by an admin through the users surface.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (Session, error) {
	user, err := s.authpw.SignUp(ctx, authpw.SignUpRequest{Name: name, Email: email, Password: password, Role: string(rbac.RoleResearcher)})
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	identity, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	// Re-read the account so role or status changes take effect at
	// rotation time.
	user, err := s.store.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return Session{}, session.ErrNoSession
	}
	if user.Status == "deactivated" {
		return Session{}, session.ErrNoSession
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:   user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	identity := session.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), identity, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		UserName:     user.Name,
		Email:        user.Email,
		Role:         user.Role,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}
	revoked, err := s.sessions.IsAccessTokenRevoked(ctx, claims.JTI)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, auth.ErrInvalidToken
	}

	user, err := s.store.GetUserByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, auth.ErrInvalidToken
	}
	if user.Status == "deactivated" {
		return Session{}, auth.ErrInvalidToken
	}

	return Session{
		Token:     token,
		UserID:    user.ID,
		UserName:  user.Name,
		Email:     user.Email,
		Role:      user.Role,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, sess Session, refreshToken string) error {
	if sess.JTI != "" {
		_ = s.sessions.RevokeAccessToken(ctx, sess.JTI, sess.ExpiresAt)
	}
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

// Generic CRUD path shared by every collection endpoint.

func getRecord[T any](res *resource[T], id string) (T, error) {
	item, ok := res.collection.Get(id)
	if !ok {
		var zero T
		return zero, errNotFound()
	}
	return item, nil
}

func createRecord[T any](ctx context.Context, s *Service, res *resource[T], item T) (T, error) {
	var zero T
	// The server owns identifiers; whatever the client sent is replaced.
	item = res.withID(item, res.collection.NewID())

	problems := res.validate(item)
	if !res.transitions(item).Known(res.statusOf(item)) {
		problems["status"] = fmt.Sprintf("unknown status %q", res.statusOf(item))
	}
	if len(problems) > 0 {
		return zero, errValidation("Validation failed", problems)
	}

	if err := s.delay(ctx); err != nil {
		return zero, err
	}
	if err := res.collection.Insert(ctx, item); err != nil {
		return zero, err
	}
	if res.record != nil {
		s.search.IndexRecord(res.record(item))
	}
	return item, nil
}

func updateRecord[T any](ctx context.Context, s *Service, res *resource[T], id string, patch map[string]any) (T, error) {
	var zero T
	current, ok := res.collection.Get(id)
	if !ok {
		return zero, errNotFound()
	}

	// Identity and discriminant fields never change through a patch.
	delete(patch, "id")
	delete(patch, "kind")

	merged, err := mergePatch(current, patch)
	if err != nil {
		return zero, domainError(http.StatusBadRequest, "INVALID_BODY", "Patch does not fit the record shape", nil)
	}
	if res.fixup != nil {
		merged = res.fixup(current, merged)
	}

	from, to := res.statusOf(current), res.statusOf(merged)
	if !res.transitions(current).Allows(from, to) {
		return zero, domainError(http.StatusConflict, "INVALID_TRANSITION",
			fmt.Sprintf("cannot move %s from %q to %q", res.name, from, to), nil)
	}
	if problems := res.validate(merged); len(problems) > 0 {
		return zero, errValidation("Validation failed", problems)
	}

	if err := s.delay(ctx); err != nil {
		return zero, err
	}
	replaced, err := res.collection.Replace(ctx, id, merged)
	if err != nil {
		return zero, err
	}
	if !replaced {
		return zero, errNotFound()
	}
	if res.record != nil {
		s.search.IndexRecord(res.record(merged))
	}
	return merged, nil
}

func deleteRecord[T any](ctx context.Context, s *Service, res *resource[T], id string) error {
	if _, ok := res.collection.Get(id); !ok {
		return errNotFound()
	}
	if err := s.delay(ctx); err != nil {
		return err
	}
	removed, err := res.collection.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return errNotFound()
	}
	if res.record != nil {
		s.search.DeleteRecord(id)
	}
	return nil
}

// mergePatch overlays the patch onto the JSON form of the current record
// and decodes the result back. Unknown keys in the patch are rejected by
// the decode step.
func mergePatch[T any](current T, patch map[string]any) (T, error) {
	var zero T
	raw, err := json.Marshal(current)
	if err != nil {
		return zero, err
	}
	base := map[string]any{}
	if err := json.Unmarshal(raw, &base); err != nil {
		return zero, err
	}
	for key, value := range patch {
		base[key] = value
	}
	combined, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}

	var merged T
	decoder := json.NewDecoder(bytes.NewReader(combined))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&merged); err != nil {
		return zero, err
	}
	return merged, nil
}

// Import and export cover projects and grants.

// ImportProjects appends a batch after checking every element. One bad
// element rejects the whole batch; the collection is never partially
// written.
func (s *Service) ImportProjects(ctx context.Context, items []store.Project) (int, error) {
	return importRecords(ctx, s, &s.res.projects, items, func(p store.Project) map[string]string {
		problems := map[string]string{}
		if p.Title == "" {
			problems["title"] = "title is required"
		}
		if p.Department == "" {
			problems["department"] = "department is required"
		}
		return problems
	})
}

func (s *Service) ImportGrants(ctx context.Context, items []store.Grant) (int, error) {
	return importRecords(ctx, s, &s.res.grants, items, func(g store.Grant) map[string]string {
		problems := map[string]string{}
		if g.Title == "" {
			problems["title"] = "title is required"
		}
		if g.Agency == "" {
			problems["agency"] = "agency is required"
		}
		return problems
	})
}

func importRecords[T any](ctx context.Context, s *Service, res *resource[T], items []T, check func(T) map[string]string) (int, error) {
	if len(items) == 0 {
		return 0, errValidation("Import batch is empty", nil)
	}

	seen := map[string]bool{}
	var details []string
	for i, item := range items {
		id := res.idOf(item)
		switch {
		case id == "":
			details = append(details, fmt.Sprintf("item %d: id is required", i))
		case seen[id]:
			details = append(details, fmt.Sprintf("item %d: duplicate id %q in batch", i, id))
		default:
			if _, exists := res.collection.Get(id); exists {
				details = append(details, fmt.Sprintf("item %d: id %q already exists", i, id))
			}
		}
		seen[id] = true

		if !res.transitions(item).Known(res.statusOf(item)) {
			details = append(details, fmt.Sprintf("item %d: unknown status %q", i, res.statusOf(item)))
		}
		for field, problem := range check(item) {
			details = append(details, fmt.Sprintf("item %d: %s: %s", i, field, problem))
		}
	}
	if len(details) > 0 {
		return 0, errValidation("Import rejected", details)
	}

	if err := s.delay(ctx); err != nil {
		return 0, err
	}
	if err := res.collection.Append(ctx, items); err != nil {
		return 0, err
	}
	if res.record != nil {
		for _, item := range items {
			s.search.IndexRecord(res.record(item))
		}
	}
	return len(items), nil
}

// ExportProjects renders all projects, or just the requested ids, in the
// given format. Unknown ids are skipped.
func (s *Service) ExportProjects(format export.Format, ids []string) (*export.Result, error) {
	result, err := export.Projects(format, filterByID(&s.res.projects, ids))
	return result, wrapExportErr(err)
}

func (s *Service) ExportGrants(format export.Format, ids []string) (*export.Result, error) {
	result, err := export.Grants(format, filterByID(&s.res.grants, ids))
	return result, wrapExportErr(err)
}

func filterByID[T any](res *resource[T], ids []string) []T {
	items := res.collection.Items()
	if len(ids) == 0 {
		return items
	}
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	filtered := make([]T, 0, len(ids))
	for _, item := range items {
		if wanted[res.idOf(item)] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func wrapExportErr(err error) error {
	if errors.Is(err, export.ErrUnsupportedFormat) {
		return errValidation("format must be json or csv", nil)
	}
	return err
}
