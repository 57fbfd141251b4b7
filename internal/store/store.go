package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// KV keys for the two collections that survive a restart. Everything
// else reseeds from fixtures on startup.
const (
	keyProjects = "projects"
	keyGrants   = "grants"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrEmailExists = errors.New("email already registered")
)

// Store aggregates every entity collection. Each collection owns its
// records exclusively; there are no shared references across
// collections and no cascade on delete.
type Store struct {
	Projects   *Collection[Project]
	Grants     *Collection[Grant]
	IPR        *Collection[IPRItem]
	Ideas      *Collection[Idea]
	Prototypes *Collection[Prototype]
	Partners   *Collection[Partner]
	Startups   *Collection[Startup]
	Mentors    *Collection[Mentor]
	Resources  *Collection[Resource]
	Users      *Collection[User]
}

// New builds a fixture-seeded store. When kv is non-nil the projects and
// grants collections are bound to it; call Load before serving.
func New(kv KV) *Store {
	s := &Store{
		Projects:   NewCollection("projects", "PRJ", func(p Project) string { return p.ID }, SeedProjects()),
		Grants:     NewCollection("grants", "GRT", func(g Grant) string { return g.ID }, SeedGrants()),
		IPR:        NewCollection("ipr", "IPR", func(i IPRItem) string { return i.ID }, SeedIPR()),
		Ideas:      NewCollection("ideas", "IDE", func(i Idea) string { return i.ID }, SeedIdeas()),
		Prototypes: NewCollection("prototypes", "PRO", func(p Prototype) string { return p.ID }, SeedPrototypes()),
		Partners:   NewCollection("partners", "PTR", func(p Partner) string { return p.ID }, SeedPartners()),
		Startups:   NewCollection("startups", "STP", func(s Startup) string { return s.ID }, SeedStartups()),
		Mentors:    NewCollection("mentors", "MEN", func(m Mentor) string { return m.ID }, SeedMentors()),
		Resources:  NewCollection("resources", "RES", func(r Resource) string { return r.ID }, SeedResources()),
		Users:      NewCollection("users", "USR", func(u User) string { return u.ID }, SeedUsers()),
	}
	if kv != nil {
		s.Projects.Bind(kv, keyProjects)
		s.Grants.Bind(kv, keyGrants)
	}
	return s
}

// Load restores the persisted collections from the KV port.
func (s *Store) Load(ctx context.Context) error {
	if err := s.Projects.Load(ctx); err != nil {
		return err
	}
	return s.Grants.Load(ctx)
}

// GetUserByEmail does an exact, case-insensitive email match.
func (s *Store) GetUserByEmail(_ context.Context, email string) (User, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.Users.Items() {
		if strings.ToLower(user.Email) == needle {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id string) (User, error) {
	user, ok := s.Users.Get(id)
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// CreateUser appends a new account, rejecting duplicate emails.
func (s *Store) CreateUser(ctx context.Context, user User) error {
	if _, err := s.GetUserByEmail(ctx, user.Email); err == nil {
		return ErrEmailExists
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
