package app

import (
	"catalyst/api/internal/listview"
	"catalyst/api/internal/rbac"
	"catalyst/api/internal/search"
	"catalyst/api/internal/store"
)

// resource bundles everything the generic CRUD path needs to know about
// one collection: how to list it, which status moves are legal, how to
// validate a record, and how it appears in search. record is nil for
// collections that stay out of the search index.
type resource[T any] struct {
	name        string
	collection  *store.Collection[T]
	schema      listview.Schema[T]
	transitions func(T) store.Transitions
	validate    func(T) map[string]string
	idOf        func(T) string
	withID      func(T, string) T
	statusOf    func(T) string
	record      func(T) search.Record
	// fixup reconciles fields the merge cannot carry over (values that
	// never serialize, normalized enums). May be nil.
	fixup func(current, merged T) T
}

type resources struct {
	projects   resource[store.Project]
	grants     resource[store.Grant]
	ipr        resource[store.IPRItem]
	ideas      resource[store.Idea]
	prototypes resource[store.Prototype]
	partners   resource[store.Partner]
	startups   resource[store.Startup]
	mentors    resource[store.Mentor]
	resources  resource[store.Resource]
	users      resource[store.User]
}

func newResources(st *store.Store) *resources {
	return &resources{
		projects: resource[store.Project]{
			name:        "projects",
			collection:  st.Projects,
			schema:      projectSchema(),
			transitions: func(store.Project) store.Transitions { return store.ProjectTransitions },
			validate:    validateProject,
			idOf:        func(p store.Project) string { return p.ID },
			withID:      func(p store.Project, id string) store.Project { p.ID = id; return p },
			statusOf:    func(p store.Project) string { return p.Status },
			record: func(p store.Project) search.Record {
				return search.Record{ID: p.ID, Type: search.ResultProject, Title: p.Title, Snippet: snippet(p.Description, p.Department), Status: p.Status}
			},
		},
		grants: resource[store.Grant]{
			name:        "grants",
			collection:  st.Grants,
			schema:      grantSchema(),
			transitions: func(store.Grant) store.Transitions { return store.GrantTransitions },
			validate:    validateGrant,
			idOf:        func(g store.Grant) string { return g.ID },
			withID:      func(g store.Grant, id string) store.Grant { g.ID = id; return g },
			statusOf:    func(g store.Grant) string { return g.Status },
			record: func(g store.Grant) search.Record {
				return search.Record{ID: g.ID, Type: search.ResultGrant, Title: g.Title, Snippet: g.Agency, Status: g.Status}
			},
		},
		ipr: resource[store.IPRItem]{
			name:        "ipr",
			collection:  st.IPR,
			schema:      iprSchema(),
			transitions: func(i store.IPRItem) store.Transitions { return store.IPRTransitions(i.Kind) },
			validate:    validateIPR,
			idOf:        func(i store.IPRItem) string { return i.ID },
			withID:      func(i store.IPRItem, id string) store.IPRItem { i.ID = id; return i },
			statusOf:    func(i store.IPRItem) string { return i.Status },
			record: func(i store.IPRItem) search.Record {
				return search.Record{ID: i.ID, Type: search.ResultIPR, Title: i.Title, Snippet: snippet(i.Owner, i.Kind), Status: i.Status}
			},
		},
		ideas: resource[store.Idea]{
			name:        "ideas",
			collection:  st.Ideas,
			schema:      ideaSchema(),
			transitions: func(store.Idea) store.Transitions { return store.IdeaTransitions },
			validate:    validateIdea,
			idOf:        func(i store.Idea) string { return i.ID },
			withID:      func(i store.Idea, id string) store.Idea { i.ID = id; return i },
			statusOf:    func(i store.Idea) string { return i.Status },
			record: func(i store.Idea) search.Record {
				return search.Record{ID: i.ID, Type: search.ResultIdea, Title: i.Title, Snippet: snippet(i.Description, i.Author), Status: i.Status}
			},
		},
		prototypes: resource[store.Prototype]{
			name:        "prototypes",
			collection:  st.Prototypes,
			schema:      prototypeSchema(),
			transitions: func(store.Prototype) store.Transitions { return store.PrototypeTransitions },
			validate:    validatePrototype,
			idOf:        func(p store.Prototype) string { return p.ID },
			withID:      func(p store.Prototype, id string) store.Prototype { p.ID = id; return p },
			statusOf:    func(p store.Prototype) string { return p.Status },
			record: func(p store.Prototype) search.Record {
				return search.Record{ID: p.ID, Type: search.ResultPrototype, Title: p.Title, Snippet: p.Owner, Status: p.Status}
			},
		},
		partners: resource[store.Partner]{
			name:        "partners",
			collection:  st.Partners,
			schema:      partnerSchema(),
			transitions: func(store.Partner) store.Transitions { return store.PartnerTransitions },
			validate:    validatePartner,
			idOf:        func(p store.Partner) string { return p.ID },
			withID:      func(p store.Partner, id string) store.Partner { p.ID = id; return p },
			statusOf:    func(p store.Partner) string { return p.Status },
			record: func(p store.Partner) search.Record {
				return search.Record{ID: p.ID, Type: search.ResultPartner, Title: p.Name, Snippet: snippet(p.Country, p.Type), Status: p.Status}
			},
		},
		startups: resource[store.Startup]{
			name:        "startups",
			collection:  st.Startups,
			schema:      startupSchema(),
			transitions: func(store.Startup) store.Transitions { return store.StartupTransitions },
			validate:    validateStartup,
			idOf:        func(s store.Startup) string { return s.ID },
			withID:      func(s store.Startup, id string) store.Startup { s.ID = id; return s },
			statusOf:    func(s store.Startup) string { return s.Status },
			record: func(s store.Startup) search.Record {
				return search.Record{ID: s.ID, Type: search.ResultStartup, Title: s.Name, Snippet: s.Sector, Status: s.Status}
			},
		},
		mentors: resource[store.Mentor]{
			name:        "mentors",
			collection:  st.Mentors,
			schema:      mentorSchema(),
			transitions: func(store.Mentor) store.Transitions { return store.MentorTransitions },
			validate:    validateMentor,
			idOf:        func(m store.Mentor) string { return m.ID },
			withID:      func(m store.Mentor, id string) store.Mentor { m.ID = id; return m },
			statusOf:    func(m store.Mentor) string { return m.Status },
			record: func(m store.Mentor) search.Record {
				return search.Record{ID: m.ID, Type: search.ResultMentor, Title: m.Name, Snippet: m.Expertise, Status: m.Status}
			},
		},
		resources: resource[store.Resource]{
			name:        "resources",
			collection:  st.Resources,
			schema:      resourceSchema(),
			transitions: func(store.Resource) store.Transitions { return store.ResourceTransitions },
			validate:    validateResource,
			idOf:        func(r store.Resource) string { return r.ID },
			withID:      func(r store.Resource, id string) store.Resource { r.ID = id; return r },
			statusOf:    func(r store.Resource) string { return r.Status },
			record: func(r store.Resource) search.Record {
				return search.Record{ID: r.ID, Type: search.ResultResource, Title: r.Name, Snippet: r.Location, Status: r.Status}
			},
		},
		users: resource[store.User]{
			name:        "users",
			collection:  st.Users,
			schema:      userSchema(),
			transitions: func(store.User) store.Transitions { return store.UserTransitions },
			validate:    validateUser,
			idOf:        func(u store.User) string { return u.ID },
			withID:      func(u store.User, id string) store.User { u.ID = id; return u },
			statusOf:    func(u store.User) string { return u.Status },
			fixup: func(current, merged store.User) store.User {
				// The hash never round-trips through JSON; carry it over.
				merged.PasswordHash = current.PasswordHash
				merged.Role = string(rbac.Normalize(merged.Role))
				return merged
			},
		},
	}
}

// snapshot flattens every indexed collection into search records for the
// fallback scanner and startup reindexing.
func (rs *resources) snapshot() []search.Record {
	var records []search.Record
	records = appendRecords(records, &rs.projects)
	records = appendRecords(records, &rs.grants)
	records = appendRecords(records, &rs.ipr)
	records = appendRecords(records, &rs.ideas)
	records = appendRecords(records, &rs.prototypes)
	records = appendRecords(records, &rs.partners)
	records = appendRecords(records, &rs.startups)
	records = appendRecords(records, &rs.mentors)
	records = appendRecords(records, &rs.resources)
	return records
}

func appendRecords[T any](dst []search.Record, res *resource[T]) []search.Record {
	if res.record == nil {
		return dst
	}
	for _, item := range res.collection.Items() {
		dst = append(dst, res.record(item))
	}
	return dst
}

func snippet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func projectSchema() listview.Schema[store.Project] {
	return listview.Schema[store.Project]{
		SearchText: func(p store.Project) []string {
			return []string{p.ID, p.Title, p.Description, p.Department, p.Lead}
		},
		Field: func(p store.Project, name string) (listview.Value, bool) {
			switch name {
			case "title":
				return listview.Text(p.Title), true
			case "department":
				return listview.Text(p.Department), true
			case "lead":
				return listview.Text(p.Lead), true
			case "status":
				return listview.Text(p.Status), true
			case "budget":
				return listview.Number(p.Budget), true
			case "startDate":
				return listview.Text(p.StartDate), true
			case "endDate":
				return listview.Text(p.EndDate), true
			case "fundingSource":
				return listview.Text(p.FundingSource), true
			case "tags":
				return listview.List(p.Tags), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func grantSchema() listview.Schema[store.Grant] {
	return listview.Schema[store.Grant]{
		SearchText: func(g store.Grant) []string {
			return []string{g.ID, g.Title, g.Agency, g.PI}
		},
		Field: func(g store.Grant, name string) (listview.Value, bool) {
			switch name {
			case "title":
				return listview.Text(g.Title), true
			case "agency":
				return listview.Text(g.Agency), true
			case "pi":
				return listview.Text(g.PI), true
			case "status":
				return listview.Text(g.Status), true
			case "amount":
				return listview.Number(g.Amount), true
			case "deadline":
				return listview.Text(g.Deadline), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

// iprSchema exposes variant fields only on the kinds that carry them, so
// a filter on a variant field excludes other kinds instead of matching
// their zero values.
func iprSchema() listview.Schema[store.IPRItem] {
	return listview.Schema[store.IPRItem]{
		SearchText: func(i store.IPRItem) []string {
			return []string{i.ID, i.Title, i.Owner, i.PatentNumber, i.RegistrationNumber, i.Licensee}
		},
		Field: func(i store.IPRItem, name string) (listview.Value, bool) {
			switch name {
			case "kind":
				return listview.Text(i.Kind), true
			case "title":
				return listview.Text(i.Title), true
			case "status":
				return listview.Text(i.Status), true
			case "owner":
				return listview.Text(i.Owner), true
			case "filingDate":
				return listview.Text(i.FilingDate), true
			case "patentNumber":
				if i.Kind != store.KindPatent {
					return listview.Value{}, false
				}
				return listview.Text(i.PatentNumber), true
			case "inventors":
				if i.Kind != store.KindPatent {
					return listview.Value{}, false
				}
				return listview.List(i.Inventors), true
			case "countries":
				if i.Kind != store.KindTrademark {
					return listview.Value{}, false
				}
				return listview.List(i.Countries), true
			case "class":
				if i.Kind != store.KindTrademark {
					return listview.Value{}, false
				}
				return listview.Text(i.Class), true
			case "work":
				if i.Kind != store.KindCopyright {
					return listview.Value{}, false
				}
				return listview.Text(i.Work), true
			case "registrationNumber":
				if i.Kind != store.KindCopyright {
					return listview.Value{}, false
				}
				return listview.Text(i.RegistrationNumber), true
			case "licensee":
				if i.Kind != store.KindLicense {
					return listview.Value{}, false
				}
				return listview.Text(i.Licensee), true
			case "territories":
				if i.Kind != store.KindLicense {
					return listview.Value{}, false
				}
				return listview.List(i.Territories), true
			case "royalty":
				if i.Kind != store.KindLicense {
					return listview.Value{}, false
				}
				return listview.Number(i.Royalty), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func ideaSchema() listview.Schema[store.Idea] {
	return listview.Schema[store.Idea]{
		SearchText: func(i store.Idea) []string {
			return []string{i.ID, i.Title, i.Author, i.Description}
		},
		Field: func(i store.Idea, name string) (listview.Value, bool) {
			switch name {
			case "title":
				return listview.Text(i.Title), true
			case "author":
				return listview.Text(i.Author), true
			case "category":
				return listview.Text(i.Category), true
			case "status":
				return listview.Text(i.Status), true
			case "votes":
				return listview.Number(float64(i.Votes)), true
			case "submittedDate":
				return listview.Text(i.SubmittedDate), true
			case "tags":
				return listview.List(i.Tags), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func prototypeSchema() listview.Schema[store.Prototype] {
	return listview.Schema[store.Prototype]{
		SearchText: func(p store.Prototype) []string {
			return []string{p.ID, p.Title, p.Owner}
		},
		Field: func(p store.Prototype, name string) (listview.Value, bool) {
			switch name {
			case "title":
				return listview.Text(p.Title), true
			case "owner":
				return listview.Text(p.Owner), true
			case "status":
				return listview.Text(p.Status), true
			case "budget":
				return listview.Number(p.Budget), true
			case "startDate":
				return listview.Text(p.StartDate), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func partnerSchema() listview.Schema[store.Partner] {
	return listview.Schema[store.Partner]{
		SearchText: func(p store.Partner) []string {
			return []string{p.ID, p.Name, p.Contact, p.Country}
		},
		Field: func(p store.Partner, name string) (listview.Value, bool) {
			switch name {
			case "name":
				return listview.Text(p.Name), true
			case "type":
				return listview.Text(p.Type), true
			case "country":
				return listview.Text(p.Country), true
			case "status":
				return listview.Text(p.Status), true
			case "since":
				return listview.Text(p.Since), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func startupSchema() listview.Schema[store.Startup] {
	return listview.Schema[store.Startup]{
		SearchText: func(s store.Startup) []string {
			return []string{s.ID, s.Name, s.Founder, s.Sector}
		},
		Field: func(s store.Startup, name string) (listview.Value, bool) {
			switch name {
			case "name":
				return listview.Text(s.Name), true
			case "founder":
				return listview.Text(s.Founder), true
			case "sector":
				return listview.Text(s.Sector), true
			case "status":
				return listview.Text(s.Status), true
			case "funding":
				return listview.Number(s.Funding), true
			case "founded":
				return listview.Text(s.Founded), true
			case "employees":
				return listview.Number(float64(s.Employees)), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func mentorSchema() listview.Schema[store.Mentor] {
	return listview.Schema[store.Mentor]{
		SearchText: func(m store.Mentor) []string {
			return []string{m.ID, m.Name, m.Email, m.Expertise, m.Organization}
		},
		Field: func(m store.Mentor, name string) (listview.Value, bool) {
			switch name {
			case "name":
				return listview.Text(m.Name), true
			case "expertise":
				return listview.Text(m.Expertise), true
			case "organization":
				return listview.Text(m.Organization), true
			case "status":
				return listview.Text(m.Status), true
			case "mentees":
				return listview.Number(float64(m.Mentees)), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func resourceSchema() listview.Schema[store.Resource] {
	return listview.Schema[store.Resource]{
		SearchText: func(r store.Resource) []string {
			return []string{r.ID, r.Name, r.Location}
		},
		Field: func(r store.Resource, name string) (listview.Value, bool) {
			switch name {
			case "name":
				return listview.Text(r.Name), true
			case "type":
				return listview.Text(r.Type), true
			case "location":
				return listview.Text(r.Location), true
			case "status":
				return listview.Text(r.Status), true
			case "capacity":
				return listview.Number(float64(r.Capacity)), true
			default:
				return listview.Value{}, false
			}
		},
	}
}

func userSchema() listview.Schema[store.User] {
	return listview.Schema[store.User]{
		SearchText: func(u store.User) []string {
			return []string{u.ID, u.Name, u.Email}
		},
		Field: func(u store.User, name string) (listview.Value, bool) {
			switch name {
			case "name":
				return listview.Text(u.Name), true
			case "email":
				return listview.Text(u.Email), true
			case "role":
				return listview.Text(u.Role), true
			case "status":
				return listview.Text(u.Status), true
			default:
				return listview.Value{}, false
			}
		},
	}
}
