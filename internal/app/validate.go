package app

import (
	"strings"

	"catalyst/api/internal/store"
)

// Validators return a field → problem map; an empty map means the
// record is acceptable. The project form is the strict one, mirroring
// the multi-step intake flow; the rest check required fields and
// obvious nonsense.

func validateProject(p store.Project) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		problems["title"] = "title is required"
	}
	if strings.TrimSpace(p.Department) == "" {
		problems["department"] = "department is required"
	}
	if strings.TrimSpace(p.Lead) == "" {
		problems["lead"] = "lead is required"
	}
	if strings.TrimSpace(p.FundingSource) == "" {
		problems["fundingSource"] = "funding source is required"
	}
	if strings.TrimSpace(p.Methodology) == "" {
		problems["methodology"] = "methodology is required"
	}
	if p.Budget <= 0 {
		problems["budget"] = "budget must be positive"
	}
	if strings.TrimSpace(p.StartDate) == "" {
		problems["startDate"] = "start date is required"
	}
	if strings.TrimSpace(p.EndDate) == "" {
		problems["endDate"] = "end date is required"
	}
	// ISO dates compare correctly as strings.
	if p.StartDate != "" && p.EndDate != "" && p.StartDate > p.EndDate {
		problems["endDate"] = "end date must not precede start date"
	}
	if countNonBlank(p.Objectives) == 0 {
		problems["objectives"] = "at least one objective is required"
	}
	if countNonBlank(p.Deliverables) == 0 {
		problems["deliverables"] = "at least one deliverable is required"
	}
	return problems
}

func validateGrant(g store.Grant) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(g.Title) == "" {
		problems["title"] = "title is required"
	}
	if strings.TrimSpace(g.Agency) == "" {
		problems["agency"] = "agency is required"
	}
	if strings.TrimSpace(g.PI) == "" {
		problems["pi"] = "principal investigator is required"
	}
	if g.Amount < 0 {
		problems["amount"] = "amount must not be negative"
	}
	return problems
}

func validateIPR(i store.IPRItem) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(i.Title) == "" {
		problems["title"] = "title is required"
	}
	if strings.TrimSpace(i.Owner) == "" {
		problems["owner"] = "owner is required"
	}
	switch i.Kind {
	case store.KindPatent, store.KindTrademark, store.KindCopyright, store.KindLicense:
	default:
		problems["kind"] = "kind must be patent, trademark, copyright, or license"
	}
	if i.Kind == store.KindLicense && i.Royalty < 0 {
		problems["royalty"] = "royalty must not be negative"
	}
	return problems
}

func validateIdea(i store.Idea) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(i.Title) == "" {
		problems["title"] = "title is required"
	}
	if strings.TrimSpace(i.Author) == "" {
		problems["author"] = "author is required"
	}
	if i.Votes < 0 {
		problems["votes"] = "votes must not be negative"
	}
	return problems
}

func validatePrototype(p store.Prototype) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		problems["title"] = "title is required"
	}
	if strings.TrimSpace(p.Owner) == "" {
		problems["owner"] = "owner is required"
	}
	if p.Budget < 0 {
		problems["budget"] = "budget must not be negative"
	}
	return problems
}

func validatePartner(p store.Partner) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		problems["name"] = "name is required"
	}
	return problems
}

func validateStartup(s store.Startup) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(s.Name) == "" {
		problems["name"] = "name is required"
	}
	if strings.TrimSpace(s.Founder) == "" {
		problems["founder"] = "founder is required"
	}
	if s.Funding < 0 {
		problems["funding"] = "funding must not be negative"
	}
	if s.Employees < 0 {
		problems["employees"] = "employees must not be negative"
	}
	return problems
}

func validateMentor(m store.Mentor) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		problems["name"] = "name is required"
	}
	if strings.TrimSpace(m.Email) == "" {
		problems["email"] = "email is required"
	}
	if m.Mentees < 0 {
		problems["mentees"] = "mentees must not be negative"
	}
	return problems
}

func validateResource(r store.Resource) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		problems["name"] = "name is required"
	}
	if r.Capacity < 0 {
		problems["capacity"] = "capacity must not be negative"
	}
	return problems
}

func validateUser(u store.User) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(u.Name) == "" {
		problems["name"] = "name is required"
	}
	if strings.TrimSpace(u.Email) == "" {
		problems["email"] = "email is required"
	}
	return problems
}

func countNonBlank(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
