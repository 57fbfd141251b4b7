package store

// Status transition tables. Any status may stay where it is; anything
// else must be listed as a forward edge. Terminal statuses have an empty
// edge list.

type Transitions map[string][]string

var ProjectTransitions = Transitions{
	"planning":  {"active", "cancelled"},
	"active":    {"on_hold", "completed", "cancelled"},
	"on_hold":   {"active", "cancelled"},
	"completed": {},
	"cancelled": {},
}

var GrantTransitions = Transitions{
	"draft":        {"submitted"},
	"submitted":    {"under_review", "rejected"},
	"under_review": {"approved", "rejected"},
	"approved":     {},
	"rejected":     {},
}

var IdeaTransitions = Transitions{
	"submitted":    {"under_review", "archived"},
	"under_review": {"approved", "rejected"},
	"approved":     {"archived"},
	"rejected":     {"archived"},
	"archived":     {},
}

var PrototypeTransitions = Transitions{
	"planning":    {"in_progress", "cancelled"},
	"in_progress": {"testing", "cancelled"},
	"testing":     {"in_progress", "completed", "cancelled"},
	"completed":   {},
	"cancelled":   {},
}

var PartnerTransitions = Transitions{
	"active":   {"inactive"},
	"inactive": {"active"},
}

var StartupTransitions = Transitions{
	"Applicant": {"Active"},
	"Active":    {"Graduated"},
	"Graduated": {},
}

var MentorTransitions = Transitions{
	"active":   {"inactive"},
	"inactive": {"active"},
}

var ResourceTransitions = Transitions{
	"available":   {"reserved", "maintenance"},
	"reserved":    {"available"},
	"maintenance": {"available"},
}

var UserTransitions = Transitions{
	"active":      {"deactivated"},
	"deactivated": {"active"},
}

var patentTransitions = Transitions{
	"pending":   {"granted", "abandoned"},
	"granted":   {},
	"abandoned": {},
}

var trademarkTransitions = Transitions{
	"pending":    {"registered", "abandoned"},
	"registered": {"abandoned"},
	"abandoned":  {},
}

var copyrightTransitions = Transitions{
	"pending":    {"registered"},
	"registered": {},
}

var licenseTransitions = Transitions{
	"draft":      {"active"},
	"active":     {"expired", "terminated"},
	"expired":    {},
	"terminated": {},
}

// IPRTransitions returns the table for an IPR variant, nil for an
// unknown kind.
func IPRTransitions(kind string) Transitions {
	switch kind {
	case KindPatent:
		return patentTransitions
	case KindTrademark:
		return trademarkTransitions
	case KindCopyright:
		return copyrightTransitions
	case KindLicense:
		return licenseTransitions
	default:
		return nil
	}
}

// Known reports whether a status appears in the table at all.
func (t Transitions) Known(status string) bool {
	_, ok := t[status]
	return ok
}

// Allows reports whether from may move to to. Staying put is always
// allowed for a known status.
func (t Transitions) Allows(from, to string) bool {
	if !t.Known(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}
