package store

// User is the session identity payload plus credential material. The
// password hash never serializes into API responses or the KV port.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
	Status       string `json:"status"`
	PasswordHash string `json:"-"`
}

type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Department    string   `json:"department"`
	Lead          string   `json:"lead"`
	Status        string   `json:"status"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Budget        float64  `json:"budget"`
	FundingSource string   `json:"fundingSource"`
	Methodology   string   `json:"methodology"`
	Objectives    []string `json:"objectives"`
	Deliverables  []string `json:"deliverables"`
	Tags          []string `json:"tags,omitempty"`
}

type Grant struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Agency      string  `json:"agency"`
	PI          string  `json:"pi"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Deadline    string  `json:"deadline"`
	Description string  `json:"description,omitempty"`
}

// IPR item kinds. Items share one collection; the Kind discriminant
// selects which optional fields are meaningful.
const (
	KindPatent    = "patent"
	KindTrademark = "trademark"
	KindCopyright = "copyright"
	KindLicense   = "license"
)

type IPRItem struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Owner      string `json:"owner"`
	FilingDate string `json:"filingDate"`
	// patent
	PatentNumber string   `json:"patentNumber,omitempty"`
	Inventors    []string `json:"inventors,omitempty"`
	// trademark
	Countries []string `json:"countries,omitempty"`
	Class     string   `json:"class,omitempty"`
	// copyright
	Work               string `json:"work,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	// license
	Licensee    string   `json:"licensee,omitempty"`
	Territories []string `json:"territories,omitempty"`
	Royalty     float64  `json:"royalty,omitempty"`
}

type Idea struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	Status        string   `json:"status"`
	Votes         int      `json:"votes"`
	SubmittedDate string   `json:"submittedDate"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type Prototype struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Owner     string  `json:"owner"`
	Status    string  `json:"status"`
	Budget    float64 `json:"budget"`
	StartDate string  `json:"startDate"`
	Notes     string  `json:"notes,omitempty"`
}

type Partner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Country string `json:"country"`
	Contact string `json:"contact"`
	Since   string `json:"since"`
	Status  string `json:"status"`
}

type Startup struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Founder   string  `json:"founder"`
	Sector    string  `json:"sector"`
	Status    string  `json:"status"`
	Funding   float64 `json:"funding"`
	Founded   string  `json:"founded"`
	Employees int     `json:"employees"`
}

type Mentor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Expertise    string `json:"expertise"`
	Organization string `json:"organization"`
	Mentees      int    `json:"mentees"`
	Status       string `json:"status"`
}

type Resource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}
