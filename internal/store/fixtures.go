package store

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the shared credential for every seeded account. It is
// a deliberate development placeholder; deployments that face real users
// must replace the seeded accounts.
const DemoPassword = "password"

// SeedUsers returns the five demo identities, one per role. Hashes are
// computed at seed time so the sign-in path runs a real bcrypt compare.
func SeedUsers() []User {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("store: seed password hash: %v", err)
	}
	accounts := []User{
		{ID: "USR-2025-001", Name: "Riley Chen", Email: "researcher@example.com", Role: "researcher"},
		{ID: "USR-2025-002", Name: "Amara Diallo", Email: "ipr.officer@example.com", Role: "ipr_officer"},
		{ID: "USR-2025-003", Name: "Jonas Weber", Email: "innovation.manager@example.com", Role: "innovation_manager"},
		{ID: "USR-2025-004", Name: "Priya Nair", Email: "startup.founder@example.com", Role: "startup_founder"},
		{ID: "USR-2025-005", Name: "Sam Okafor", Email: "admin@example.com", Role: "admin"},
	}
	for i := range accounts {
		accounts[i].Status = "active"
		accounts[i].PasswordHash = string(hash)
	}
	return accounts
}

func SeedProjects() []Project {
	return []Project{
		{
			ID: "PRJ-2025-001", Title: "Solid-State Battery Research", Department: "Materials Science",
			Lead: "Riley Chen", Status: "active", StartDate: "2025-01-15", EndDate: "2026-06-30",
			Budget: 420000, FundingSource: "National Science Fund", Methodology: "Experimental",
			Objectives:   []string{"Characterize sulfide electrolytes", "Prototype a 1Ah pouch cell"},
			Deliverables: []string{"Quarterly electrolyte report", "Pouch cell demonstrator"},
			Tags:         []string{"energy", "batteries"},
			Description:  "Next-generation solid electrolytes for high-density storage.",
		},
		{
			ID: "PRJ-2025-002", Title: "Urban Air Quality Sensing", Department: "Environmental Engineering",
			Lead: "Jonas Weber", Status: "planning", StartDate: "2025-09-01", EndDate: "2027-02-28",
			Budget: 185000, FundingSource: "City Innovation Grant", Methodology: "Field study",
			Objectives:   []string{"Deploy 40 low-cost sensor nodes"},
			Deliverables: []string{"Open sensor dataset"},
			Tags:         []string{"iot", "environment"},
			Description:  "Dense sensor network for street-level pollution mapping.",
		},
		{
			ID: "PRJ-2025-003", Title: "Protein Folding Accelerator", Department: "Computational Biology",
			Lead: "Amara Diallo", Status: "active", StartDate: "2024-11-01", EndDate: "2025-12-15",
			Budget: 610000, FundingSource: "Industry Consortium", Methodology: "Simulation",
			Objectives:   []string{"Cut folding simulation wall time by 10x"},
			Deliverables: []string{"Benchmark suite", "Accelerator library"},
			Tags:         []string{"hpc", "biology"},
			Description:  "GPU kernels for coarse-grained folding simulation.",
		},
		{
			ID: "PRJ-2024-004", Title: "Legacy Archive Digitization", Department: "Library Sciences",
			Lead: "Sam Okafor", Status: "completed", StartDate: "2024-02-01", EndDate: "2024-12-20",
			Budget: 95000, FundingSource: "Internal", Methodology: "Survey",
			Objectives:   []string{"Digitize 12,000 manuscripts"},
			Deliverables: []string{"Searchable archive portal"},
			Description:  "Bulk scanning and OCR of the historical collection.",
		},
		{
			ID: "PRJ-2025-005", Title: "Microgrid Resilience Study", Department: "Electrical Engineering",
			Lead: "Priya Nair", Status: "on_hold", StartDate: "2025-03-10", EndDate: "2026-03-10",
			Budget: 240000, FundingSource: "National Science Fund", Methodology: "Mixed methods",
			Objectives:   []string{"Model islanding behavior under storm load"},
			Deliverables: []string{"Resilience playbook"},
			Tags:         []string{"energy"},
			Description:  "Campus microgrid stress modeling.",
		},
	}
}

func SeedGrants() []Grant {
	return []Grant{
		{ID: "GRT-2025-001", Title: "Battery Materials Consortium Grant", Agency: "National Science Fund", PI: "Riley Chen", Status: "approved", Amount: 750000, Deadline: "2025-03-31", Description: "Five-year consortium funding for electrolyte research."},
		{ID: "GRT-2025-002", Title: "Air Quality Network Seed Grant", Agency: "City Innovation Office", PI: "Jonas Weber", Status: "under_review", Amount: 120000, Deadline: "2025-10-15"},
		{ID: "GRT-2025-003", Title: "Folding-at-Scale Compute Grant", Agency: "HPC Alliance", PI: "Amara Diallo", Status: "submitted", Amount: 300000, Deadline: "2025-11-30"},
		{ID: "GRT-2025-004", Title: "Resilient Campus Energy Grant", Agency: "Department of Energy", PI: "Priya Nair", Status: "draft", Amount: 480000, Deadline: "2026-01-15"},
		{ID: "GRT-2024-005", Title: "Archive Access Grant", Agency: "Heritage Foundation", PI: "Sam Okafor", Status: "rejected", Amount: 60000, Deadline: "2024-09-01"},
	}
}

func SeedIPR() []IPRItem {
	return []IPRItem{
		{ID: "IPR-2025-001", Kind: KindPatent, Title: "Sulfide Electrolyte Synthesis Method", Status: "pending", Owner: "Catalyst TTO", FilingDate: "2025-02-20", PatentNumber: "US-2025-0147721", Inventors: []string{"Riley Chen", "Dana Fox"}},
		{ID: "IPR-2024-002", Kind: KindPatent, Title: "Low-Drift MEMS Gas Sensor", Status: "granted", Owner: "Catalyst TTO", FilingDate: "2023-06-12", PatentNumber: "US-11892345", Inventors: []string{"Jonas Weber"}},
		{ID: "IPR-2025-003", Kind: KindTrademark, Title: "CATALYST LABS", Status: "registered", Owner: "Catalyst TTO", FilingDate: "2024-10-05", Countries: []string{"US", "EU", "JP"}, Class: "42"},
		{ID: "IPR-2025-004", Kind: KindCopyright, Title: "FoldBench Benchmark Suite", Status: "registered", Owner: "Catalyst TTO", FilingDate: "2025-01-08", Work: "software", RegistrationNumber: "TX0009412233"},
		{ID: "IPR-2025-005", Kind: KindLicense, Title: "Gas Sensor Manufacturing License", Status: "active", Owner: "Catalyst TTO", FilingDate: "2025-04-01", Licensee: "AeroSense GmbH", Territories: []string{"EU", "UK"}, Royalty: 3.5},
		{ID: "IPR-2025-006", Kind: KindTrademark, Title: "FOLDBENCH", Status: "pending", Owner: "Catalyst TTO", FilingDate: "2025-05-22", Countries: []string{"US"}, Class: "9"},
	}
}

func SeedIdeas() []Idea {
	return []Idea{
		{ID: "IDE-2025-001", Title: "Campus Waste Heat Recovery", Author: "Riley Chen", Category: "sustainability", Status: "under_review", Votes: 14, SubmittedDate: "2025-04-12", Tags: []string{"energy"}},
		{ID: "IDE-2025-002", Title: "Shared Wet-Lab Booking Bot", Author: "Priya Nair", Category: "operations", Status: "approved", Votes: 22, SubmittedDate: "2025-03-02"},
		{ID: "IDE-2025-003", Title: "Open Sensor Data Portal", Author: "Jonas Weber", Category: "research", Status: "submitted", Votes: 7, SubmittedDate: "2025-06-18", Tags: []string{"iot", "open-data"}},
		{ID: "IDE-2024-004", Title: "Patent Landscape Newsletter", Author: "Amara Diallo", Category: "outreach", Status: "archived", Votes: 3, SubmittedDate: "2024-09-30"},
	}
}

func SeedPrototypes() []Prototype {
	return []Prototype{
		{ID: "PRO-2025-001", Title: "1Ah Pouch Cell Demonstrator", Owner: "Riley Chen", Status: "testing", Budget: 80000, StartDate: "2025-05-01"},
		{ID: "PRO-2025-002", Title: "Sensor Node Mk II", Owner: "Jonas Weber", Status: "in_progress", Budget: 15000, StartDate: "2025-06-10"},
		{ID: "PRO-2025-003", Title: "Booking Bot MVP", Owner: "Priya Nair", Status: "planning", Budget: 5000, StartDate: "2025-09-01"},
		{ID: "PRO-2024-004", Title: "Archive OCR Pipeline", Owner: "Sam Okafor", Status: "completed", Budget: 12000, StartDate: "2024-04-15"},
	}
}

func SeedPartners() []Partner {
	return []Partner{
		{ID: "PTR-2025-001", Name: "AeroSense GmbH", Type: "corporate", Country: "Germany", Contact: "partnerships@aerosense.example", Since: "2023", Status: "active"},
		{ID: "PTR-2025-002", Name: "Metro University", Type: "academic", Country: "Canada", Contact: "research@metro.example", Since: "2021", Status: "active"},
		{ID: "PTR-2025-003", Name: "City Innovation Office", Type: "government", Country: "Netherlands", Contact: "grants@city.example", Since: "2024", Status: "active"},
		{ID: "PTR-2024-004", Name: "Helios Ventures", Type: "corporate", Country: "United States", Contact: "deals@helios.example", Since: "2022", Status: "inactive"},
	}
}

func SeedStartups() []Startup {
	return []Startup{
		{ID: "STP-2025-001", Name: "VoltaCell", Founder: "Priya Nair", Sector: "energy", Status: "Active", Funding: 1200000, Founded: "2024", Employees: 8},
		{ID: "STP-2025-002", Name: "AirGrid Analytics", Founder: "Lena Kovacs", Sector: "climate", Status: "Applicant", Funding: 0, Founded: "2025", Employees: 2},
		{ID: "STP-2023-003", Name: "FoldWorks", Founder: "Amara Diallo", Sector: "biotech", Status: "Graduated", Funding: 5400000, Founded: "2021", Employees: 27},
		{ID: "STP-2025-004", Name: "ArchiveAI", Founder: "Tom Esposito", Sector: "software", Status: "Active", Funding: 350000, Founded: "2024", Employees: 4},
	}
}

func SeedMentors() []Mentor {
	return []Mentor{
		{ID: "MEN-2025-001", Name: "Dr. Elena Sorokin", Email: "elena@mentors.example", Expertise: "hardware scaling", Organization: "Helios Ventures", Mentees: 3, Status: "active"},
		{ID: "MEN-2025-002", Name: "Marcus Reed", Email: "marcus@mentors.example", Expertise: "go-to-market", Organization: "Independent", Mentees: 5, Status: "active"},
		{ID: "MEN-2024-003", Name: "Ingrid Halvorsen", Email: "ingrid@mentors.example", Expertise: "regulatory affairs", Organization: "AeroSense GmbH", Mentees: 1, Status: "inactive"},
	}
}

func SeedResources() []Resource {
	return []Resource{
		{ID: "RES-2025-001", Name: "Cleanroom B", Type: "lab", Location: "Building 4", Capacity: 12, Status: "available"},
		{ID: "RES-2025-002", Name: "Battery Cycler Rack", Type: "equipment", Location: "Building 4", Capacity: 32, Status: "reserved"},
		{ID: "RES-2025-003", Name: "Incubator Floor 2", Type: "space", Location: "Innovation Hub", Capacity: 40, Status: "available"},
		{ID: "RES-2025-004", Name: "GPU Cluster Partition", Type: "software", Location: "Data Center", Capacity: 64, Status: "maintenance"},
	}
}
