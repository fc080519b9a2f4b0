package domain

import "time"

// Department enumerates the organizational units a use case belongs to.
type Department string

const (
	DepartmentMarketing   Department = "Marketing"
	DepartmentRnD         Department = "R&D"
	DepartmentProcurement Department = "Procurement"
	DepartmentIT          Department = "IT"
	DepartmentHR          Department = "HR"
	DepartmentOperations  Department = "Operations"
)

// Departments lists all valid departments in display order.
func Departments() []Department {
	return []Department{
		DepartmentMarketing,
		DepartmentRnD,
		DepartmentProcurement,
		DepartmentIT,
		DepartmentHR,
		DepartmentOperations,
	}
}

// Valid reports whether the department is a member of the enumeration.
func (d Department) Valid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}
	return false
}

// Status enumerates lifecycle states for a use case. The order is meaningful:
// it reflects maturity from first idea to production and is used to render
// lifecycle progress.
type Status string

const (
	StatusIdeation      Status = "Ideation"
	StatusPreEvaluation Status = "Pre-Evaluation"
	StatusEvaluation    Status = "Evaluation"
	StatusPoC           Status = "PoC"
	StatusMVP           Status = "MVP"
	StatusLive          Status = "Live"
	StatusArchived      Status = "Archived"
)

// Statuses lists all valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusIdeation,
		StatusPreEvaluation,
		StatusEvaluation,
		StatusPoC,
		StatusMVP,
		StatusLive,
		StatusArchived,
	}
}

// Valid reports whether the status is a member of the enumeration.
func (s Status) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of the status in the lifecycle, or -1 for an
// unknown status.
func (s Status) Rank() int {
	for i, known := range Statuses() {
		if s == known {
			return i
		}
	}
	return -1
}

// InternalLinks holds optional links into internal systems.
type InternalLinks struct {
	Sharepoint string `json:"sharepoint,omitempty"`
	Confluence string `json:"confluence,omitempty"`
	Demo       string `json:"demo,omitempty"`
	Bits       string `json:"bits,omitempty"`
}

// UseCase is the catalog aggregate for a single AI initiative.
//
// RelatedUseCaseIDs are advisory soft references: nothing enforces that the
// referenced records exist, and dangling ids are dropped when resolved.
type UseCase struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	ShortDescription  string        `json:"short_description"`
	FullDescription   string        `json:"full_description"`
	Department        Department    `json:"department"`
	Status            Status        `json:"status"`
	OwnerName         string        `json:"owner_name"`
	OwnerEmail        string        `json:"owner_email"`
	ImageURL          string        `json:"image_url,omitempty"`
	BusinessImpact    string        `json:"business_impact,omitempty"`
	ApplicationURL    string        `json:"application_url,omitempty"`
	TechnologyStack   []string      `json:"technology_stack"`
	Tags              []string      `json:"tags"`
	InternalLinks     InternalLinks `json:"internal_links"`
	RelatedUseCaseIDs []string      `json:"related_use_case_ids"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
