package client

import "time"

// InternalLinks holds optional links into internal systems.
type InternalLinks struct {
	Sharepoint string `json:"sharepoint,omitempty"`
	Confluence string `json:"confluence,omitempty"`
	Demo       string `json:"demo,omitempty"`
	Bits       string `json:"bits,omitempty"`
}

// UseCase is the client-side view of a catalog record. Department and status
// are plain strings here; the service owns the canonical enumerations and
// rejects unknown values on write.
type UseCase struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	ShortDescription  string        `json:"short_description"`
	FullDescription   string        `json:"full_description"`
	Department        string        `json:"department"`
	Status            string        `json:"status"`
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
