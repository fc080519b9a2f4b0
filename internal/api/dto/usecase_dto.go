package dto

import "github.com/spec-kit/usecase-catalog/internal/domain"

// CreateUseCaseRequest is the payload for POST /api/use-cases. InternalLinks
// is a pointer so an absent mapping is distinguishable from an empty one;
// validation requires it to be present.
type CreateUseCaseRequest struct {
	Title             string                `json:"title"`
	ShortDescription  string                `json:"short_description"`
	FullDescription   string                `json:"full_description"`
	Department        string                `json:"department"`
	Status            string                `json:"status"`
	OwnerName         string                `json:"owner_name"`
	OwnerEmail        string                `json:"owner_email"`
	ImageURL          string                `json:"image_url"`
	BusinessImpact    string                `json:"business_impact"`
	ApplicationURL    string                `json:"application_url"`
	TechnologyStack   []string              `json:"technology_stack"`
	Tags              []string              `json:"tags"`
	InternalLinks     *domain.InternalLinks `json:"internal_links"`
	RelatedUseCaseIDs []string              `json:"related_use_case_ids"`
}

// UpdateUseCaseRequest is the payload for PUT /api/use-cases/:id. Pointer
// fields distinguish "absent" from "set to zero value"; only present fields
// are written.
type UpdateUseCaseRequest struct {
	Title             *string               `json:"title"`
	ShortDescription  *string               `json:"short_description"`
	FullDescription   *string               `json:"full_description"`
	Department        *string               `json:"department"`
	Status            *string               `json:"status"`
	OwnerName         *string               `json:"owner_name"`
	OwnerEmail        *string               `json:"owner_email"`
	ImageURL          *string               `json:"image_url"`
	BusinessImpact    *string               `json:"business_impact"`
	ApplicationURL    *string               `json:"application_url"`
	TechnologyStack   []string              `json:"technology_stack"`
	Tags              []string              `json:"tags"`
	InternalLinks     *domain.InternalLinks `json:"internal_links"`
	RelatedUseCaseIDs []string              `json:"related_use_case_ids"`
}

// Empty reports whether no field was supplied at all.
func (r *UpdateUseCaseRequest) Empty() bool {
	return r.Title == nil &&
		r.ShortDescription == nil &&
		r.FullDescription == nil &&
		r.Department == nil &&
		r.Status == nil &&
		r.OwnerName == nil &&
		r.OwnerEmail == nil &&
		r.ImageURL == nil &&
		r.BusinessImpact == nil &&
		r.ApplicationURL == nil &&
		r.TechnologyStack == nil &&
		r.Tags == nil &&
		r.InternalLinks == nil &&
		r.RelatedUseCaseIDs == nil
}

// Envelope is the uniform response wrapper for all API endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}
