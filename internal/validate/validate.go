// Package validate checks use-case payloads before a write is attempted.
// Rules fail fast: the first violated rule produces a human-readable message
// naming the offending field.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/spec-kit/usecase-catalog/internal/api/dto"
	"github.com/spec-kit/usecase-catalog/internal/domain"
)

// emailPattern is deliberately permissive: something@something.something.
// It is not RFC 5322 and callers must not assume stricter guarantees.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsURL reports whether s parses as an absolute URL with a host. Loose on
// purpose: internal links point at systems we do not control the naming of.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func joinDepartments() string {
	parts := make([]string, 0, len(domain.Departments()))
	for _, d := range domain.Departments() {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, ", ")
}

func joinStatuses() string {
	parts := make([]string, 0, len(domain.Statuses()))
	for _, s := range domain.Statuses() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

// Create validates a full create payload.
func Create(req *dto.CreateUseCaseRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(req.ShortDescription) == "" {
		return fmt.Errorf("short_description is required")
	}
	if strings.TrimSpace(req.FullDescription) == "" {
		return fmt.Errorf("full_description is required")
	}
	if !domain.Department(req.Department).Valid() {
		return fmt.Errorf("invalid department: must be one of %s", joinDepartments())
	}
	if !domain.Status(req.Status).Valid() {
		return fmt.Errorf("invalid status: must be one of %s", joinStatuses())
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return fmt.Errorf("owner_name is required")
	}
	if !IsEmail(req.OwnerEmail) {
		return fmt.Errorf("owner_email must be a valid email address")
	}
	if req.TechnologyStack == nil {
		return fmt.Errorf("technology_stack must be an array")
	}
	if req.Tags == nil {
		return fmt.Errorf("tags must be an array")
	}
	if req.InternalLinks == nil {
		return fmt.Errorf("internal_links must be an object")
	}
	if err := internalLinks(req.InternalLinks); err != nil {
		return err
	}
	return nil
}

// Update validates a partial update payload. Only fields that are present are
// checked; absence is never an error.
func Update(req *dto.UpdateUseCaseRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if req.ShortDescription != nil && strings.TrimSpace(*req.ShortDescription) == "" {
		return fmt.Errorf("short_description must not be empty")
	}
	if req.FullDescription != nil && strings.TrimSpace(*req.FullDescription) == "" {
		return fmt.Errorf("full_description must not be empty")
	}
	if req.Department != nil && !domain.Department(*req.Department).Valid() {
		return fmt.Errorf("invalid department: must be one of %s", joinDepartments())
	}
	if req.Status != nil && !domain.Status(*req.Status).Valid() {
		return fmt.Errorf("invalid status: must be one of %s", joinStatuses())
	}
	if req.OwnerName != nil && strings.TrimSpace(*req.OwnerName) == "" {
		return fmt.Errorf("owner_name must not be empty")
	}
	if req.OwnerEmail != nil && !IsEmail(*req.OwnerEmail) {
		return fmt.Errorf("owner_email must be a valid email address")
	}
	if req.InternalLinks != nil {
		if err := internalLinks(req.InternalLinks); err != nil {
			return err
		}
	}
	return nil
}

func internalLinks(links *domain.InternalLinks) error {
	check := map[string]string{
		"sharepoint": links.Sharepoint,
		"confluence": links.Confluence,
		"demo":       links.Demo,
		"bits":       links.Bits,
	}
	for _, key := range []string{"sharepoint", "confluence", "demo", "bits"} {
		if val := check[key]; val != "" && !IsURL(val) {
			return fmt.Errorf("internal_links.%s must be a valid URL", key)
		}
	}
	return nil
}
