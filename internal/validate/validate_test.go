package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/usecase-catalog/internal/api/dto"
	"github.com/spec-kit/usecase-catalog/internal/domain"
)

func validCreate() dto.CreateUseCaseRequest {
	return dto.CreateUseCaseRequest{
		Title:            "Churn Prediction",
		ShortDescription: "Predicts churn",
		FullDescription:  "Predicts customer churn from usage signals",
		Department:       "IT",
		Status:           "PoC",
		OwnerName:        "Jamie Doe",
		OwnerEmail:       "jamie.doe@example.com",
		TechnologyStack:  []string{"Python"},
		Tags:             []string{"ML"},
		InternalLinks:    &domain.InternalLinks{},
	}
}

func TestCreateAcceptsValidPayload(t *testing.T) {
	req := validCreate()
	require.NoError(t, Create(&req))
}

func TestCreateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateUseCaseRequest)
		wantMsg string
	}{
		{
			name:    "empty title",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.Title = "" },
			wantMsg: "title",
		},
		{
			name:    "whitespace title",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.Title = "   " },
			wantMsg: "title",
		},
		{
			name:    "missing short description",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.ShortDescription = "" },
			wantMsg: "short_description",
		},
		{
			name:    "missing full description",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.FullDescription = "" },
			wantMsg: "full_description",
		},
		{
			name:    "department not in enumeration",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.Department = "Sales" },
			wantMsg: "department",
		},
		{
			name:    "status not in enumeration",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.Status = "Production" },
			wantMsg: "status",
		},
		{
			name:    "missing owner name",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.OwnerName = "" },
			wantMsg: "owner_name",
		},
		{
			name:    "malformed owner email",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.OwnerEmail = "not-an-email" },
			wantMsg: "owner_email",
		},
		{
			name:    "missing technology stack",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.TechnologyStack = nil },
			wantMsg: "technology_stack",
		},
		{
			name:    "missing tags",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.Tags = nil },
			wantMsg: "tags",
		},
		{
			name:    "missing internal links",
			mutate:  func(r *dto.CreateUseCaseRequest) { r.InternalLinks = nil },
			wantMsg: "internal_links",
		},
		{
			name: "bad internal link",
			mutate: func(r *dto.CreateUseCaseRequest) {
				r.InternalLinks = &domain.InternalLinks{Confluence: "not a url"}
			},
			wantMsg: "internal_links.confluence",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			err := Create(&req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg, "error must name the offending field")
		})
	}
}

func TestCreateEnumErrorsNameAllowedSet(t *testing.T) {
	req := validCreate()
	req.Department = "Sales"
	err := Create(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Marketing, R&D, Procurement, IT, HR, Operations")

	req = validCreate()
	req.Status = "Done"
	err = Create(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ideation, Pre-Evaluation, Evaluation, PoC, MVP, Live, Archived")
}

func strPtr(s string) *string { return &s }

func TestUpdateAbsentFieldsAreNeverAnError(t *testing.T) {
	require.NoError(t, Update(&dto.UpdateUseCaseRequest{}))
}

func TestUpdatePresentFieldsAreChecked(t *testing.T) {
	assert.Error(t, Update(&dto.UpdateUseCaseRequest{Title: strPtr("")}))
	assert.Error(t, Update(&dto.UpdateUseCaseRequest{Department: strPtr("Sales")}))
	assert.Error(t, Update(&dto.UpdateUseCaseRequest{Status: strPtr("Cancelled")}))
	assert.Error(t, Update(&dto.UpdateUseCaseRequest{OwnerEmail: strPtr("nope")}))
	assert.Error(t, Update(&dto.UpdateUseCaseRequest{InternalLinks: &domain.InternalLinks{Demo: "::"}}))

	assert.NoError(t, Update(&dto.UpdateUseCaseRequest{Title: strPtr("New title")}))
	assert.NoError(t, Update(&dto.UpdateUseCaseRequest{Status: strPtr("Live")}))
	assert.NoError(t, Update(&dto.UpdateUseCaseRequest{OwnerEmail: strPtr("a@b.co")}))
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"jamie@example.com", true},
		{"a@b.co", true},
		{"first.last+tag@sub.domain.org", true},
		{"not-an-email", false},
		{"", false},
		{"no@tld", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsEmail(tc.input), "IsEmail(%q)", tc.input)
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://confluence.example.com/page"))
	assert.True(t, IsURL("http://demo.example.com"))
	assert.False(t, IsURL("not a url"))
	assert.False(t, IsURL("/relative/path"))
	assert.False(t, IsURL(""))
}
