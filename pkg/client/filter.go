package client

import "strings"

// All is the wildcard value for the department and status filters.
const All = "All"

// Filter captures the catalog view's filter state. Zero value matches
// everything.
type Filter struct {
	Query      string
	Department string
	Status     string
}

// Apply returns the records matching the filter. A record matches when the
// query is empty or is a case-insensitive substring of the title, the short
// description, or any tag, AND the department and status filters are "All"
// (or empty) or equal the record's values.
func (f Filter) Apply(useCases []UseCase) []UseCase {
	result := make([]UseCase, 0, len(useCases))
	for _, uc := range useCases {
		if f.matches(&uc) {
			result = append(result, uc)
		}
	}
	return result
}

func (f Filter) matches(uc *UseCase) bool {
	if f.Department != "" && f.Department != All && uc.Department != f.Department {
		return false
	}
	if f.Status != "" && f.Status != All && uc.Status != f.Status {
		return false
	}
	if f.Query == "" {
		return true
	}

	query := strings.ToLower(f.Query)
	if strings.Contains(strings.ToLower(uc.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(uc.ShortDescription), query) {
		return true
	}
	for _, tag := range uc.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Related resolves the selected record's related ids against the loaded
// collection. Dangling ids drop out silently; broken references are a
// normal, tolerated state.
func Related(useCases []UseCase, selected *UseCase) []UseCase {
	if selected == nil || len(selected.RelatedUseCaseIDs) == 0 {
		return nil
	}

	byID := make(map[string]*UseCase, len(useCases))
	for i := range useCases {
		byID[useCases[i].ID] = &useCases[i]
	}

	result := make([]UseCase, 0, len(selected.RelatedUseCaseIDs))
	for _, id := range selected.RelatedUseCaseIDs {
		if uc, ok := byID[id]; ok {
			result = append(result, *uc)
		}
	}
	return result
}
