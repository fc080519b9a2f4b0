package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/usecase-catalog/internal/domain"
)

// memoryUseCaseRepository is a mutex-guarded in-memory implementation used
// for development and tests. Selected with STORE_DRIVER=memory.
type memoryUseCaseRepository struct {
	mu    sync.RWMutex
	items map[string]domain.UseCase
}

// NewMemoryUseCaseRepository returns an empty in-memory store.
func NewMemoryUseCaseRepository() UseCaseRepository {
	return &memoryUseCaseRepository{items: make(map[string]domain.UseCase)}
}

func (r *memoryUseCaseRepository) List(_ context.Context) ([]domain.UseCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.UseCase, 0, len(r.items))
	for _, uc := range r.items {
		result = append(result, cloneUseCase(uc))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *memoryUseCaseRepository) GetByID(_ context.Context, id string) (*domain.UseCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uc, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cloneUseCase(uc)
	return &copied, nil
}

func (r *memoryUseCaseRepository) Create(_ context.Context, uc *domain.UseCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	uc.ID = uuid.NewString()
	uc.CreatedAt = now
	uc.UpdatedAt = now
	normalize(uc)
	r.items[uc.ID] = cloneUseCase(*uc)
	return nil
}

func (r *memoryUseCaseRepository) Update(_ context.Context, id string, update UseCaseUpdate) (*domain.UseCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uc, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	changes := update.changes()
	if len(changes) == 0 {
		copied := cloneUseCase(uc)
		return &copied, nil
	}

	for _, ch := range changes {
		applyChange(&uc, ch)
	}
	uc.UpdatedAt = laterThan(uc.UpdatedAt)
	r.items[id] = cloneUseCase(uc)
	copied := cloneUseCase(uc)
	return &copied, nil
}

func (r *memoryUseCaseRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// applyChange routes a column-level change back onto the record, mirroring
// the column table the SQL builder uses.
func applyChange(uc *domain.UseCase, ch change) {
	switch ch.column {
	case "title":
		uc.Title = ch.value.(string)
	case "short_description":
		uc.ShortDescription = ch.value.(string)
	case "full_description":
		uc.FullDescription = ch.value.(string)
	case "department":
		uc.Department = ch.value.(domain.Department)
	case "status":
		uc.Status = ch.value.(domain.Status)
	case "owner_name":
		uc.OwnerName = ch.value.(string)
	case "owner_email":
		uc.OwnerEmail = ch.value.(string)
	case "image_url":
		uc.ImageURL = ch.value.(string)
	case "business_impact":
		uc.BusinessImpact = ch.value.(string)
	case "application_url":
		uc.ApplicationURL = ch.value.(string)
	case "technology_stack":
		uc.TechnologyStack = append([]string{}, ch.value.([]string)...)
	case "tags":
		uc.Tags = append([]string{}, ch.value.([]string)...)
	case "internal_links":
		uc.InternalLinks = ch.value.(domain.InternalLinks)
	case "related_use_case_ids":
		uc.RelatedUseCaseIDs = append([]string{}, ch.value.([]string)...)
	}
}

// laterThan returns the current time, nudged forward when the clock has not
// advanced past prev, so updated_at strictly increases.
func laterThan(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

func cloneUseCase(uc domain.UseCase) domain.UseCase {
	uc.TechnologyStack = append([]string{}, uc.TechnologyStack...)
	uc.Tags = append([]string{}, uc.Tags...)
	uc.RelatedUseCaseIDs = append([]string{}, uc.RelatedUseCaseIDs...)
	return uc
}

// memoryUserRepository backs login in memory-driver mode.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User // keyed by lowercase email
}

// NewMemoryUserRepository returns an empty in-memory account store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[strings.ToLower(user.Email)] = *user
	return nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
