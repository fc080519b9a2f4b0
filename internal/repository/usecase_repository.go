package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/usecase-catalog/internal/domain"
)

// ErrNotFound signals that no record matched the given id. Absence is an
// expected outcome, returned as a value and never panicked.
var ErrNotFound = errors.New("record not found")

// UseCaseUpdate captures a partial update. Nil fields are left untouched;
// non-nil fields are written. Slice and link fields use presence of the
// pointer/slice to mean "supplied".
type UseCaseUpdate struct {
	Title             *string
	ShortDescription  *string
	FullDescription   *string
	Department        *domain.Department
	Status            *domain.Status
	OwnerName         *string
	OwnerEmail        *string
	ImageURL          *string
	BusinessImpact    *string
	ApplicationURL    *string
	TechnologyStack   []string
	Tags              []string
	InternalLinks     *domain.InternalLinks
	RelatedUseCaseIDs []string
}

// Empty reports whether the update carries no fields at all.
func (u *UseCaseUpdate) Empty() bool {
	return u.Title == nil &&
		u.ShortDescription == nil &&
		u.FullDescription == nil &&
		u.Department == nil &&
		u.Status == nil &&
		u.OwnerName == nil &&
		u.OwnerEmail == nil &&
		u.ImageURL == nil &&
		u.BusinessImpact == nil &&
		u.ApplicationURL == nil &&
		u.TechnologyStack == nil &&
		u.Tags == nil &&
		u.InternalLinks == nil &&
		u.RelatedUseCaseIDs == nil
}

// changes flattens the present fields into a statically known column/value
// list. Column names come from this table only; values are always bound as
// positional parameters.
func (u *UseCaseUpdate) changes() []change {
	var out []change
	add := func(column string, value any) {
		out = append(out, change{column: column, value: value})
	}
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.ShortDescription != nil {
		add("short_description", *u.ShortDescription)
	}
	if u.FullDescription != nil {
		add("full_description", *u.FullDescription)
	}
	if u.Department != nil {
		add("department", *u.Department)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.OwnerName != nil {
		add("owner_name", *u.OwnerName)
	}
	if u.OwnerEmail != nil {
		add("owner_email", *u.OwnerEmail)
	}
	if u.ImageURL != nil {
		add("image_url", *u.ImageURL)
	}
	if u.BusinessImpact != nil {
		add("business_impact", *u.BusinessImpact)
	}
	if u.ApplicationURL != nil {
		add("application_url", *u.ApplicationURL)
	}
	if u.TechnologyStack != nil {
		add("technology_stack", u.TechnologyStack)
	}
	if u.Tags != nil {
		add("tags", u.Tags)
	}
	if u.InternalLinks != nil {
		add("internal_links", *u.InternalLinks)
	}
	if u.RelatedUseCaseIDs != nil {
		add("related_use_case_ids", u.RelatedUseCaseIDs)
	}
	return out
}

type change struct {
	column string
	value  any
}

// UseCaseRepository encapsulates catalog persistence.
type UseCaseRepository interface {
	List(ctx context.Context) ([]domain.UseCase, error)
	GetByID(ctx context.Context, id string) (*domain.UseCase, error)
	Create(ctx context.Context, uc *domain.UseCase) error
	Update(ctx context.Context, id string, update UseCaseUpdate) (*domain.UseCase, error)
	Delete(ctx context.Context, id string) error
}

type useCaseRepository struct {
	pool *pgxpool.Pool
}

// NewUseCaseRepository returns a Postgres-backed implementation.
func NewUseCaseRepository(pool *pgxpool.Pool) UseCaseRepository {
	return &useCaseRepository{pool: pool}
}

const useCaseColumns = `id, title, short_description, full_description, department, status,
               owner_name, owner_email, image_url, business_impact, application_url,
               technology_stack, tags, internal_links, related_use_case_ids,
               created_at, updated_at`

func (r *useCaseRepository) List(ctx context.Context) ([]domain.UseCase, error) {
	query := fmt.Sprintf(`SELECT %s FROM use_cases ORDER BY created_at DESC`, useCaseColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUseCases(rows)
}

func (r *useCaseRepository) GetByID(ctx context.Context, id string) (*domain.UseCase, error) {
	query := fmt.Sprintf(`SELECT %s FROM use_cases WHERE id=$1`, useCaseColumns)
	uc, err := scanUseCase(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return uc, nil
}

func (r *useCaseRepository) Create(ctx context.Context, uc *domain.UseCase) error {
	const query = `
        INSERT INTO use_cases (
            title, short_description, full_description, department, status,
            owner_name, owner_email, image_url, business_impact, application_url,
            technology_stack, tags, internal_links, related_use_case_ids
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		uc.Title,
		uc.ShortDescription,
		uc.FullDescription,
		uc.Department,
		uc.Status,
		uc.OwnerName,
		uc.OwnerEmail,
		nullable(uc.ImageURL),
		nullable(uc.BusinessImpact),
		nullable(uc.ApplicationURL),
		emptySlice(uc.TechnologyStack),
		emptySlice(uc.Tags),
		uc.InternalLinks,
		emptySlice(uc.RelatedUseCaseIDs),
	).Scan(&uc.ID, &uc.CreatedAt, &uc.UpdatedAt)
	if err != nil {
		return err
	}
	normalize(uc)
	return nil
}

func (r *useCaseRepository) Update(ctx context.Context, id string, update UseCaseUpdate) (*domain.UseCase, error) {
	changes := update.changes()
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}

	clauses := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	for _, ch := range changes {
		args = append(args, ch.value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", ch.column, len(args)))
	}
	clauses = append(clauses, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE use_cases SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(clauses, ", "), len(args), useCaseColumns)

	uc, err := scanUseCase(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return uc, nil
}

func (r *useCaseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM use_cases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUseCase(row pgx.Row) (*domain.UseCase, error) {
	var uc domain.UseCase
	var imageURL, businessImpact, applicationURL *string
	if err := row.Scan(
		&uc.ID,
		&uc.Title,
		&uc.ShortDescription,
		&uc.FullDescription,
		&uc.Department,
		&uc.Status,
		&uc.OwnerName,
		&uc.OwnerEmail,
		&imageURL,
		&businessImpact,
		&applicationURL,
		&uc.TechnologyStack,
		&uc.Tags,
		&uc.InternalLinks,
		&uc.RelatedUseCaseIDs,
		&uc.CreatedAt,
		&uc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	uc.ImageURL = deref(imageURL)
	uc.BusinessImpact = deref(businessImpact)
	uc.ApplicationURL = deref(applicationURL)
	normalize(&uc)
	return &uc, nil
}

func scanUseCases(rows pgx.Rows) ([]domain.UseCase, error) {
	result := []domain.UseCase{}
	for rows.Next() {
		uc, err := scanUseCase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *uc)
	}
	return result, rows.Err()
}

// normalize keeps collection fields non-nil so JSON responses always render
// arrays.
func normalize(uc *domain.UseCase) {
	if uc.TechnologyStack == nil {
		uc.TechnologyStack = []string{}
	}
	if uc.Tags == nil {
		uc.Tags = []string{}
	}
	if uc.RelatedUseCaseIDs == nil {
		uc.RelatedUseCaseIDs = []string{}
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
