package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/usecase-catalog/internal/api/dto"
	"github.com/spec-kit/usecase-catalog/internal/domain"
	"github.com/spec-kit/usecase-catalog/internal/repository"
	"github.com/spec-kit/usecase-catalog/internal/validate"
	apperrors "github.com/spec-kit/usecase-catalog/pkg/util"
)

// UseCasesHandler exposes the catalog CRUD endpoints.
type UseCasesHandler struct {
	repo repository.UseCaseRepository
}

// NewUseCasesHandler constructs the handler.
func NewUseCasesHandler(repo repository.UseCaseRepository) *UseCasesHandler {
	return &UseCasesHandler{repo: repo}
}

// List handles GET /api/use-cases.
func (h *UseCasesHandler) List(c *fiber.Ctx) error {
	useCases, err := h.repo.List(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	count := len(useCases)
	return c.JSON(dto.Envelope{Success: true, Data: useCases, Count: &count})
}

// Get handles GET /api/use-cases/:id.
func (h *UseCasesHandler) Get(c *fiber.Ctx) error {
	uc, err := h.repo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapRepoError(err)
	}
	return c.JSON(dto.Envelope{Success: true, Data: uc})
}

// Create handles POST /api/use-cases.
func (h *UseCasesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUseCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return decodeError(err)
	}
	if err := validate.Create(&req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	uc := &domain.UseCase{
		Title:             req.Title,
		ShortDescription:  req.ShortDescription,
		FullDescription:   req.FullDescription,
		Department:        domain.Department(req.Department),
		Status:            domain.Status(req.Status),
		OwnerName:         req.OwnerName,
		OwnerEmail:        req.OwnerEmail,
		ImageURL:          req.ImageURL,
		BusinessImpact:    req.BusinessImpact,
		ApplicationURL:    req.ApplicationURL,
		TechnologyStack:   req.TechnologyStack,
		Tags:              req.Tags,
		InternalLinks:     *req.InternalLinks,
		RelatedUseCaseIDs: req.RelatedUseCaseIDs,
	}
	if err := h.repo.Create(c.UserContext(), uc); err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.Envelope{
		Success: true,
		Data:    uc,
		Message: "Use case created successfully",
	})
}

// Update handles PUT /api/use-cases/:id.
func (h *UseCasesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUseCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return decodeError(err)
	}
	if req.Empty() {
		return apperrors.NewValidationError("no update data provided")
	}
	if err := validate.Update(&req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	uc, err := h.repo.Update(c.UserContext(), c.Params("id"), toRepoUpdate(&req))
	if err != nil {
		return mapRepoError(err)
	}

	return c.JSON(dto.Envelope{
		Success: true,
		Data:    uc,
		Message: "Use case updated successfully",
	})
}

// Delete handles DELETE /api/use-cases/:id.
func (h *UseCasesHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return mapRepoError(err)
	}
	return c.JSON(dto.Envelope{
		Success: true,
		Message: "Use case deleted successfully",
	})
}

func toRepoUpdate(req *dto.UpdateUseCaseRequest) repository.UseCaseUpdate {
	update := repository.UseCaseUpdate{
		Title:             req.Title,
		ShortDescription:  req.ShortDescription,
		FullDescription:   req.FullDescription,
		OwnerName:         req.OwnerName,
		OwnerEmail:        req.OwnerEmail,
		ImageURL:          req.ImageURL,
		BusinessImpact:    req.BusinessImpact,
		ApplicationURL:    req.ApplicationURL,
		TechnologyStack:   req.TechnologyStack,
		Tags:              req.Tags,
		InternalLinks:     req.InternalLinks,
		RelatedUseCaseIDs: req.RelatedUseCaseIDs,
	}
	if req.Department != nil {
		dept := domain.Department(*req.Department)
		update.Department = &dept
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		update.Status = &status
	}
	return update
}

// decodeError shapes a JSON type mismatch into a message naming the offending
// field, in the same tone as the validation layer. Anything else stays a
// generic bad-payload error.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return apperrors.NewValidationError("invalid payload")
	}
	field, _, _ := strings.Cut(typeErr.Field, ".")
	switch field {
	case "technology_stack", "tags", "related_use_case_ids":
		return apperrors.NewValidationError(field + " must be an array")
	case "internal_links":
		return apperrors.NewValidationError("internal_links must be an object")
	}
	return apperrors.NewValidationError(field + " has the wrong type")
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("use case")
	}
	return apperrors.NewInternalError(err)
}
