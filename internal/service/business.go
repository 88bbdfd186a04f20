package service

import (
	"context"
	"strings"

	"weconnect/internal/models"
	"weconnect/internal/repository"
	"weconnect/internal/validation"
)

// BusinessService owns the business directory: creation, lookup,
// owner-scoped mutation and paginated search.
type BusinessService struct {
	businessRepo repository.BusinessRepository
}

// NewBusinessService returns a new BusinessService.
func NewBusinessService(businessRepo repository.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

var createBusinessSchema = validation.Schema{
	"name":        {Required: true, NonEmpty: true},
	"location":    {Required: true, NonEmpty: true},
	"category":    {Required: true, NonEmpty: true},
	"description": {Required: true, NonEmpty: true},
}

// The update schema matches create; the duplicate-name check runs
// separately so it can exclude the business being updated.
var updateBusinessSchema = createBusinessSchema

// BusinessPage is one page of business results.
type BusinessPage struct {
	Businesses []models.Business
	Info       PageInfo
}

// Create registers a business owned by ownerID. The name is stored
// trimmed and lowercased, and must not collide with an existing
// business name (case-insensitive).
func (s *BusinessService) Create(ctx context.Context, ownerID uint, payload map[string]string) (*models.Business, error) {
	errs := validation.Validate(createBusinessSchema, payload)
	if errs == nil {
		errs = models.FieldErrors{}
	}

	name := strings.ToLower(strings.TrimSpace(payload["name"]))
	if _, hasErr := errs["name"]; !hasErr {
		taken, err := s.businessRepo.NameTakenByOther(ctx, name, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("name", "Sorry!! name taken!")
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	business := &models.Business{
		Name:        name,
		Location:    payload["location"],
		Category:    payload["category"],
		Description: payload["description"],
		UserID:      ownerID,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Get returns the business or a not-found error.
func (s *BusinessService) Get(ctx context.Context, id uint) (*models.Business, error) {
	return s.businessRepo.GetByID(ctx, id)
}

// ListByOwner returns the owner's businesses, paginated.
func (s *BusinessService) ListByOwner(ctx context.Context, ownerID uint, page Page) (*BusinessPage, error) {
	businesses, total, err := s.businessRepo.ListByOwner(ctx, ownerID, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	return &BusinessPage{
		Businesses: businesses,
		Info:       NewPageInfo(page, total),
	}, nil
}

// Search returns businesses matching the filters, paginated. Every
// provided filter is a case-insensitive substring match; they combine
// with AND and absent filters impose no constraint, so the unfiltered
// public listing is a search with no filters.
func (s *BusinessService) Search(ctx context.Context, filters repository.SearchFilters, page Page) (*BusinessPage, error) {
	businesses, total, err := s.businessRepo.Search(ctx, filters, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	return &BusinessPage{
		Businesses: businesses,
		Info:       NewPageInfo(page, total),
	}, nil
}

// Update overwrites the four mutable fields. Only the owner may update,
// and the new name must not belong to a different business.
func (s *BusinessService) Update(ctx context.Context, userID, id uint, payload map[string]string) (*models.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := validation.Validate(updateBusinessSchema, payload); errs != nil {
		return nil, errs
	}

	name := strings.ToLower(strings.TrimSpace(payload["name"]))
	taken, err := s.businessRepo.NameTakenByOther(ctx, name, business.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("Business name already taken")
	}

	if business.UserID != userID {
		return nil, models.NewForbiddenError("only business owner can update")
	}

	business.Name = name
	business.Location = payload["location"]
	business.Category = payload["category"]
	business.Description = payload["description"]

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Delete removes the business and, by cascade, its reviews.
func (s *BusinessService) Delete(ctx context.Context, userID, id uint) error {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if business.UserID != userID {
		return models.NewForbiddenError("only business owner can delete")
	}
	return s.businessRepo.Delete(ctx, id)
}
