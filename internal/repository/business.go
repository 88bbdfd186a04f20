package repository

import (
	"context"
	"errors"
	"strings"

	"weconnect/internal/cache"
	"weconnect/internal/models"

	"gorm.io/gorm"
)

// SearchFilters holds the optional case-insensitive substring filters
// for business search. Empty fields impose no constraint.
type SearchFilters struct {
	Name     string
	Location string
	Category string
}

// BusinessRepository defines persistence operations for businesses.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uint) (*models.Business, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Business, int64, error)
	Search(ctx context.Context, filters SearchFilters, limit, offset int) ([]models.Business, int64, error)
	// NameTakenByOther reports whether a business other than excludeID
	// already uses the name, compared case-insensitively.
	NameTakenByOther(ctx context.Context, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id uint) error
}

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository returns a new BusinessRepository implementation.
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id uint) (*models.Business, error) {
	var business models.Business
	key := cache.BusinessKey(id)

	err := cache.Aside(ctx, key, &business, cache.BusinessTTL, func() error {
		if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Business not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Business, int64, error) {
	var businesses []models.Business
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Business{}).Where("user_id = ?", ownerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&businesses).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return businesses, total, nil
}

func (r *businessRepository) Search(ctx context.Context, filters SearchFilters, limit, offset int) ([]models.Business, int64, error) {
	var businesses []models.Business
	var total int64

	// LOWER(...) LIKE keeps the substring match case-insensitive on
	// both postgres and the sqlite test database.
	base := r.db.WithContext(ctx).Model(&models.Business{})
	if filters.Name != "" {
		base = base.Where("LOWER(name) LIKE ?", likePattern(filters.Name))
	}
	if filters.Location != "" {
		base = base.Where("LOWER(location) LIKE ?", likePattern(filters.Location))
	}
	if filters.Category != "" {
		base = base.Where("LOWER(category) LIKE ?", likePattern(filters.Category))
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&businesses).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return businesses, total, nil
}

func (r *businessRepository) NameTakenByOther(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), excludeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *businessRepository) Update(ctx context.Context, business *models.Business) error {
	if err := r.db.WithContext(ctx).Save(business).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBusiness(ctx, business.ID)
	return nil
}

func (r *businessRepository) Delete(ctx context.Context, id uint) error {
	// Reviews cascade with the business.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Business{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBusiness(ctx, id)
	return nil
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
