// Package seed provides helpers to create development and demo data.
// Not intended for production use.
package seed

import (
	"fmt"
	"strings"

	"weconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user can log in with.
const DefaultPassword = "Seed1234"

var categories = []string{
	"networking", "catering", "construction", "retail",
	"transport", "farming", "technology", "consulting",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// CreateUser persists a user with fake profile data and the shared
// seed password.
func (f *Factory) CreateUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  strings.ToLower(gofakeit.Username()),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Image:     models.DefaultAvatar,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateBusiness persists a business owned by the given user.
func (f *Factory) CreateBusiness(owner *models.User) (*models.Business, error) {
	business := &models.Business{
		Name:        strings.ToLower(gofakeit.Company()),
		Location:    gofakeit.City(),
		Category:    categories[gofakeit.Number(0, len(categories)-1)],
		Description: gofakeit.Sentence(12),
		UserID:      owner.ID,
	}
	if err := f.db.Create(business).Error; err != nil {
		return nil, err
	}
	return business, nil
}

// CreateReview persists a review of the business by the given author.
// The caller is responsible for not passing the business owner.
func (f *Factory) CreateReview(author *models.User, business *models.Business) (*models.Review, error) {
	body := gofakeit.Sentence(10)
	if len(body) > models.MaxReviewBodyLen {
		body = body[:models.MaxReviewBodyLen]
	}
	review := &models.Review{
		Title:      gofakeit.Sentence(3),
		Body:       body,
		UserID:     author.ID,
		BusinessID: business.ID,
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Run populates the database with the requested number of users, each
// owning a few businesses, cross-reviewed by the other users.
func Run(db *gorm.DB, userCount int) error {
	if userCount <= 0 {
		userCount = 5
	}

	f := NewFactory(db)
	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	for _, owner := range users {
		n := gofakeit.Number(1, 3)
		for i := 0; i < n; i++ {
			business, err := f.CreateBusiness(owner)
			if err != nil {
				return fmt.Errorf("seed business: %w", err)
			}
			for _, reviewer := range users {
				if reviewer.ID == owner.ID {
					continue
				}
				if gofakeit.Bool() {
					continue
				}
				if _, err := f.CreateReview(reviewer, business); err != nil {
					return fmt.Errorf("seed review: %w", err)
				}
			}
		}
	}
	return nil
}
