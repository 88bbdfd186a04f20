package repository

import (
	"testing"
	"time"

	"weconnect/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Review{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Image:    models.DefaultAvatar,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBusiness(t *testing.T, db *gorm.DB, owner *models.User, name string, createdAt time.Time) *models.Business {
	t.Helper()
	business := &models.Business{
		Name:        name,
		Location:    "Nairobi",
		Category:    "catering",
		Description: "test business",
		UserID:      owner.ID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(business).Error)
	return business
}

func createTestReview(t *testing.T, db *gorm.DB, author *models.User, business *models.Business, title string, createdAt time.Time) *models.Review {
	t.Helper()
	review := &models.Review{
		Title:      title,
		Body:       "test review body",
		UserID:     author.ID,
		BusinessID: business.ID,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}
