package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/config"
	"github.com/hairlyf/backend/internal/hash"
	"github.com/hairlyf/backend/internal/models"
	"github.com/hairlyf/backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestRepo(t *testing.T) (*repo.GormRepo, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return repo.New(db), db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Name:         "test_user",
		Email:        email,
		PasswordHash: pwHash,
		PhoneNumber:  "1234567890",
		IsVerified:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: "test_description",
		Price:       price,
		Category:    "test_category",
		Stock:       stock,
		ImageURL:    "http://example.com/img.png",
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func newAccountService(r *repo.GormRepo) *AccountService {
	return &AccountService{
		Repo:              r,
		JWTSecret:         []byte("test-jwt-secret"),
		FrontendURL:       "http://localhost:3000",
		MinPasswordLength: 6,
	}
}
