package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserAlreadyExist  = errors.New("user already exist")
	ErrDuplicateItem     = errors.New("item already present")
	ErrNotInWishlist     = errors.New("product not in wishlist")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// forUpdate applies SELECT ... FOR UPDATE where the dialect supports it.
// sqlite (the test database) has no row locks and serializes writes itself.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
