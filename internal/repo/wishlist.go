package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/models"
)

func (r *GormRepo) GetWishlist(ctx context.Context, userID uint) ([]models.Product, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) AddToWishlist(ctx context.Context, userID, productID uint) error {
	item := models.WishlistItem{UserID: userID, ProductID: productID}
	tx := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		FirstOrCreate(&item)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrDuplicateItem
	}
	return nil
}

// RemoveFromWishlist is idempotent, removing an absent product is not an
// error.
func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}

// MoveToCart takes the product out of the wishlist and into the cart with
// quantity 1, merging with an existing cart line. One transaction, the
// product is never in both or neither on a partial failure.
func (r *GormRepo) MoveToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.WishlistItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotInWishlist
		}

		upd := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + 1"))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			return tx.Create(&item).Error
		}
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
