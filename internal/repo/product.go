package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/models"
	"github.com/hairlyf/backend/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Reviews").
		Preload("Variants").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.UpdateProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Brand != nil {
		prod.Brand = *req.Brand
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchProductsByName is a case-insensitive substring match capped at
// limit rows. LOWER+LIKE keeps it portable between postgres and sqlite.
func (r *GormRepo) SearchProductsByName(ctx context.Context, name string, limit int) ([]models.Product, error) {
	var items []models.Product
	pattern := "%" + strings.ToLower(name) + "%"
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("LOWER(name) LIKE ?", pattern).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("category = ?", category).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductsByPriceRange(ctx context.Context, min, max float64) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("price >= ? AND price <= ?", min, max).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetLatestProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("created_at DESC").Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SetStock(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}
	prod.Stock = quantity
	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// AddReview appends a review and recomputes the product's mean rating in
// the same transaction, so the aggregate never drifts from the rows.
func (r *GormRepo) AddReview(ctx context.Context, review *models.Review) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&prod, review.ProductID).Error; err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var mean float64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ?", review.ProductID).
			Select("AVG(rating)").
			Scan(&mean).Error; err != nil {
			return err
		}

		prod.Rating = mean
		return tx.Save(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) GetReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var reviews []models.Review
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) ProductExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
