package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/events"
	"github.com/hairlyf/backend/internal/logging"
	"github.com/hairlyf/backend/internal/models"
	"github.com/hairlyf/backend/internal/repo"
	"github.com/hairlyf/backend/internal/search"
	"github.com/hairlyf/backend/internal/transport"
)

// At most this many rows come back from name search and latest listings.
const listCap = 10

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Indexer  *search.Indexer
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if req.Name == "" || req.Description == "" || req.Price == 0 || req.Category == "" || req.ImageURL == "" {
		return nil, fmt.Errorf("%w: name, description, price, category and image_url are required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	prod := models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.reindex(ctx, &prod)

	l.Info("create_product_success", "product_id", prod.ID)
	return &prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product")

	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.reindex(ctx, prod)

	l.Info("update_product_success", "product_id", prod.ID)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product")

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
		l.Error("es deindex error", "product_id", id, "error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return nil
}

func (s *CatalogService) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}

	items, err := s.Repo.SearchProductsByName(ctx, name, listCap)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no products found", ErrNotFound)
	}
	return items, nil
}

func (s *CatalogService) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	items, err := s.Repo.GetProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no products found in this category", ErrNotFound)
	}
	return items, nil
}

// GetByPriceRange returns products with min <= price <= max, both bounds
// inclusive. An inverted range matches nothing and reads as not found.
func (s *CatalogService) GetByPriceRange(ctx context.Context, min, max float64) ([]models.Product, error) {
	items, err := s.Repo.GetProductsByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no products found in this price range", ErrNotFound)
	}
	return items, nil
}

func (s *CatalogService) GetLatest(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetLatestProducts(ctx, listCap)
}

// SetStock overwrites the stock count, it is not a delta.
func (s *CatalogService) SetStock(ctx context.Context, id uint, quantity *int) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.set_stock")

	if quantity == nil {
		return nil, fmt.Errorf("%w: quantity is required", ErrValidation)
	}
	if *quantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	prod, err := s.Repo.SetStock(ctx, id, *quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_stock_set",
		"productID": prod.ID,
		"stock":     prod.Stock,
	})

	l.Info("set_stock_success", "product_id", prod.ID, "stock", prod.Stock)
	return prod, nil
}

func (s *CatalogService) AddReview(ctx context.Context, productID, userID uint, req transport.AddReviewRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.add_review")

	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if req.Comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrValidation)
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	prod, err := s.Repo.AddReview(ctx, &review)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	l.Info("add_review_success", "product_id", productID, "rating", req.Rating)
	return prod, nil
}

func (s *CatalogService) GetReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	reviews, err := s.Repo.GetReviews(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}
	return reviews, nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pctx, events.TopicProductEvents, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", events.TopicProductEvents, "error", err)
	}
}

func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	if err := s.Indexer.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", p.ID, "error", err)
	}
}
