package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/logging"
	"github.com/hairlyf/backend/internal/models"
	"github.com/hairlyf/backend/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	exists, err := s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}

	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}

	l.Info("add_to_cart_success", "user_id", userID, "product_id", productID, "quantity", item.Quantity)
	return &item, nil
}

// RemoveFromCart deletes the whole line. A line that was never there is
// not found, unlike the wishlist where removal is idempotent.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found in cart", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CartService) SetQuantity(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	item, err := s.Repo.SetCartQuantity(ctx, userID, productID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found in cart", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
