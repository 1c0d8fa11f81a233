package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hairlyf/backend/internal/logging"
	"github.com/hairlyf/backend/internal/models"
	"github.com/hairlyf/backend/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) GetWishlist(ctx context.Context, userID uint) ([]models.Product, error) {
	return s.Repo.GetWishlist(ctx, userID)
}

func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID uint) error {
	l := logging.FromContext(ctx).With("svc", "wishlist.add")

	if productID == 0 {
		return fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	exists, err := s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: product not found", ErrNotFound)
	}

	if err := s.Repo.AddToWishlist(ctx, userID, productID); err != nil {
		if errors.Is(err, repo.ErrDuplicateItem) {
			return fmt.Errorf("%w: product already in wishlist", ErrConflict)
		}
		return err
	}

	l.Info("add_to_wishlist_success", "user_id", userID, "product_id", productID)
	return nil
}

// RemoveFromWishlist is idempotent, removing an absent product succeeds.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return s.Repo.RemoveFromWishlist(ctx, userID, productID)
}

func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "wishlist.move_to_cart")

	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	item, err := s.Repo.MoveToCart(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotInWishlist) {
			return nil, fmt.Errorf("%w: product not in wishlist", ErrValidation)
		}
		return nil, err
	}

	l.Info("move_to_cart_success", "user_id", userID, "product_id", productID)
	return item, nil
}
