package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/models"
)

// PlaceOrder consolidates the user's cart into an immutable order inside a
// single transaction: snapshot current prices, optionally decrement stock,
// create the order, empty the cart. Either all of it happens or none.
//
// Cart and product rows are locked for the duration, so two concurrent
// placements for the same user serialize instead of double-spending the
// cart or the stock.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint, reserveStock bool) (*models.Order, error) {
	var order *models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := forUpdate(tx).
			Where("user_id = ?", userID).
			Order("product_id ASC").
			Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		var total float64
		items := make([]models.OrderItem, 0, len(cart))
		for _, line := range cart {
			var product models.Product
			if err := forUpdate(tx).First(&product, line.ProductID).Error; err != nil {
				return err
			}

			if reserveStock {
				if product.Stock < int(line.Quantity) {
					return ErrInsufficientStock
				}
				product.Stock -= int(line.Quantity)
				product.Sold += int(line.Quantity)
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			}

			items = append(items, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        line.Quantity,
				PriceAtPurchase: product.Price,
			})
			total += product.Price * float64(line.Quantity)
		}

		order = &models.Order{
			UserID:     userID,
			TotalPrice: total,
			Status:     models.OrderStatusPending,
			Items:      items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
