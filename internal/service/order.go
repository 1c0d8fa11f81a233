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
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer

	// Whether placing an order decrements stock immediately or leaves it
	// to fulfillment. See DESIGN.md.
	ReserveStock bool
}

// PlaceOrder turns the user's cart into a Pending order. Prices are
// snapshotted at this moment; later catalog changes do not touch the
// order's total.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "user_id", userID)

	order, err := s.Repo.PlaceOrder(ctx, userID, s.ReserveStock)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyCart):
			return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
		case errors.Is(err, repo.ErrInsufficientStock):
			return nil, fmt.Errorf("%w: insufficient stock", ErrConflict)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: product no longer exists", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":    "order_placed",
		"orderID": order.ID,
		"userID":  userID,
		"total":   order.TotalPrice,
	})

	l.Info("place_order_success", "order_id", order.ID, "total", order.TotalPrice, "lines", len(order.Items))
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.Repo.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no orders found", ErrNotFound)
	}
	return orders, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.GetAllOrders(ctx)
}

// UpdateStatus overwrites the order status. Any of the four known states
// is accepted from any other, there is no transition graph.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status")

	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})

	l.Info("update_status_success", "order_id", order.ID, "status", order.Status)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event map[string]any) {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pctx, events.TopicOrderEvents, fmt.Sprint(event["orderID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", events.TopicOrderEvents, "error", err)
	}
}
