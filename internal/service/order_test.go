package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairlyf/backend/internal/models"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: true}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")
	p1 := seedProduct(t, db, "one", 10, 5)
	p2 := seedProduct(t, db, "two", 25.5, 5)

	_, err := cartSvc.AddToCart(ctx, user.ID, p1.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(ctx, user.ID, p2.ID, 1)
	require.NoError(t, err)

	order, err := orderSvc.PlaceOrder(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 45.5, order.TotalPrice)
	require.Len(t, order.Items, 2)

	// The cart is emptied by placement.
	cart, err := cartSvc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	// Stock moved to sold.
	var got models.Product
	require.NoError(t, db.First(&got, p1.ID).Error)
	assert.Equal(t, 3, got.Stock)
	assert.Equal(t, 2, got.Sold)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &OrderService{Repo: r, ReserveStock: true}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")

	_, err := svc.PlaceOrder(ctx, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: true}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")
	prod := seedProduct(t, db, "scarce", 10, 1)

	_, err := cartSvc.AddToCart(ctx, user.ID, prod.ID, 3)
	require.NoError(t, err)

	_, err = orderSvc.PlaceOrder(ctx, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	// Nothing happened: the cart is intact and stock untouched.
	cart, err := cartSvc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)

	var got models.Product
	require.NoError(t, db.First(&got, prod.ID).Error)
	assert.Equal(t, 1, got.Stock)
}

func TestOrderService_PlaceOrder_ReservationDisabled(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: false}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")
	prod := seedProduct(t, db, "scarce", 10, 1)

	_, err := cartSvc.AddToCart(ctx, user.ID, prod.ID, 3)
	require.NoError(t, err)

	// Oversell is allowed when reservation is off, stock stays put.
	order, err := orderSvc.PlaceOrder(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, order.TotalPrice)

	var got models.Product
	require.NoError(t, db.First(&got, prod.ID).Error)
	assert.Equal(t, 1, got.Stock)
	assert.Equal(t, 0, got.Sold)
}

func TestOrderService_PlaceOrder_MissingProduct(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: true}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")
	prod := seedProduct(t, db, "doomed", 10, 5)

	_, err := cartSvc.AddToCart(ctx, user.ID, prod.ID, 1)
	require.NoError(t, err)

	// The product disappears from the catalog before checkout.
	require.NoError(t, db.Delete(&models.Product{}, prod.ID).Error)

	_, err = orderSvc.PlaceOrder(ctx, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_PlaceOrder_SnapshotsPrices(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: true}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")
	prod := seedProduct(t, db, "volatile", 10, 5)

	_, err := cartSvc.AddToCart(ctx, user.ID, prod.ID, 2)
	require.NoError(t, err)

	order, err := orderSvc.PlaceOrder(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 10.0, order.Items[0].PriceAtPurchase)

	// A later price change does not touch the placed order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", prod.ID).Update("price", 99).Error)

	orders, err := orderSvc.GetUserOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 20.0, orders[0].TotalPrice)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 10.0, orders[0].Items[0].PriceAtPurchase)
}

func TestOrderService_GetUserOrders_Empty(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")

	_, err := svc.GetUserOrders(ctx, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_GetAllOrders(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: true}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	u1 := seedUser(t, db, "a@example.com", "secret1")
	u2 := seedUser(t, db, "b@example.com", "secret1")
	prod := seedProduct(t, db, "widget", 10, 100)

	for _, u := range []uint{u1.ID, u2.ID} {
		_, err := cartSvc.AddToCart(ctx, u, prod.ID, 1)
		require.NoError(t, err)
		_, err = orderSvc.PlaceOrder(ctx, u)
		require.NoError(t, err)
	}

	orders, err := orderSvc.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	r, db := newTestRepo(t)
	orderSvc := &OrderService{Repo: r, ReserveStock: true}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, db, "order@example.com", "secret1")
	prod := seedProduct(t, db, "widget", 10, 100)

	_, err := cartSvc.AddToCart(ctx, user.ID, prod.ID, 1)
	require.NoError(t, err)
	order, err := orderSvc.PlaceOrder(ctx, user.ID)
	require.NoError(t, err)

	updated, err := orderSvc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	require.Len(t, updated.Items, 1)

	_, err = orderSvc.UpdateStatus(ctx, order.ID, "OnTheMoon")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = orderSvc.UpdateStatus(ctx, 9999, models.OrderStatusShipped)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
