package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairlyf/backend/internal/transport"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:        "keyboard",
		Description: "mechanical",
		Price:       49.99,
		Category:    "peripherals",
		Stock:       5,
		ImageURL:    "http://example.com/kb.png",
	})
	require.NoError(t, err)
	assert.NotZero(t, prod.ID)
	assert.Equal(t, 49.99, prod.Price)

	got, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "keyboard", got.Name)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{name: "missing name", req: transport.CreateProductRequest{Description: "d", Price: 1, Category: "c", ImageURL: "u"}},
		{name: "missing price", req: transport.CreateProductRequest{Name: "n", Description: "d", Category: "c", ImageURL: "u"}},
		{name: "negative price", req: transport.CreateProductRequest{Name: "n", Description: "d", Price: -1, Category: "c", ImageURL: "u"}},
		{name: "negative stock", req: transport.CreateProductRequest{Name: "n", Description: "d", Price: 1, Category: "c", ImageURL: "u", Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_UpdateProduct_PatchesOnlyGivenFields(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, db, "mouse", 10, 3)

	price := 12.5
	updated, err := svc.UpdateProduct(ctx, prod.ID, transport.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, "mouse", updated.Name)
	assert.Equal(t, 3, updated.Stock)

	bad := -1.0
	_, err = svc.UpdateProduct(ctx, prod.ID, transport.UpdateProductRequest{Price: &bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProduct(ctx, 9999, transport.UpdateProductRequest{Price: &price})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, db, "gone", 5, 1)

	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))

	_, err := svc.GetProduct(ctx, prod.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct(ctx, prod.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_SearchByName(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		seedProduct(t, db, fmt.Sprintf("Gaming Laptop %d", i), 100, 1)
	}
	seedProduct(t, db, "Desk Lamp", 20, 1)

	// Case-insensitive substring match, capped at ten rows.
	items, err := svc.SearchByName(ctx, "gaming laptop")
	require.NoError(t, err)
	assert.Len(t, items, 10)

	items, err = svc.SearchByName(ctx, "desk")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Desk Lamp", items[0].Name)

	_, err = svc.SearchByName(ctx, "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SearchByName(ctx, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_GetByCategory(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, db, "sofa", 300, 1)
	require.NoError(t, db.Model(prod).Update("category", "furniture").Error)

	items, err := svc.GetByCategory(ctx, "furniture")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sofa", items[0].Name)

	_, err = svc.GetByCategory(ctx, "toys")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_GetByPriceRange(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	seedProduct(t, db, "cheap", 10, 1)
	seedProduct(t, db, "mid", 50, 1)
	seedProduct(t, db, "dear", 200, 1)

	items, err := svc.GetByPriceRange(ctx, 10, 50)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Both bounds are inclusive, min == max selects the exact price.
	items, err = svc.GetByPriceRange(ctx, 50, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mid", items[0].Name)

	// Inverted range matches nothing.
	_, err = svc.GetByPriceRange(ctx, 100, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_GetLatest(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		prod := seedProduct(t, db, fmt.Sprintf("p%d", i), 10, 1)
		require.NoError(t, db.Model(prod).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	items, err := svc.GetLatest(ctx)
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, "p11", items[0].Name)
	assert.Equal(t, "p2", items[9].Name)
}

func TestCatalogService_AddReview_RecomputesRating(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, db, "rated", 10, 1)

	got, err := svc.AddReview(ctx, prod.ID, 1, transport.AddReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Rating)

	got, err = svc.AddReview(ctx, prod.ID, 2, transport.AddReviewRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.Rating)

	reviews, err := svc.GetReviews(ctx, prod.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestCatalogService_AddReview_Validation(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, db, "rated", 10, 1)

	_, err := svc.AddReview(ctx, prod.ID, 1, transport.AddReviewRequest{Rating: 0, Comment: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(ctx, prod.ID, 1, transport.AddReviewRequest{Rating: 6, Comment: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(ctx, prod.ID, 1, transport.AddReviewRequest{Rating: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(ctx, 9999, 1, transport.AddReviewRequest{Rating: 3, Comment: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_GetReviews_UnknownProduct(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.GetReviews(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_SetStock(t *testing.T) {
	r, db := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := seedProduct(t, db, "stocked", 10, 3)

	qty := 7
	got, err := svc.SetStock(ctx, prod.ID, &qty)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	neg := -1
	_, err = svc.SetStock(ctx, prod.ID, &neg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetStock(ctx, prod.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetStock(ctx, 9999, &qty)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
