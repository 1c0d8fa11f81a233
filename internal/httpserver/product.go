package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hairlyf/backend/internal/logging"
	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
	"github.com/hairlyf/backend/internal/service"
	"github.com/hairlyf/backend/internal/transport"
	"github.com/hairlyf/backend/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		l.Warn("update_product_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	items, err := h.Svc.SearchByName(ctx, c.QueryParam("name"))
	if err != nil {
		l.Warn("search_products_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_category")

	items, err := h.Svc.GetByCategory(ctx, c.Param("category"))
	if err != nil {
		l.Warn("get_by_category_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetByPriceRange(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.price_range")

	minStr, maxStr := c.QueryParam("min"), c.QueryParam("max")
	if minStr == "" || maxStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "min and max price range are required")
	}
	min, errMin := strconv.ParseFloat(minStr, 64)
	max, errMax := strconv.ParseFloat(maxStr, 64)
	if errMin != nil || errMax != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "min and max must be numbers")
	}

	items, err := h.Svc.GetByPriceRange(ctx, min, max)
	if err != nil {
		l.Warn("price_range_error", "min", min, "max", max, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetLatest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.latest")

	items, err := h.Svc.GetLatest(ctx)
	if err != nil {
		l.Error("get_latest_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list latest products")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) SetStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.set_stock")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.SetStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_stock_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.SetStock(ctx, id, req.Quantity)
	if err != nil {
		l.Warn("set_stock_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "stock updated successfully", "product": prod})
}

func (h *CatalogHTTP) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add_review")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_review_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.AddReview(ctx, id, userID, req)
	if err != nil {
		l.Warn("add_review_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review added successfully", "product": prod})
}

func (h *CatalogHTTP) GetReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.reviews")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.Svc.GetReviews(ctx, id)
	if err != nil {
		l.Warn("get_reviews_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}
