package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairlyf/backend/internal/logging"
	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
	"github.com/hairlyf/backend/internal/service"
	"github.com/hairlyf/backend/internal/transport"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	products, err := h.Svc.GetWishlist(ctx, userID)
	if err != nil {
		l.Error("get_wishlist_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"wishlist": products})
}

func (h *WishlistHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.WishlistRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_wishlist_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.AddToWishlist(ctx, userID, req.ProductID); err != nil {
		l.Warn("add_to_wishlist_error", "product_id", req.ProductID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product added to wishlist"})
}

func (h *WishlistHTTP) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFromWishlist(ctx, userID, productID); err != nil {
		l.Error("remove_from_wishlist_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product removed from wishlist"})
}

func (h *WishlistHTTP) MoveToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.move_to_cart")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.WishlistRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("move_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.MoveToCart(ctx, userID, req.ProductID)
	if err != nil {
		l.Warn("move_to_cart_error", "product_id", req.ProductID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product moved to cart", "item": item})
}
