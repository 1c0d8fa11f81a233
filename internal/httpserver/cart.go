package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairlyf/backend/internal/logging"
	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
	"github.com/hairlyf/backend/internal/service"
	"github.com/hairlyf/backend/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "product_id", req.ProductID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "item added to cart", "item": item})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, productID); err != nil {
		l.Warn("remove_from_cart_error", "product_id", productID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "item removed from cart"})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.SetQuantity(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("update_cart_error", "product_id", req.ProductID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart updated", "item": item})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
