package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairlyf/backend/internal/logging"
	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
	"github.com/hairlyf/backend/internal/service"
	"github.com/hairlyf/backend/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID)
	if err != nil {
		l.Warn("place_order_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "order placed successfully", "order": order})
}

func (h *OrderHTTP) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.user_orders")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.GetUserOrders(ctx, userID)
	if err != nil {
		l.Warn("get_user_orders_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.all_orders")

	orders, err := h.Svc.GetAllOrders(ctx)
	if err != nil {
		l.Error("get_all_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	orderID, err := parseUintParam(c, "orderId")
	if err != nil {
		return err
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		l.Warn("update_status_error", "order_id", orderID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order status updated", "order": order})
}
