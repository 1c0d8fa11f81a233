package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairlyf/backend/internal/logging"
	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
	"github.com/hairlyf/backend/internal/service"
	"github.com/hairlyf/backend/internal/transport"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		l.Warn("register_error", "error", err)
		return httpError(err)
	}

	if res.PendingVerification {
		return c.JSON(http.StatusCreated, echo.Map{
			"message": "verification email sent, please check your inbox",
		})
	}
	return c.JSON(http.StatusCreated, res.User)
}

func (h *AccountHTTP) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.verify_email")

	user, err := h.Svc.VerifyEmail(ctx, c.Param("token"))
	if err != nil {
		l.Warn("verify_email_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "email verified and user registered successfully",
		"user":    user,
	})
}

func (h *AccountHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		ID:          res.User.ID,
		Name:        res.User.Name,
		Email:       res.User.Email,
		PhoneNumber: res.User.PhoneNumber,
		IsAdmin:     res.User.IsAdmin,
		Token:       res.Token,
	})
}

func (h *AccountHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.get_profile")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.Svc.GetProfile(ctx, userID)
	if err != nil {
		l.Warn("get_profile_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AccountHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.update_profile")

	userID, err := mwauth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		l.Warn("update_profile_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AccountHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.forgot_password")

	var req transport.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("forgot_password_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		l.Warn("forgot_password_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset email sent"})
}

func (h *AccountHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.reset_password")

	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("reset_password_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(ctx, req.Token, req.Password); err != nil {
		l.Warn("reset_password_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset successful"})
}
