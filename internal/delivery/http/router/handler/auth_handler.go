// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"glowbeauty/internal/delivery/http/middleware"
	"glowbeauty/internal/delivery/http/response"
	domainerrors "glowbeauty/internal/domain/errors"
	"glowbeauty/internal/domain/service"
	"glowbeauty/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc      usecase.AuthUsecase
	cookies service.SessionCookies
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cookies service.SessionCookies, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:      uc,
		cookies: cookies,
		logger:  logger,
	}
}

// RegisterRequest represents the request body for creating an account.
// Presence is checked here; the content rules live in the usecase so
// their messages name every violated rule at once.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles the customer registration request. No session is
// opened; the customer logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Identity, "Account created successfully")
}

// Login handles the customer login request and sets the session cookies
// from the issued token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response.WriteHeaders(c, h.cookies.WriteSessionCookies(output.AccessToken, output.RefreshToken))

	return response.Success(c, http.StatusOK, output.Identity, "Login successful")
}

// Refresh rotates the session from the refresh cookie. The token never
// travels in the request body; the cookie is the only carrier.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, ok := h.cookies.ReadRefreshCookie(c.Request())
	if !ok {
		return domainerrors.ErrSessionExpired
	}

	output, err := h.uc.Refresh(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	response.WriteHeaders(c, h.cookies.WriteSessionCookies(output.AccessToken, output.RefreshToken))

	return response.Success(c, http.StatusOK, output.Identity, "Session refreshed")
}

// Logout clears the stored refresh token and expires both cookies. It
// succeeds even without a live session so a stale browser can always
// reach a clean state.
func (h *AuthHandler) Logout(c echo.Context) error {
	if identity := middleware.GetIdentity(c); identity != nil {
		if err := h.uc.Logout(c.Request().Context(), identity.CustomerID); err != nil {
			return errors.WithStack(err)
		}
	}

	response.WriteHeaders(c, h.cookies.ClearSessionCookies())

	return response.Success(c, http.StatusOK, nil, "Logged out")
}
