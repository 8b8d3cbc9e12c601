package handler

import (
	"log/slog"
	"net/http"

	"glowbeauty/internal/delivery/http/middleware"
	"glowbeauty/internal/delivery/http/response"
	domainerrors "glowbeauty/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// AccountHandler serves the authenticated customer's own account data.
type AccountHandler struct {
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(logger *slog.Logger) *AccountHandler {
	return &AccountHandler{logger: logger}
}

// Me returns the redacted identity of the current customer. Credential
// material never leaves the server.
func (h *AccountHandler) Me(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrAuthenticationRequired
	}

	return response.Success(c, http.StatusOK, identity, "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
