package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bundleForge/pkg/logger"
)

type SessionVerifier interface {
	Enabled() bool
	VerifySession(ctx context.Context, id string) (json.RawMessage, error)
}

type CheckoutHandler struct {
	sessionVerifier SessionVerifier
	timeout         time.Duration
}

func NewCheckoutHandler(sessionVerifier SessionVerifier) *CheckoutHandler {
	return &CheckoutHandler{
		sessionVerifier: sessionVerifier,
		timeout:         30 * time.Second,
	}
}

func (h *CheckoutHandler) GetSession(c echo.Context) error {
	if !h.sessionVerifier.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "Stripe is not configured"})
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "session id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionVerifier.VerifySession(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to retrieve checkout session", "sessionId", sessionID, err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"session": session,
	})
}
