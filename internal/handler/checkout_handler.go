package handler

import (
	"net/http"

	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/payments"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CheckoutHandler exposes payment session lookups. Payment capture itself
// happens at the external processor; this only reads back the amount and
// status for the post-checkout page.
type CheckoutHandler struct {
	payments *payments.Client
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(client *payments.Client) *CheckoutHandler {
	return &CheckoutHandler{payments: client}
}

// GetSession looks up a checkout session by id
func (h *CheckoutHandler) GetSession(c echo.Context) error {
	log := logger.FromEcho(c)

	sessionID := c.Param("id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session id is required"})
	}

	session, err := h.payments.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		log.Warn("Payment session lookup failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment session unavailable"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"session": session,
	})
}
