package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lingo-backend/internal/http/response"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

const maxWebhookBody = 1 << 16

type BillingHandler struct {
	log     *logger.Logger
	billing services.BillingService
}

func NewBillingHandler(log *logger.Logger, billing services.BillingService) *BillingHandler {
	return &BillingHandler{log: log.With("handler", "BillingHandler"), billing: billing}
}

// POST /api/billing/checkout
func (h *BillingHandler) Checkout(c *gin.Context) {
	url, err := h.billing.CheckoutURL(c.Request.Context())
	if err != nil {
		h.log.Warn("Checkout failed", "error", err)
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": url})
}

// POST /api/webhooks/stripe
func (h *BillingHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		response.RespondErr(c, apierr.BadRequest(err))
		return
	}
	if len(payload) > maxWebhookBody {
		response.RespondErr(c, apierr.New(http.StatusRequestEntityTooLarge, apierr.CodeInvalidRequest, errors.New("payload too large")))
		return
	}
	if err := h.billing.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.log.Warn("Stripe webhook rejected", "error", err)
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}
