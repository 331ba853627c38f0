// Package webhook receives payment provider notifications.
package webhook

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tresmastres/or-hayeladim/internal/billing"
	"github.com/tresmastres/or-hayeladim/internal/handler"
	"github.com/tresmastres/or-hayeladim/internal/service"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// maxPayloadBytes bounds webhook request bodies.
const maxPayloadBytes = 1 << 20

// StripeHandler handles Stripe webhook deliveries.
//
// Stripe CLI testing:
//
//	stripe listen --forward-to localhost:8000/webhooks/stripe
//	stripe trigger payment_intent.succeeded
type StripeHandler struct {
	provider billing.Provider
	webhooks *service.WebhookService
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

func NewStripeHandler(provider billing.Provider, webhooks *service.WebhookService, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *StripeHandler {
	return &StripeHandler{
		provider: provider,
		webhooks: webhooks,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleWebhook processes one Stripe webhook delivery.
//
// Stripe retries non-2xx responses, so the handler answers 200 for every
// delivery it has durably absorbed (including replays and events it does not
// care about) and non-2xx only when a retry could succeed later.
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("webhook payload read failed", "error", err)
		http.Error(w, "error reading request body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		h.failed("signature")
		http.Error(w, "missing signature", http.StatusBadRequest)
		return
	}

	event, err := h.provider.VerifyWebhook(payload, signature)
	if err != nil {
		h.failed("signature")
		h.logger.Warn("webhook signature verification failed", "error", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if h.metrics != nil {
		h.metrics.WebhookReceived.WithLabelValues("stripe", event.Type).Inc()
	}
	h.logger.Info("webhook received", "event_id", event.ID, "type", event.Type)

	if err := h.webhooks.ProcessEvent(r.Context(), event); err != nil {
		h.failed("store")
		h.logger.Error("webhook processing failed",
			"event_id", event.ID,
			"type", event.Type,
			"error", err,
		)
		// Let Stripe retry: the failure may be transient.
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.WebhookProcessed.WithLabelValues("stripe", event.Type).Inc()
	}
	handler.JSON(w, http.StatusOK, map[string]string{"received": "true"})
}

func (h *StripeHandler) failed(reason string) {
	if h.metrics != nil {
		h.metrics.WebhookFailed.WithLabelValues("stripe", reason).Inc()
	}
}
