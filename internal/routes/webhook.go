package routes

import (
	"github.com/tresmastres/or-hayeladim/internal/router"
)

// RegisterWebhookRoutes registers all webhook routes.
//
// Note: Webhook routes do NOT have authentication middleware.
// Each webhook handler is responsible for verifying the request
// signature (e.g., Stripe signature verification).
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/stripe", deps.StripeHandler.HandleWebhook)
}
