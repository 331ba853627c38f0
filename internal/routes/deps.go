package routes

import (
	"github.com/tresmastres/or-hayeladim/internal/handler"
	"github.com/tresmastres/or-hayeladim/internal/handler/webhook"
	"github.com/tresmastres/or-hayeladim/internal/router"
)

// APIDeps contains dependencies for the authenticated admin API routes
type APIDeps struct {
	AuthHandler     *handler.AuthHandler
	FamilyHandler   *handler.FamilyHandler
	MemberHandler   *handler.MemberHandler
	BankHandler     *handler.BankHandler
	InvoiceHandler  *handler.InvoiceHandler
	PaymentHandler  *handler.PaymentHandler
	DonationHandler *handler.DonationHandler

	// RequireAuth guards every route except login
	RequireAuth router.Middleware
}

// WebhookDeps contains dependencies for webhook routes
type WebhookDeps struct {
	StripeHandler *webhook.StripeHandler
}
