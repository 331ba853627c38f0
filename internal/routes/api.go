package routes

import (
	"github.com/tresmastres/or-hayeladim/internal/router"
)

// RegisterAPIRoutes registers the admin API surface.
// Login is the only public route; everything else requires a valid token.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	r.Post("/auth/login", deps.AuthHandler.Login)

	api := r.Group(deps.RequireAuth)

	// Accounts
	api.Post("/auth/register", deps.AuthHandler.Register)

	// Families
	api.Post("/families", deps.FamilyHandler.Create)
	api.Get("/families", deps.FamilyHandler.List)
	api.Get("/families/{id}", deps.FamilyHandler.Get)

	// Members
	api.Post("/members", deps.MemberHandler.Create)
	api.Get("/members", deps.MemberHandler.List)
	api.Get("/members/{id}", deps.MemberHandler.Get)
	api.Get("/members/{id}/account", deps.MemberHandler.Account)

	// Banks
	api.Post("/banks", deps.BankHandler.Create)
	api.Get("/banks", deps.BankHandler.List)

	// Invoices
	api.Post("/invoices", deps.InvoiceHandler.Create)
	api.Get("/invoices", deps.InvoiceHandler.List)
	api.Get("/invoices/{id}", deps.InvoiceHandler.Get)
	api.Get("/invoices/{id}/payments", deps.InvoiceHandler.Payments)
	api.Post("/invoices/{id}/void", deps.InvoiceHandler.Void)
	api.Post("/invoices/{id}/send", deps.InvoiceHandler.Send)
	api.Post("/invoices/{id}/pay", deps.InvoiceHandler.Pay)

	// Payments
	api.Post("/payments", deps.PaymentHandler.Register)
	api.Get("/payments", deps.PaymentHandler.List)

	// Donations
	api.Post("/donations", deps.DonationHandler.Create)
	api.Get("/donations", deps.DonationHandler.List)
}
