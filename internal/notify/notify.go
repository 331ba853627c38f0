// Package notify composes invoice documents and delivers them by email.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/email"
	"github.com/tresmastres/or-hayeladim/internal/pdf"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// ErrNoRecipient is returned when neither the member nor their family has an
// email address on file.
var ErrNoRecipient = domain.Errorf(domain.EINVALID, "notify.invoice", "member has no email address on file")

// Notifier renders invoice PDFs and emails them to members.
type Notifier struct {
	pdf     *pdf.Generator
	sender  email.Sender
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

func NewNotifier(generator *pdf.Generator, sender email.Sender, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{pdf: generator, sender: sender, metrics: metrics, logger: logger}
}

// SendInvoice renders the invoice as a PDF and emails it to the member.
// Delivery failures are returned to the caller.
func (n *Notifier) SendInvoice(ctx context.Context, inv domain.Invoice, member domain.Member) error {
	if member.Email == "" {
		return ErrNoRecipient
	}

	doc, err := n.pdf.Invoice(inv, member)
	if err != nil {
		return domain.Internal(err, "notify.invoice", "failed to render invoice document")
	}

	subject := fmt.Sprintf("Invoice %s", inv.FullNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find attached invoice %s for %s.\n\nThank you.",
		member.FullName(), inv.FullNumber, pdf.FormatAmount(inv.AmountCents, inv.Currency),
	)

	_, err = n.sender.Send(ctx, &email.Email{
		To:       []string{member.Email},
		Subject:  subject,
		TextBody: body,
		Attachments: []email.Attachment{{
			Filename:    fmt.Sprintf("invoice-%s.pdf", inv.FullNumber),
			ContentType: "application/pdf",
			Content:     doc,
		}},
	})
	if err != nil {
		if n.metrics != nil {
			n.metrics.EmailFailed.WithLabelValues("invoice").Inc()
		}
		return domain.Internal(err, "notify.invoice", "failed to send invoice email")
	}

	if n.metrics != nil {
		n.metrics.EmailSent.WithLabelValues("invoice").Inc()
	}
	n.logger.Info("invoice emailed", "invoice", inv.FullNumber, "to", member.Email)
	return nil
}

// SettlementNotice emails the member that their invoice is fully paid.
// Used by the best-effort path after a settling payment.
func (n *Notifier) SettlementNotice(ctx context.Context, inv domain.Invoice, member domain.Member) error {
	if member.Email == "" {
		return ErrNoRecipient
	}

	subject := fmt.Sprintf("Invoice %s paid", inv.FullNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nWe have received full payment for invoice %s (%s). Thank you.",
		member.FullName(), inv.FullNumber, pdf.FormatAmount(inv.AmountCents, inv.Currency),
	)

	_, err := n.sender.Send(ctx, &email.Email{
		To:       []string{member.Email},
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		if n.metrics != nil {
			n.metrics.EmailFailed.WithLabelValues("settlement").Inc()
		}
		return domain.Internal(err, "notify.settlement", "failed to send settlement email")
	}

	if n.metrics != nil {
		n.metrics.EmailSent.WithLabelValues("settlement").Inc()
	}
	return nil
}
