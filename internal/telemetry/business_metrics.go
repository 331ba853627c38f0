package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Invoicing
	InvoicesCreated *prometheus.CounterVec
	InvoicesVoided  prometheus.Counter
	InvoiceAmount   *prometheus.HistogramVec

	// Payments
	PaymentsRecorded  *prometheus.CounterVec
	PaymentDuplicates prometheus.Counter
	InvoicesSettled   prometheus.Counter

	// Donations
	DonationsRecorded *prometheus.CounterVec

	// Webhooks
	WebhookReceived  *prometheus.CounterVec
	WebhookProcessed *prometheus.CounterVec
	WebhookFailed    *prometheus.CounterVec

	// Auth
	Logins      prometheus.Counter
	LoginFailed prometheus.Counter

	// Notifications
	EmailSent          *prometheus.CounterVec
	EmailFailed        *prometheus.CounterVec
	NotificationFailed prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "orhayeladim"
	}

	subsystem := "business"

	return &BusinessMetrics{
		InvoicesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_created_total",
				Help:      "Total invoices created",
			},
			[]string{"series"},
		),
		InvoicesVoided: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_voided_total",
				Help:      "Total invoices voided",
			},
		),
		InvoiceAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoice_amount_cents",
				Help:      "Invoice amounts in cents",
				Buckets:   prometheus.ExponentialBuckets(500, 4, 8),
			},
			[]string{"series"},
		),
		PaymentsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_recorded_total",
				Help:      "Total payments recorded against invoices",
			},
			[]string{"method"}, // method: cash, bank, stripe
		),
		PaymentDuplicates: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_duplicates_total",
				Help:      "Total payment registrations skipped as webhook replays",
			},
		),
		InvoicesSettled: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_settled_total",
				Help:      "Total invoices that transitioned to paid",
			},
		),
		DonationsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "donations_recorded_total",
				Help:      "Total donations recorded",
			},
			[]string{"method"},
		),
		WebhookReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhook_received_total",
				Help:      "Total webhook deliveries received",
			},
			[]string{"provider", "event_type"},
		),
		WebhookProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhook_processed_total",
				Help:      "Total webhook deliveries processed successfully",
			},
			[]string{"provider", "event_type"},
		),
		WebhookFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhook_failed_total",
				Help:      "Total webhook deliveries that failed processing",
			},
			[]string{"provider", "reason"}, // reason: signature, payload, store
		),
		Logins: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful logins",
			},
		),
		LoginFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed login attempts",
			},
		),
		EmailSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_sent_total",
				Help:      "Total emails sent",
			},
			[]string{"kind"}, // kind: invoice
		),
		EmailFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_failed_total",
				Help:      "Total emails that failed to send",
			},
			[]string{"kind"},
		),
		NotificationFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notification_failed_total",
				Help:      "Total best-effort settlement notifications that failed",
			},
		),
	}
}
