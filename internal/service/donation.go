package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// DonationService records and lists donations.
type DonationService struct {
	store   domain.Store
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

func NewDonationService(store domain.Store, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *DonationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DonationService{store: store, metrics: metrics, logger: logger}
}

// Record stores a donation. Donations carrying an external ID that was already
// recorded are treated as processor replays: the stored donation is returned
// and nothing is written.
func (s *DonationService) Record(ctx context.Context, params domain.CreateDonationParams) (domain.Donation, error) {
	const op = "donation.record"

	if params.AmountCents <= 0 {
		return domain.Donation{}, domain.Invalid(op, "amount must be positive")
	}
	if params.Method == "" {
		return domain.Donation{}, domain.Invalid(op, "method is required")
	}
	if params.Currency == "" {
		params.Currency = "EUR"
	}
	params.Currency = strings.ToUpper(params.Currency)
	if params.DonatedAt.IsZero() {
		params.DonatedAt = time.Now()
	}

	if params.MemberID != nil {
		if _, err := s.store.GetMember(ctx, *params.MemberID); err != nil {
			return domain.Donation{}, err
		}
	}

	donation, created, err := s.store.CreateDonation(ctx, params)
	if err != nil {
		return domain.Donation{}, err
	}
	if !created {
		s.logger.Info("donation replay ignored", "external_id", params.ExternalID)
		return donation, nil
	}

	if s.metrics != nil {
		s.metrics.DonationsRecorded.WithLabelValues(params.Method).Inc()
	}
	s.logger.Info("donation recorded",
		"donation_id", donation.ID,
		"amount_cents", donation.AmountCents,
		"method", donation.Method,
	)
	return donation, nil
}

// List lists all donations.
func (s *DonationService) List(ctx context.Context) ([]domain.Donation, error) {
	return s.store.ListDonations(ctx)
}
