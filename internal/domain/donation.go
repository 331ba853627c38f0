package domain

import (
	"time"

	"github.com/google/uuid"
)

// Donation records a gift, optionally tied to a member and a campaign.
// Processor-originated donations carry an external ID for deduplication, the
// same way webhook payments do.
type Donation struct {
	ID          uuid.UUID  `json:"id"`
	MemberID    *uuid.UUID `json:"member_id,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Campaign    string     `json:"campaign,omitempty"`
	Note        string     `json:"note,omitempty"`
	Method      string     `json:"method"`
	ExternalID  string     `json:"external_id,omitempty"`
	DonatedAt   time.Time  `json:"donated_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateDonationParams contains parameters for recording a donation.
type CreateDonationParams struct {
	MemberID    *uuid.UUID
	AmountCents int64
	Currency    string
	Campaign    string
	Note        string
	Method      string
	ExternalID  string
	DonatedAt   time.Time
}
