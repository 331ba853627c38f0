package domain

import (
	"time"

	"github.com/google/uuid"
)

// Family groups members that share a household.
type Family struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFamilyParams contains parameters for creating a family.
type CreateFamilyParams struct {
	Name    string
	Email   string
	Address string
	City    string
	Country string
	Phone   string
}

// Member is an individual member of the organization, optionally linked to a
// family.
type Member struct {
	ID          uuid.UUID  `json:"id"`
	FamilyID    *uuid.UUID `json:"family_id,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Affiliation string     `json:"affiliation,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// CreateMemberParams contains parameters for creating a member.
type CreateMemberParams struct {
	FamilyID    *uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	BirthDate   *time.Time
	Affiliation string
}

// Bank is an organization bank account that payments can reference.
type Bank struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number,omitempty"`
	SWIFT         string    `json:"swift,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBankParams contains parameters for registering a bank account.
type CreateBankParams struct {
	Name          string
	AccountNumber string
	SWIFT         string
}
