package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// DirectoryService manages families, members and bank accounts.
type DirectoryService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewDirectoryService(store domain.Store, logger *slog.Logger) *DirectoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryService{store: store, logger: logger}
}

// CreateFamily registers a new family.
func (s *DirectoryService) CreateFamily(ctx context.Context, params domain.CreateFamilyParams) (domain.Family, error) {
	const op = "family.create"

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return domain.Family{}, domain.Invalid(op, "name is required")
	}

	family, err := s.store.CreateFamily(ctx, params)
	if err != nil {
		return domain.Family{}, err
	}
	s.logger.Info("family created", "family_id", family.ID, "name", family.Name)
	return family, nil
}

// GetFamily retrieves a family by ID.
func (s *DirectoryService) GetFamily(ctx context.Context, id uuid.UUID) (domain.Family, error) {
	return s.store.GetFamily(ctx, id)
}

// ListFamilies lists all families.
func (s *DirectoryService) ListFamilies(ctx context.Context) ([]domain.Family, error) {
	return s.store.ListFamilies(ctx)
}

// CreateMember registers a new member, optionally linked to a family.
func (s *DirectoryService) CreateMember(ctx context.Context, params domain.CreateMemberParams) (domain.Member, error) {
	const op = "member.create"

	params.FirstName = strings.TrimSpace(params.FirstName)
	params.LastName = strings.TrimSpace(params.LastName)
	if params.FirstName == "" || params.LastName == "" {
		return domain.Member{}, domain.Invalid(op, "first and last name are required")
	}

	if params.FamilyID != nil {
		if _, err := s.store.GetFamily(ctx, *params.FamilyID); err != nil {
			return domain.Member{}, err
		}
	}

	member, err := s.store.CreateMember(ctx, params)
	if err != nil {
		return domain.Member{}, err
	}
	s.logger.Info("member created", "member_id", member.ID, "name", member.FullName())
	return member, nil
}

// GetMember retrieves a member by ID.
func (s *DirectoryService) GetMember(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	return s.store.GetMember(ctx, id)
}

// ListMembers lists all members.
func (s *DirectoryService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.store.ListMembers(ctx)
}

// CreateBank registers an organization bank account.
func (s *DirectoryService) CreateBank(ctx context.Context, params domain.CreateBankParams) (domain.Bank, error) {
	const op = "bank.create"

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return domain.Bank{}, domain.Invalid(op, "name is required")
	}
	return s.store.CreateBank(ctx, params)
}

// ListBanks lists all bank accounts.
func (s *DirectoryService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	return s.store.ListBanks(ctx)
}

// Account builds a member's account statement: every invoice with the paid
// amount, its remaining balance, and the outstanding total. Void invoices
// appear with a zero balance so the history stays complete.
func (s *DirectoryService) Account(ctx context.Context, memberID uuid.UUID) (*domain.AccountStatement, error) {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.store.ListMemberInvoices(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	statement := &domain.AccountStatement{MemberID: member.ID}
	for _, inv := range invoices {
		payments, err := s.store.ListInvoicePayments(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		var paid int64
		for _, p := range payments {
			paid += p.AmountCents
		}

		var balance int64
		if inv.Status != domain.InvoiceVoid {
			balance = domain.Balance(inv.AmountCents, paid)
		}

		statement.Invoices = append(statement.Invoices, domain.AccountLine{
			InvoiceID:    inv.ID,
			FullNumber:   inv.FullNumber,
			AmountCents:  inv.AmountCents,
			PaidCents:    paid,
			BalanceCents: balance,
			Status:       inv.Status,
		})
		statement.TotalBalanceCents += balance
	}

	return statement, nil
}
