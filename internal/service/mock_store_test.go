package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// memStore is an in-memory domain.Store with the same transactional semantics
// as the PostgreSQL implementation: atomic number allocation per (series,
// year), external ID dedup for payments and donations, and status
// recomputation from the full payment sum under one lock.
type memStore struct {
	mu sync.Mutex

	users     map[uuid.UUID]domain.User
	families  map[uuid.UUID]domain.Family
	members   map[uuid.UUID]domain.Member
	banks     []domain.Bank
	sequences map[string]int // "series|year" -> next number
	invoices  map[uuid.UUID]domain.Invoice
	payments  []domain.Payment
	donations []domain.Donation
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]domain.User),
		families:  make(map[uuid.UUID]domain.Family),
		members:   make(map[uuid.UUID]domain.Member),
		sequences: make(map[string]int),
		invoices:  make(map[uuid.UUID]domain.Invoice),
	}
}

var _ domain.Store = (*memStore)(nil)

func seqKey(series string, year int) string {
	return fmt.Sprintf("%s|%d", series, year)
}

func (s *memStore) CreateUser(ctx context.Context, params domain.CreateUserParams) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == params.Email {
			return domain.User{}, domain.Conflict("user.create", "email already registered")
		}
	}
	u := domain.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		IsAdmin:      params.IsAdmin,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFound("user.get", "user", email)
}

func (s *memStore) CreateFamily(ctx context.Context, params domain.CreateFamilyParams) (domain.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := domain.Family{
		ID:        uuid.New(),
		Name:      params.Name,
		Email:     params.Email,
		Address:   params.Address,
		City:      params.City,
		Country:   params.Country,
		Phone:     params.Phone,
		CreatedAt: time.Now(),
	}
	s.families[f.ID] = f
	return f, nil
}

func (s *memStore) GetFamily(ctx context.Context, id uuid.UUID) (domain.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.families[id]
	if !ok {
		return domain.Family{}, domain.NotFound("family.get", "family", id.String())
	}
	return f, nil
}

func (s *memStore) ListFamilies(ctx context.Context) ([]domain.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Family, 0, len(s.families))
	for _, f := range s.families {
		out = append(out, f)
	}
	return out, nil
}

func (s *memStore) CreateMember(ctx context.Context, params domain.CreateMemberParams) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := domain.Member{
		ID:          uuid.New(),
		FamilyID:    params.FamilyID,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		BirthDate:   params.BirthDate,
		Affiliation: params.Affiliation,
		CreatedAt:   time.Now(),
	}
	s.members[m.ID] = m
	return m, nil
}

func (s *memStore) GetMember(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return domain.Member{}, domain.NotFound("member.get", "member", id.String())
	}
	return m, nil
}

func (s *memStore) ListMembers(ctx context.Context) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	return out, nil
}

func (s *memStore) CreateBank(ctx context.Context, params domain.CreateBankParams) (domain.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := domain.Bank{
		ID:            uuid.New(),
		Name:          params.Name,
		AccountNumber: params.AccountNumber,
		SWIFT:         params.SWIFT,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	s.banks = append(s.banks, b)
	return b, nil
}

func (s *memStore) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Bank(nil), s.banks...), nil
}

func (s *memStore) CreateInvoice(ctx context.Context, params domain.CreateInvoiceParams) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := seqKey(params.Series, params.IssueDate.Year())
	number := s.sequences[key] + 1
	s.sequences[key] = number

	inv := domain.Invoice{
		ID:          uuid.New(),
		MemberID:    params.MemberID,
		Description: params.Description,
		AmountCents: params.AmountCents,
		Currency:    params.Currency,
		IssueDate:   params.IssueDate,
		DueDate:     params.DueDate,
		Status:      domain.InvoiceOpen,
		Series:      params.Series,
		Number:      number,
		FullNumber:  domain.FormatFullNumber(params.Series, number),
		CreatedAt:   time.Now(),
	}
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (s *memStore) GetInvoice(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.NotFound("invoice.get", "invoice", id.String())
	}
	return inv, nil
}

func (s *memStore) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (s *memStore) ListMemberInvoices(ctx context.Context, memberID uuid.UUID) ([]domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Invoice
	for _, inv := range s.invoices {
		if inv.MemberID == memberID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *memStore) VoidInvoice(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.NotFound("invoice.void", "invoice", id.String())
	}
	inv.Status = domain.InvoiceVoid
	s.invoices[id] = inv
	return inv, nil
}

func (s *memStore) RegisterPayment(ctx context.Context, params domain.RegisterPaymentParams) (*domain.PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[params.InvoiceID]
	if !ok {
		return nil, domain.NotFound("payment.register", "invoice", params.InvoiceID.String())
	}

	if params.ExternalID != "" {
		for _, p := range s.payments {
			if p.InvoiceID == inv.ID && p.ExternalID == params.ExternalID {
				return &domain.PaymentResult{
					Invoice:        inv,
					PreviousStatus: inv.Status,
					Duplicate:      true,
				}, nil
			}
		}
	}

	payment := domain.Payment{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		AmountCents: params.AmountCents,
		Method:      params.Method,
		BankID:      params.BankID,
		ExternalID:  params.ExternalID,
		PaidAt:      params.PaidAt,
		CreatedAt:   time.Now(),
	}
	s.payments = append(s.payments, payment)

	var paid int64
	for _, p := range s.payments {
		if p.InvoiceID == inv.ID {
			paid += p.AmountCents
		}
	}

	previous := inv.Status
	inv.Status = domain.SettlementStatus(inv.Status, inv.AmountCents, paid)
	s.invoices[inv.ID] = inv

	return &domain.PaymentResult{
		Payment:        payment,
		Invoice:        inv,
		PreviousStatus: previous,
	}, nil
}

func (s *memStore) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Payment(nil), s.payments...), nil
}

func (s *memStore) ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) CreateDonation(ctx context.Context, params domain.CreateDonationParams) (domain.Donation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.ExternalID != "" {
		for _, d := range s.donations {
			if d.ExternalID == params.ExternalID {
				return d, false, nil
			}
		}
	}

	d := domain.Donation{
		ID:          uuid.New(),
		MemberID:    params.MemberID,
		AmountCents: params.AmountCents,
		Currency:    params.Currency,
		Campaign:    params.Campaign,
		Note:        params.Note,
		Method:      params.Method,
		ExternalID:  params.ExternalID,
		DonatedAt:   params.DonatedAt,
		CreatedAt:   time.Now(),
	}
	s.donations = append(s.donations, d)
	return d, true, nil
}

func (s *memStore) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Donation(nil), s.donations...), nil
}
