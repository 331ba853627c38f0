package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresmastres/or-hayeladim/internal/auth"
	"github.com/tresmastres/or-hayeladim/internal/domain"
)

func newUserService(store *memStore) *UserService {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewUserService(store, tokens, nil, testLogger())
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	user, err := svc.Register(context.Background(), "Admin@Example.org", "correct horse battery", true)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", user.Email)
	assert.True(t, user.IsAdmin)

	result, err := svc.Login(context.Background(), "admin@example.org", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	// The issued token verifies and carries the identity.
	tokens := auth.NewTokenService("test-secret", time.Hour)
	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	_, err := svc.Register(context.Background(), "a@b.org", "short", false)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	_, err := svc.Register(context.Background(), "a@b.org", "long enough password", false)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@b.org", "another password here", false)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	_, err := svc.Register(context.Background(), "a@b.org", "long enough password", false)
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error code.
	_, err = svc.Login(context.Background(), "nobody@b.org", "long enough password")
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))

	_, err = svc.Login(context.Background(), "a@b.org", "wrong password entirely")
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestDonationService_Record(t *testing.T) {
	store := newMemStore()
	svc := NewDonationService(store, nil, testLogger())

	_, err := svc.Record(context.Background(), domain.CreateDonationParams{
		AmountCents: 0, Method: MethodCash,
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	donation, err := svc.Record(context.Background(), domain.CreateDonationParams{
		AmountCents: 2500, Method: MethodCash, Campaign: "general",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", donation.Currency)
	assert.False(t, donation.DonatedAt.IsZero())

	// External ID replays return the original row.
	first, err := svc.Record(context.Background(), domain.CreateDonationParams{
		AmountCents: 1000, Method: MethodStripe, ExternalID: "pi_d1",
	})
	require.NoError(t, err)
	replay, err := svc.Record(context.Background(), domain.CreateDonationParams{
		AmountCents: 1000, Method: MethodStripe, ExternalID: "pi_d1",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)

	donations, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, donations, 2)
}
