package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestProvision_RejectsMalformedEmailBeforeStoreCall(t *testing.T) {
	store := new(MockStore)
	p := NewProvisioner(store)

	tests := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"no at sign", "jake.example.com"},
		{"no dot after at", "jake@example"},
		{"spaces", "jake smith@example.com"},
		{"bare domain", "@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Provision(context.Background(), tt.email, 30)
			assert.ErrorIs(t, err, ErrInvalidEmail)
		})
	}
	store.AssertNumberOfCalls(t, "FindTempProfileByEmail", 0)
	store.AssertNumberOfCalls(t, "CreateTempProfile", 0)
}

func TestProvision_CreatesNewProfile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)

	created := &models.Profile{}
	store := new(MockStore)
	store.On("FindTempProfileByEmail", ctx, "jake@example.com").Return(nil, nil)
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { *created = *args.Get(1).(*models.Profile) }).
		Return(created, nil)

	p := NewProvisioner(store)
	p.now = fixedClock(now)

	profile, err := p.Provision(ctx, "  Jake@Example.com ", 30)
	require.NoError(t, err)

	assert.Equal(t, "jake@example.com", profile.Email)
	assert.Equal(t, "jake", profile.DisplayName)
	assert.True(t, profile.IsTemporary)
	assert.False(t, profile.IsAdmin)
	require.NotNil(t, profile.ExpiresAt)
	assert.Equal(t, now.Add(30*24*time.Hour), *profile.ExpiresAt)
}

func TestProvision_IdempotentByEmail(t *testing.T) {
	// A second call for the same email finds the existing profile and
	// performs no second create.
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)

	created := &models.Profile{}
	store := new(MockStore)
	store.On("FindTempProfileByEmail", ctx, "new@guest.org").Return(nil, nil).Once()
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { *created = *args.Get(1).(*models.Profile) }).
		Return(created, nil).Once()
	store.On("FindTempProfileByEmail", ctx, "new@guest.org").Return(created, nil)

	p := NewProvisioner(store)
	p.now = fixedClock(now)

	first, err := p.Provision(ctx, "new@guest.org", 30)
	require.NoError(t, err)
	second, err := p.Provision(ctx, "new@guest.org", 30)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	store.AssertNumberOfCalls(t, "CreateTempProfile", 1)
}

func TestProvision_RenewsNearExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)
	soon := now.Add(2 * time.Hour)
	existing := &models.Profile{ID: uuid.New(), Email: "x@y.com", IsTemporary: true, ExpiresAt: &soon}

	renewedAt := now.Add(30 * 24 * time.Hour)
	renewed := &models.Profile{ID: existing.ID, Email: existing.Email, IsTemporary: true, ExpiresAt: &renewedAt}

	store := new(MockStore)
	store.On("FindTempProfileByEmail", ctx, "x@y.com").Return(existing, nil)
	store.On("UpdateProfileExpiration", ctx, existing.ID, renewedAt).Return(renewed, nil)

	p := NewProvisioner(store)
	p.now = fixedClock(now)

	profile, err := p.Provision(ctx, "x@y.com", 30)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, profile.ID)
	assert.Equal(t, renewedAt, *profile.ExpiresAt)
	store.AssertExpectations(t)
}

func TestProvision_NoRenewalWhenFarFromExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)
	later := now.Add(10 * 24 * time.Hour)
	existing := &models.Profile{ID: uuid.New(), Email: "x@y.com", IsTemporary: true, ExpiresAt: &later}

	store := new(MockStore)
	store.On("FindTempProfileByEmail", ctx, "x@y.com").Return(existing, nil)

	p := NewProvisioner(store)
	p.now = fixedClock(now)

	profile, err := p.Provision(ctx, "x@y.com", 30)
	require.NoError(t, err)
	assert.Equal(t, later, *profile.ExpiresAt)
	store.AssertNumberOfCalls(t, "UpdateProfileExpiration", 0)
}

func TestProvision_RenewalFailureFallsBackToExistingRecord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)
	soon := now.Add(1 * time.Hour)
	existing := &models.Profile{ID: uuid.New(), Email: "x@y.com", IsTemporary: true, ExpiresAt: &soon}

	store := new(MockStore)
	store.On("FindTempProfileByEmail", ctx, "x@y.com").Return(existing, nil)
	store.On("UpdateProfileExpiration", ctx, existing.ID, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("write timeout"))

	p := NewProvisioner(store)
	p.now = fixedClock(now)

	profile, err := p.Provision(ctx, "x@y.com", 30)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, profile.ID)
	assert.Equal(t, soon, *profile.ExpiresAt)
}

func TestProvision_CreateConflictSurfaces(t *testing.T) {
	ctx := context.Background()

	store := new(MockStore)
	store.On("FindTempProfileByEmail", ctx, "racer@y.com").Return(nil, nil)
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Return(nil, ErrConflict)

	p := NewProvisioner(store)

	_, err := p.Provision(ctx, "racer@y.com", 7)
	assert.ErrorIs(t, err, ErrConflict)
}
