package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

func newTestOrchestrator(store Store, now time.Time) *Orchestrator {
	o := NewOrchestrator(store, zerolog.Nop())
	o.provisioner.now = fixedClock(now)
	return o
}

func joinReason(t *testing.T, err error) FailReason {
	t.Helper()
	var joinErr *JoinError
	require.ErrorAs(t, err, &joinErr)
	return joinErr.Reason
}

func TestJoin_StandardEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)
	event := &models.Event{ID: uuid.New(), Name: "Spring Tasting", AccessCode: "WINE25", AccessMode: models.AccessModeStandard, IsActive: true}

	created := &models.Profile{}
	store := new(MockStore)
	store.On("FindEventByCode", ctx, "wine25", (*models.AccessMode)(nil)).Return(event, nil)
	store.On("FindTempProfileByEmail", ctx, "jake@example.com").Return(nil, nil)
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { *created = *args.Get(1).(*models.Profile) }).
		Return(created, nil)

	o := newTestOrchestrator(store, now)
	result, err := o.Join(ctx, JoinInput{Code: "wine25", Email: "Jake@Example.com", Mode: models.AccessModeStandard})
	require.NoError(t, err)

	assert.Equal(t, event.ID, result.Event.ID)
	assert.Equal(t, "jake@example.com", result.Session.Email)
	assert.Equal(t, created.ID, result.Session.UserID)
	assert.Equal(t, models.AccessModeStandard, result.Session.AccessType)
	assert.True(t, result.Session.IsTemp)
	require.NotNil(t, result.Session.ExpiresAt)
	assert.Equal(t, now.Add(30*24*time.Hour), *result.Session.ExpiresAt)

	assert.Equal(t, StateJoined, result.Trace[len(result.Trace)-1])
	assert.NotContains(t, result.Trace, StateRoutingToBooth)
}

func TestJoin_BoothRedirect(t *testing.T) {
	// A standard-code attempt that resolves an email-only event reroutes
	// to the booth flow reusing the resolved event: exactly one event
	// lookup, booth-length identity window.
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)
	event := &models.Event{ID: uuid.New(), Name: "Expo Booth", AccessCode: "EXPO1", AccessMode: models.AccessModeEmailOnly, IsActive: true}

	created := &models.Profile{}
	store := new(MockStore)
	store.On("FindEventByCode", ctx, "EXPO1", (*models.AccessMode)(nil)).Return(event, nil)
	store.On("FindTempProfileByEmail", ctx, "a@b.com").Return(nil, nil)
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { *created = *args.Get(1).(*models.Profile) }).
		Return(created, nil)

	o := newTestOrchestrator(store, now)
	result, err := o.Join(ctx, JoinInput{Code: "EXPO1", Email: "a@b.com", Mode: models.AccessModeStandard})
	require.NoError(t, err)

	assert.Contains(t, result.Trace, StateRoutingToBooth)
	assert.Equal(t, models.AccessModeEmailOnly, result.Session.AccessType)
	require.NotNil(t, result.Session.ExpiresAt)
	assert.Equal(t, now.Add(7*24*time.Hour), *result.Session.ExpiresAt)
	store.AssertNumberOfCalls(t, "FindEventByCode", 1)
	store.AssertNumberOfCalls(t, "FindEventByID", 0)
}

func TestJoin_KioskEntrySkipsCode(t *testing.T) {
	// Booth events reached through a direct event id go straight from
	// resolution to identity provisioning; no code is required.
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)
	event := &models.Event{ID: uuid.New(), AccessCode: "EXPO1", AccessMode: models.AccessModeEmailOnly, IsActive: true}

	created := &models.Profile{}
	store := new(MockStore)
	store.On("FindEventByID", ctx, event.ID).Return(event, nil)
	store.On("FindTempProfileByEmail", ctx, "walkup@fair.org").Return(nil, nil)
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { *created = *args.Get(1).(*models.Profile) }).
		Return(created, nil)

	o := newTestOrchestrator(store, now)
	result, err := o.Join(ctx, JoinInput{EventID: event.ID.String(), Email: "walkup@fair.org", Mode: models.AccessModeEmailOnly})
	require.NoError(t, err)

	assert.NotContains(t, result.Trace, StateRoutingToBooth)
	assert.Equal(t, models.AccessModeEmailOnly, result.Session.AccessType)
	assert.Equal(t, now.Add(7*24*time.Hour), *result.Session.ExpiresAt)
}

func TestJoin_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		input  JoinInput
		reason FailReason
	}{
		{
			name:   "missing code",
			input:  JoinInput{Email: "a@b.com", Mode: models.AccessModeStandard},
			reason: ReasonMissingCode,
		},
		{
			name:   "missing email",
			input:  JoinInput{Code: "WINE25", Mode: models.AccessModeStandard},
			reason: ReasonMissingEmail,
		},
		{
			name:   "malformed email",
			input:  JoinInput{Code: "WINE25", Email: "nope", Mode: models.AccessModeStandard},
			reason: ReasonInvalidEmail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			o := NewOrchestrator(store, zerolog.Nop())

			_, err := o.Join(context.Background(), tt.input)
			assert.Equal(t, tt.reason, joinReason(t, err))
			// Input-shape checks run before any I/O.
			store.AssertNumberOfCalls(t, "FindEventByCode", 0)
			store.AssertNumberOfCalls(t, "FindTempProfileByEmail", 0)
		})
	}
}

func TestJoin_EventNotFound(t *testing.T) {
	ctx := context.Background()

	store := new(MockStore)
	store.On("FindEventByCode", ctx, "ZZZZZZ", (*models.AccessMode)(nil)).Return(nil, nil)

	o := NewOrchestrator(store, zerolog.Nop())
	_, err := o.Join(ctx, JoinInput{Code: "ZZZZZZ", Email: "a@b.com", Mode: models.AccessModeStandard})
	assert.Equal(t, ReasonEventNotFound, joinReason(t, err))
}

func TestJoin_StoreUnavailable(t *testing.T) {
	ctx := context.Background()

	store := new(MockStore)
	store.On("FindEventByCode", ctx, "WINE25", (*models.AccessMode)(nil)).
		Return(nil, errors.New("connection refused"))

	o := NewOrchestrator(store, zerolog.Nop())
	_, err := o.Join(ctx, JoinInput{Code: "WINE25", Email: "a@b.com", Mode: models.AccessModeStandard})
	assert.Equal(t, ReasonStoreUnavailable, joinReason(t, err))
}

func TestJoin_ProfileCreateConflict(t *testing.T) {
	ctx := context.Background()
	event := &models.Event{ID: uuid.New(), AccessCode: "WINE25", AccessMode: models.AccessModeStandard, IsActive: true}

	store := new(MockStore)
	store.On("FindEventByCode", ctx, "WINE25", (*models.AccessMode)(nil)).Return(event, nil)
	store.On("FindTempProfileByEmail", ctx, "racer@y.com").Return(nil, nil)
	store.On("CreateTempProfile", ctx, mock.AnythingOfType("*models.Profile")).
		Return(nil, ErrConflict)

	o := NewOrchestrator(store, zerolog.Nop())
	_, err := o.Join(ctx, JoinInput{Code: "WINE25", Email: "racer@y.com", Mode: models.AccessModeStandard})
	assert.Equal(t, ReasonProfileCreate, joinReason(t, err))
}

func TestBuildSession_MirrorsIdentityExpiry(t *testing.T) {
	expires := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	event := &models.Event{ID: uuid.New()}
	identity := &models.Profile{ID: uuid.New(), DisplayName: "jake", Email: "jake@example.com", IsTemporary: true, ExpiresAt: &expires}

	session := BuildSession(event, identity, models.AccessModeStandard)

	assert.Equal(t, identity.ID, session.UserID)
	assert.Equal(t, "jake", session.DisplayName)
	assert.Equal(t, "jake@example.com", session.Email)
	assert.True(t, session.IsTemp)
	assert.Equal(t, models.AccessModeStandard, session.AccessType)
	assert.Equal(t, event.ID, session.EventID)
	assert.Equal(t, &expires, session.ExpiresAt)
}
