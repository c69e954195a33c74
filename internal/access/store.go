package access

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

// Store is the persistence collaborator the join flow depends on. It is
// injected explicitly; there is no ambient database handle in this package.
// Find methods return (nil, nil) when no matching row exists and reserve
// errors for store failures.
type Store interface {
	// FindEventByCode matches access codes case-insensitively against
	// active events only. A non-nil modeFilter restricts the match to
	// events with that access mode.
	FindEventByCode(ctx context.Context, code string, modeFilter *models.AccessMode) (*models.Event, error)
	FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindTempProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	// CreateTempProfile returns an error wrapping ErrConflict when the
	// normalized email already has a profile row.
	CreateTempProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateProfileExpiration(ctx context.Context, id uuid.UUID, expiresAt time.Time) (*models.Profile, error)
}
