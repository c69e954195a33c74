package access

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

// renewalThreshold is how close to expiry an existing guest identity must
// be before a join pushes its expiration forward.
const renewalThreshold = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lower-cases an address; guest identities are
// keyed by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the address has a basic local@domain.tld
// shape. Checked before any store call is made.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(NormalizeEmail(email))
}

// Provisioner finds or creates temporary guest profiles, one per
// normalized email.
type Provisioner struct {
	store Store
	now   func() time.Time
}

func NewProvisioner(store Store) *Provisioner {
	return &Provisioner{store: store, now: time.Now}
}

// Provision returns the active temporary profile for email, creating one
// with an expiration of now + windowDays when none exists. An existing
// profile within 24h of expiring is renewed forward by the same window;
// renewal is best-effort and a failed renewal write returns the existing
// record unchanged rather than failing the join.
func (p *Provisioner) Provision(ctx context.Context, email string, windowDays int) (*models.Profile, error) {
	normalized := NormalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	existing, err := p.store.FindTempProfileByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("looking up profile for %s: %w", normalized, err)
	}

	now := p.now()
	window := time.Duration(windowDays) * 24 * time.Hour

	if existing != nil {
		if existing.ExpiresAt != nil && existing.ExpiresAt.Sub(now) < renewalThreshold {
			renewed, err := p.store.UpdateProfileExpiration(ctx, existing.ID, now.Add(window))
			if err != nil {
				return existing, nil
			}
			return renewed, nil
		}
		return existing, nil
	}

	expires := now.Add(window)
	profile := &models.Profile{
		ID:          uuid.New(),
		Email:       normalized,
		DisplayName: localPart(normalized),
		IsTemporary: true,
		ExpiresAt:   &expires,
		CreatedAt:   now,
	}
	created, err := p.store.CreateTempProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("creating profile for %s: %w", normalized, err)
	}
	return created, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
