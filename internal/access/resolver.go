package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

// IdentifierKind selects the lookup path for Resolve.
type IdentifierKind int

const (
	KindEventID IdentifierKind = iota
	KindStandardCode
	KindBoothCode
)

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up an active event by access code or id.
//
// The booth path filters on access mode inside the query: a standard-mode
// event sharing the same literal code is not a match. The standard path
// does not filter — resolving a booth event through it succeeds, and the
// caller routes the attempt to the booth flow (a mode mismatch is a routing
// signal, not a resolution failure).
func (r *Resolver) Resolve(ctx context.Context, identifier string, kind IdentifierKind) (*models.Event, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		event *models.Event
		err   error
	)
	switch kind {
	case KindEventID:
		id, parseErr := uuid.Parse(identifier)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %q is not an event id", ErrEventNotFound, identifier)
		}
		event, err = r.store.FindEventByID(ctx, id)
	case KindStandardCode:
		event, err = r.store.FindEventByCode(ctx, identifier, nil)
	case KindBoothCode:
		mode := models.AccessModeEmailOnly
		event, err = r.store.FindEventByCode(ctx, identifier, &mode)
	default:
		return nil, fmt.Errorf("unknown identifier kind %d", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving event %q: %w", identifier, err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: no active event matches %q", ErrEventNotFound, identifier)
	}
	return event, nil
}
