package access

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

// State is one step of the join flow. The flow is linear apart from the
// booth reroute, and every state can fall through to StateFailed.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateResolvingEvent
	StateRoutingToBooth
	StateProvisioningIdentity
	StateBuildingSession
	StateJoined
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateResolvingEvent:
		return "resolving_event"
	case StateRoutingToBooth:
		return "routing_to_booth"
	case StateProvisioningIdentity:
		return "provisioning_identity"
	case StateBuildingSession:
		return "building_session"
	case StateJoined:
		return "joined"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Guest identity windows per access path.
const (
	standardWindowDays = 30
	boothWindowDays    = 7
)

// JoinInput is the raw participant input for one join attempt. EventID set
// means kiosk entry: the event is resolved by id and the code check is
// skipped entirely.
type JoinInput struct {
	Code    string
	Email   string
	Mode    models.AccessMode
	EventID string
}

// JoinResult is emitted on success. Trace records every state the attempt
// visited, in order, ending in StateJoined.
type JoinResult struct {
	Event   *models.Event
	Session Session
	Trace   []State
}

// Orchestrator drives a join attempt end to end. Each call to Join is one
// independent attempt; a failed attempt is retried by the caller from
// scratch with corrected input.
type Orchestrator struct {
	resolver    *Resolver
	provisioner *Provisioner
	log         zerolog.Logger
}

func NewOrchestrator(store Store, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		resolver:    NewResolver(store),
		provisioner: NewProvisioner(store),
		log:         log,
	}
}

// Join runs the state machine:
//
//	Idle -> Validating -> ResolvingEvent -> {RoutingToBooth | ProvisioningIdentity}
//	     -> BuildingSession -> Joined
//
// On failure it returns (nil, *JoinError); no other error type escapes.
func (o *Orchestrator) Join(ctx context.Context, input JoinInput) (*JoinResult, error) {
	trace := []State{StateIdle, StateValidating}

	if err := validateInput(input); err != nil {
		return nil, o.fail(trace, err)
	}

	trace = append(trace, StateResolvingEvent)
	identifier, kind := identifierFor(input)
	event, err := o.resolver.Resolve(ctx, identifier, kind)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, o.fail(trace, failure(ReasonEventNotFound, "Event not found. Check the code and try again.", err))
		}
		return nil, o.fail(trace, failure(ReasonStoreUnavailable, "Could not reach the event service. Try again shortly.", err))
	}

	// The path taken decides the guest identity window, not the input
	// mode: a standard-code attempt against an email-only event reroutes
	// to the booth flow with the already-resolved event.
	mode := input.Mode
	windowDays := standardWindowDays
	if event.AccessMode == models.AccessModeEmailOnly {
		if kind == KindStandardCode {
			trace = append(trace, StateRoutingToBooth)
		}
		mode = models.AccessModeEmailOnly
		windowDays = boothWindowDays
	}

	trace = append(trace, StateProvisioningIdentity)
	identity, err := o.provisioner.Provision(ctx, input.Email, windowDays)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			return nil, o.fail(trace, failure(ReasonInvalidEmail, "Please enter a valid email address.", err))
		case errors.Is(err, ErrConflict):
			return nil, o.fail(trace, failure(ReasonProfileCreate, "An account with this email already exists. Try a different email.", err))
		default:
			return nil, o.fail(trace, failure(ReasonProfileCreate, "Could not set up your guest profile.", err))
		}
	}

	trace = append(trace, StateBuildingSession)
	session := BuildSession(event, identity, mode)

	trace = append(trace, StateJoined)
	o.log.Info().
		Str("event_id", event.ID.String()).
		Str("access_mode", string(mode)).
		Str("user_id", identity.ID.String()).
		Msg("guest joined event")

	return &JoinResult{Event: event, Session: session, Trace: trace}, nil
}

func (o *Orchestrator) fail(trace []State, jerr *JoinError) *JoinError {
	trace = append(trace, StateFailed)
	o.log.Warn().
		Str("reason", string(jerr.Reason)).
		Str("last_state", trace[len(trace)-2].String()).
		Err(jerr.Err).
		Msg("join attempt failed")
	return jerr
}

func validateInput(input JoinInput) *JoinError {
	if input.EventID == "" && input.Code == "" {
		return failure(ReasonMissingCode, "Please enter your event code.", nil)
	}
	if input.Email == "" {
		return failure(ReasonMissingEmail, "Please enter your email address.", nil)
	}
	if !ValidEmail(input.Email) {
		return failure(ReasonInvalidEmail, "Please enter a valid email address.", nil)
	}
	return nil
}

func identifierFor(input JoinInput) (string, IdentifierKind) {
	if input.EventID != "" {
		return input.EventID, KindEventID
	}
	if input.Mode == models.AccessModeEmailOnly {
		return input.Code, KindBoothCode
	}
	return input.Code, KindStandardCode
}
