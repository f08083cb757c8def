package terms

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotAccepted blocks listing creation and checkout until the caller
	// accepts the current terms version.
	ErrNotAccepted = errors.New("current terms and conditions not accepted")
	ErrNoTerms     = errors.New("no terms and conditions published")
)

// TermsAndConditions is one published revision of the platform terms.
// Publishing a new version invalidates every prior acceptance for new actions.
type TermsAndConditions struct {
	Version       string    `json:"version" bson:"_id"`
	Content       string    `json:"content" bson:"content"`
	EffectiveDate time.Time `json:"effectiveDate" bson:"effective_date"`
}

// Acceptance records that a user accepted exactly one version. Append-only.
type Acceptance struct {
	User       string    `json:"user" bson:"user"`
	Version    string    `json:"version" bson:"version"`
	AcceptedAt time.Time `json:"acceptedAt" bson:"accepted_at"`
}

type Repository interface {
	// Current returns the published version in force, or ErrNoTerms.
	Current(ctx context.Context) (*TermsAndConditions, error)
	// Publish makes a new version current.
	Publish(ctx context.Context, t *TermsAndConditions) error
	// RecordAcceptance is idempotent: accepting an already-accepted version
	// is a no-op, not an error.
	RecordAcceptance(ctx context.Context, a *Acceptance) error
	// HasAccepted reports whether an acceptance exists for exactly version.
	HasAccepted(ctx context.Context, user, version string) (bool, error)
}
