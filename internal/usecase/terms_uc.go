package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

type TermsUsecase struct {
	repo   terms.Repository
	logger logger.Logger
}

func NewTermsUsecase(repo terms.Repository, log logger.Logger) *TermsUsecase {
	return &TermsUsecase{repo: repo, logger: log}
}

// Current returns the terms version in force.
func (uc *TermsUsecase) Current(ctx context.Context) (*terms.TermsAndConditions, error) {
	return uc.repo.Current(ctx)
}

// Publish makes a new terms version current. Admin-only at the port layer.
// Every user must re-accept before their next gated action.
func (uc *TermsUsecase) Publish(ctx context.Context, version, content string) (*terms.TermsAndConditions, error) {
	version = strings.TrimSpace(version)
	if version == "" || strings.TrimSpace(content) == "" {
		return nil, errors.New("terms version and content are required")
	}
	t := &terms.TermsAndConditions{
		Version:       version,
		Content:       content,
		EffectiveDate: time.Now().UTC(),
	}
	if err := uc.repo.Publish(ctx, t); err != nil {
		uc.logger.Errorf("Publish: failed to store terms %s: %v", version, err)
		return nil, err
	}
	uc.logger.Infof("terms published: version=%s", version)
	return t, nil
}

// Accept records the caller's acceptance of the current version. Accepting
// twice is a no-op.
func (uc *TermsUsecase) Accept(ctx context.Context, userID string) (*terms.Acceptance, error) {
	current, err := uc.repo.Current(ctx)
	if err != nil {
		return nil, err
	}
	a := &terms.Acceptance{
		User:       userID,
		Version:    current.Version,
		AcceptedAt: time.Now().UTC(),
	}
	if err := uc.repo.RecordAcceptance(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// HasAcceptedCurrent reports whether the user has accepted exactly the
// current version. Acceptance of a superseded version does not count.
func (uc *TermsUsecase) HasAcceptedCurrent(ctx context.Context, userID string) (bool, error) {
	current, err := uc.repo.Current(ctx)
	if errors.Is(err, terms.ErrNoTerms) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return uc.repo.HasAccepted(ctx, userID, current.Version)
}
