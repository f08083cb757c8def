package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrInvalidProfile  = errors.New("invalid profile data")
)

// Profile is the marketplace-facing identity of a principal. The contact
// fields are only revealed to a buyer once their transaction has cleared
// payment; that gating is derived in the transaction package.
type Profile struct {
	UserID      string    `json:"userId" bson:"_id"`
	DisplayName string    `json:"displayName" bson:"display_name"`
	Email       string    `json:"email" bson:"email"`
	Address     string    `json:"address" bson:"address"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

func (p *Profile) Validate() error {
	if p.UserID == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return errors.New("display name is required")
	}
	return nil
}

// ContactDetails is the gated subset of a profile.
type ContactDetails struct {
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (p *Profile) Contact() ContactDetails {
	return ContactDetails{Email: p.Email, Address: p.Address}
}

// PublicView strips the gated contact fields.
type PublicView struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (p *Profile) Public() PublicView {
	return PublicView{UserID: p.UserID, DisplayName: p.DisplayName}
}

type Repository interface {
	Save(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, userID string) (*Profile, error)
}
