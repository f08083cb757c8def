package payment

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured blocks checkout until an admin has stored the payment
	// processor credentials. Surfaced distinctly from generic failures.
	ErrNotConfigured = errors.New("payment processing is not configured")
	ErrInvalidConfig = errors.New("invalid payment configuration")
)

// StripeConfiguration is the admin-managed processor credential set.
type StripeConfiguration struct {
	SecretKey      string `json:"secretKey" bson:"secret_key"`
	PublishableKey string `json:"publishableKey" bson:"publishable_key"`
	WebhookSecret  string `json:"webhookSecret,omitempty" bson:"webhook_secret,omitempty"`
}

func (c *StripeConfiguration) Validate() error {
	if c.SecretKey == "" || c.PublishableKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// ConfigRepository persists the single processor configuration.
type ConfigRepository interface {
	Get(ctx context.Context) (*StripeConfiguration, error) // ErrNotConfigured when unset
	Set(ctx context.Context, c *StripeConfiguration) error
	IsConfigured(ctx context.Context) (bool, error)
}

// CheckoutItem is one line of a checkout session request.
type CheckoutItem struct {
	ListingID  string `json:"listingId"`
	Name       string `json:"name"`
	PricePence int64  `json:"pricePence"`
	Quantity   int64  `json:"quantity"`
}

// CheckoutSession is the redirect handle returned by the processor.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutProvider creates hosted checkout sessions with the processor.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, items []CheckoutItem, successURL, cancelURL string) (*CheckoutSession, error)
}
