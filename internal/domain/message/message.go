package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid message data")
	// ErrMessagingLocked is returned while no unlocked transaction exists
	// between the two parties for the listing.
	ErrMessagingLocked = errors.New("messaging requires a completed payment for this listing")
)

type Message struct {
	ID        string    `json:"id" bson:"_id"`
	Sender    string    `json:"sender" bson:"sender"`
	Recipient string    `json:"recipient" bson:"recipient"`
	ListingID string    `json:"listingId" bson:"listing_id"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	IsRead    bool      `json:"isRead" bson:"is_read"`
}

func New(sender, recipient, listingID, content string, now time.Time) (*Message, error) {
	if sender == "" || recipient == "" || listingID == "" {
		return nil, fmt.Errorf("%w: sender, recipient and listing are required", ErrInvalidInput)
	}
	if sender == recipient {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrInvalidInput)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	return &Message{
		ID:        "msg-" + uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		ListingID: listingID,
		Content:   content,
		Timestamp: now,
	}, nil
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	FindForUser(ctx context.Context, user string) ([]*Message, error)
	// FindByListingAndParties returns the conversation between the two users
	// about one listing, oldest first.
	FindByListingAndParties(ctx context.Context, listingID, a, b string) ([]*Message, error)
	MarkRead(ctx context.Context, id, recipient string) error
}
