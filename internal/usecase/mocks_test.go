package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/message"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/review"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/user"
)

func testTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingRepository) FindByFilter(ctx context.Context, f listing.Filter) ([]*listing.Listing, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*listing.Listing), args.Get(1).(int64), args.Error(2)
}
func (m *MockListingRepository) DistinctSchoolNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}
func (m *MockTransactionRepository) FindByListingAndBuyer(ctx context.Context, listingID, buyer string) (*transaction.Transaction, error) {
	args := m.Called(ctx, listingID, buyer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}
func (m *MockTransactionRepository) FindForUser(ctx context.Context, userID string) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepository) FindBySeller(ctx context.Context, seller string) ([]*review.Review, error) {
	args := m.Called(ctx, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}
func (m *MockReviewRepository) FindByBuyerAndTransaction(ctx context.Context, buyer, transactionID string) (*review.Review, error) {
	args := m.Called(ctx, buyer, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

type MockTermsRepository struct{ mock.Mock }

func (m *MockTermsRepository) Current(ctx context.Context) (*terms.TermsAndConditions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*terms.TermsAndConditions), args.Error(1)
}
func (m *MockTermsRepository) Publish(ctx context.Context, t *terms.TermsAndConditions) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTermsRepository) RecordAcceptance(ctx context.Context, a *terms.Acceptance) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockTermsRepository) HasAccepted(ctx context.Context, userID, version string) (bool, error) {
	args := m.Called(ctx, userID, version)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Save(ctx context.Context, p *user.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepository) FindForUser(ctx context.Context, userID string) ([]*message.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.Message), args.Error(1)
}
func (m *MockMessageRepository) FindByListingAndParties(ctx context.Context, listingID, a, b string) ([]*message.Message, error) {
	args := m.Called(ctx, listingID, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.Message), args.Error(1)
}
func (m *MockMessageRepository) MarkRead(ctx context.Context, id, recipient string) error {
	args := m.Called(ctx, id, recipient)
	return args.Error(0)
}

type MockPaymentConfigRepository struct{ mock.Mock }

func (m *MockPaymentConfigRepository) Get(ctx context.Context) (*payment.StripeConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.StripeConfiguration), args.Error(1)
}
func (m *MockPaymentConfigRepository) Set(ctx context.Context, c *payment.StripeConfiguration) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockPaymentConfigRepository) IsConfigured(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type MockCheckoutProvider struct{ mock.Mock }

func (m *MockCheckoutProvider) CreateCheckoutSession(ctx context.Context, items []payment.CheckoutItem, successURL, cancelURL string) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, items, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, key string, out interface{}) error {
	args := m.Called(ctx, key, out)
	return args.Error(0)
}
func (m *MockCache) Set(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
func (m *MockCache) Invalidate(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	args := m.Called(ctx, originalFileName, data)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStorage) URL(key string) string {
	return m.Called(key).String(0)
}

type MockMailSender struct{ mock.Mock }

func (m *MockMailSender) SendDispatchNotice(toEmail, listingTitle string) error {
	args := m.Called(toEmail, listingTitle)
	return args.Error(0)
}
func (m *MockMailSender) SendReceiptNotice(toEmail, listingTitle string, sellerReceivesPence int64) error {
	args := m.Called(toEmail, listingTitle, sellerReceivesPence)
	return args.Error(0)
}
