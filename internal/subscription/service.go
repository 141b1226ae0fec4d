// Package subscription provides the account-balance and
// subscription-consistency core of the portal.
package subscription

import (
	"context"
	"errors"

	"github.com/vindheg/dth-render/internal/catalog"
	"github.com/vindheg/dth-render/internal/domain"
	"github.com/vindheg/dth-render/internal/pkg/metrics"
)

// Subscription errors.
var (
	ErrAlreadySubscribed    = errors.New("already subscribed to this channel")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrPriceMismatch        = errors.New("price does not match the channel's current price")
)

// Repository defines the interface for subscription data operations.
//
// CreateSubscriptionWithDebit must perform the subscription insert and
// the balance debit atomically, and must debit conditionally (only when
// the remaining balance covers the price). This is what keeps a balance
// from ever going negative under concurrent subscribes.
type Repository interface {
	SubscriptionExists(ctx context.Context, userID, channelID int64) (bool, error)
	CreateSubscriptionWithDebit(ctx context.Context, userID, channelID, price int64) (newBalance int64, err error)
	DeleteSubscription(ctx context.Context, userID, channelID int64) error
	ListUserChannels(ctx context.Context, userID int64) ([]domain.Channel, error)
	GetBalance(ctx context.Context, userID int64) (*domain.Balance, error)
}

// ChannelProvider resolves channels from the catalog.
type ChannelProvider interface {
	GetChannelByID(ctx context.Context, id int64) (*domain.Channel, error)
}

// Service implements the subscription core. It is stateless; all shared
// state lives in the store.
type Service struct {
	repo     Repository
	channels ChannelProvider
}

// NewService creates a new subscription service.
func NewService(repo Repository, channels ChannelProvider) *Service {
	return &Service{
		repo:     repo,
		channels: channels,
	}
}

// Subscribe subscribes an account to a channel and debits its price.
//
// The caller-supplied price is re-validated against the catalog's
// current price; a mismatch is rejected rather than trusted. The insert
// and the debit happen in a single transaction with a conditional
// update, so two concurrent subscribes can never drive the balance
// negative: the slower one fails with ErrInsufficientFunds.
func (s *Service) Subscribe(ctx context.Context, userID, channelID, price int64) (int64, error) {
	newBalance, err := s.subscribe(ctx, userID, channelID, price)
	metrics.RecordSubscriptionOp("subscribe", opResult(err))
	return newBalance, err
}

func (s *Service) subscribe(ctx context.Context, userID, channelID, price int64) (int64, error) {
	channel, err := s.channels.GetChannelByID(ctx, channelID)
	if err != nil {
		return 0, err
	}
	if channel.Price != price {
		return 0, ErrPriceMismatch
	}

	exists, err := s.repo.SubscriptionExists(ctx, userID, channelID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadySubscribed
	}

	// Surfaces a missing account as 404 before the debit path.
	if _, err := s.repo.GetBalance(ctx, userID); err != nil {
		return 0, err
	}

	return s.repo.CreateSubscriptionWithDebit(ctx, userID, channelID, channel.Price)
}

// Unsubscribe removes a subscription. No refund occurs; unsubscribing
// is non-refundable.
func (s *Service) Unsubscribe(ctx context.Context, userID, channelID int64) error {
	err := s.repo.DeleteSubscription(ctx, userID, channelID)
	metrics.RecordSubscriptionOp("unsubscribe", opResult(err))
	return err
}

// ListSubscriptions returns the channels the account currently holds,
// in subscription insertion order.
func (s *Service) ListSubscriptions(ctx context.Context, userID int64) ([]domain.Channel, error) {
	return s.repo.ListUserChannels(ctx, userID)
}

// GetBalance returns the account's balance projection.
func (s *Service) GetBalance(ctx context.Context, userID int64) (*domain.Balance, error) {
	return s.repo.GetBalance(ctx, userID)
}

func opResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrAlreadySubscribed):
		return "already_subscribed"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrSubscriptionNotFound),
		errors.Is(err, catalog.ErrChannelNotFound):
		return "not_found"
	default:
		return "error"
	}
}
