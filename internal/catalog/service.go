// Package catalog provides HTTP handlers and business logic for the channel catalog.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/vindheg/dth-render/internal/domain"
)

// Catalog errors.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrInvalidPrice    = errors.New("price must be non-negative")
)

// Repository defines the interface for catalog data operations.
type Repository interface {
	CreateChannel(ctx context.Context, channel *domain.Channel) error
	GetChannelByID(ctx context.Context, id int64) (*domain.Channel, error)
	ListChannels(ctx context.Context) ([]domain.Channel, error)
}

// Service implements catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddChannel creates a new channel. Channels are immutable once created.
func (s *Service) AddChannel(ctx context.Context, name string, price int64) (*domain.Channel, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	channel := &domain.Channel{
		Name:  strings.TrimSpace(name),
		Price: price,
	}

	if err := s.repo.CreateChannel(ctx, channel); err != nil {
		return nil, err
	}

	return channel, nil
}

// GetChannelByID returns a channel by its ID.
func (s *Service) GetChannelByID(ctx context.Context, id int64) (*domain.Channel, error) {
	return s.repo.GetChannelByID(ctx, id)
}

// ListChannels returns all channels in id order.
func (s *Service) ListChannels(ctx context.Context) ([]domain.Channel, error) {
	return s.repo.ListChannels(ctx)
}
