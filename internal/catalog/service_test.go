package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vindheg/dth-render/internal/domain"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	channels []domain.Channel
	nextID   int64
}

func (m *mockRepository) CreateChannel(_ context.Context, channel *domain.Channel) error {
	m.nextID++
	channel.ID = m.nextID
	m.channels = append(m.channels, *channel)
	return nil
}

func (m *mockRepository) GetChannelByID(_ context.Context, id int64) (*domain.Channel, error) {
	for i := range m.channels {
		if m.channels[i].ID == id {
			return &m.channels[i], nil
		}
	}
	return nil, ErrChannelNotFound
}

func (m *mockRepository) ListChannels(_ context.Context) ([]domain.Channel, error) {
	return m.channels, nil
}

func TestAddChannel(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	channel, err := service.AddChannel(context.Background(), "  Sports One ", 300)
	require.NoError(t, err)

	assert.Equal(t, int64(1), channel.ID)
	assert.Equal(t, "Sports One", channel.Name, "name should be trimmed")
	assert.Equal(t, int64(300), channel.Price)
}

func TestAddChannel_NegativePrice(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	_, err := service.AddChannel(context.Background(), "Sports One", -1)
	require.ErrorIs(t, err, ErrInvalidPrice)
	assert.Empty(t, repo.channels)
}

func TestGetChannelByID_NotFound(t *testing.T) {
	service := NewService(&mockRepository{})

	_, err := service.GetChannelByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrChannelNotFound)
}
