// Package postgres provides the PostgreSQL implementation of the catalog repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vindheg/dth-render/internal/catalog"
	"github.com/vindheg/dth-render/internal/domain"
)

// Repository implements catalog.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateChannel inserts a new channel row.
func (r *Repository) CreateChannel(ctx context.Context, channel *domain.Channel) error {
	query := `
		INSERT INTO channels (name, price)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, channel.Name, channel.Price).
		Scan(&channel.ID, &channel.CreatedAt)
	if err != nil {
		return fmt.Errorf("create channel: %w", err)
	}
	return nil
}

// GetChannelByID retrieves a channel by its ID.
func (r *Repository) GetChannelByID(ctx context.Context, id int64) (*domain.Channel, error) {
	query := `
		SELECT id, name, price, created_at
		FROM channels
		WHERE id = $1
	`
	var channel domain.Channel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&channel.ID,
		&channel.Name,
		&channel.Price,
		&channel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrChannelNotFound
		}
		return nil, fmt.Errorf("get channel by id: %w", err)
	}
	return &channel, nil
}

// ListChannels retrieves all channels ordered by id.
func (r *Repository) ListChannels(ctx context.Context) ([]domain.Channel, error) {
	query := `
		SELECT id, name, price, created_at
		FROM channels
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	channels := make([]domain.Channel, 0)
	for rows.Next() {
		var channel domain.Channel
		if err := rows.Scan(&channel.ID, &channel.Name, &channel.Price, &channel.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channels: %w", err)
	}

	return channels, nil
}
