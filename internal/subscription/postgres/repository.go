// Package postgres provides the PostgreSQL implementation of the subscription repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vindheg/dth-render/internal/domain"
	"github.com/vindheg/dth-render/internal/subscription"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Repository implements subscription.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SubscriptionExists reports whether the (user, channel) pair holds a subscription.
func (r *Repository) SubscriptionExists(ctx context.Context, userID, channelID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_channels
			WHERE user_id = $1 AND channel_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return exists, nil
}

// CreateSubscriptionWithDebit inserts the subscription row and debits
// the channel price in one transaction. The debit is conditional on the
// balance covering the price; zero rows updated rolls everything back
// and surfaces ErrInsufficientFunds, so the balance can never go
// negative regardless of concurrent subscribes.
func (r *Repository) CreateSubscriptionWithDebit(ctx context.Context, userID, channelID, price int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insert := `
		INSERT INTO user_channels (user_id, channel_id)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, insert, userID, channelID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return 0, subscription.ErrAlreadySubscribed
			case foreignKeyViolation:
				return 0, subscription.ErrAccountNotFound
			}
		}
		return 0, fmt.Errorf("insert subscription: %w", err)
	}

	debit := `
		UPDATE users
		SET balance = balance - $1, updated_at = now()
		WHERE id = $2 AND balance >= $1
		RETURNING balance
	`
	var newBalance int64
	if err := tx.QueryRow(ctx, debit, price, userID).Scan(&newBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, subscription.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("debit balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	return newBalance, nil
}

// DeleteSubscription removes the subscription row. Single statement,
// no transaction needed.
func (r *Repository) DeleteSubscription(ctx context.Context, userID, channelID int64) error {
	query := `
		DELETE FROM user_channels
		WHERE user_id = $1 AND channel_id = $2
	`
	tag, err := r.db.Exec(ctx, query, userID, channelID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

// ListUserChannels returns the channels the account is subscribed to,
// in subscription insertion order.
func (r *Repository) ListUserChannels(ctx context.Context, userID int64) ([]domain.Channel, error) {
	query := `
		SELECT c.id, c.name, c.price, c.created_at
		FROM channels c
		JOIN user_channels uc ON c.id = uc.channel_id
		WHERE uc.user_id = $1
		ORDER BY uc.created_at, c.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user channels: %w", err)
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
		return nil, fmt.Errorf("iterate user channels: %w", err)
	}

	return channels, nil
}

// GetBalance returns the balance projection for the account.
func (r *Repository) GetBalance(ctx context.Context, userID int64) (*domain.Balance, error) {
	query := `
		SELECT balance, recharge_due
		FROM users
		WHERE id = $1
	`
	var (
		balance     int64
		rechargeDue time.Time
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance, &rechargeDue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscription.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}

	return &domain.Balance{
		Balance:     balance,
		RechargeDue: rechargeDue.Format("2006-01-02"),
	}, nil
}
