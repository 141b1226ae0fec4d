// Package postgres provides the PostgreSQL implementation of the identity repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vindheg/dth-render/internal/domain"
	"github.com/vindheg/dth-render/internal/identity"
)

const uniqueViolation = "23505"

// Repository implements identity.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateAccount inserts a new account row.
func (r *Repository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO users (name, password_hash, balance, recharge_due)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		account.Name,
		account.PasswordHash,
		account.Balance,
		account.RechargeDue,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.ErrAccountExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccountByName retrieves an account by its unique name.
func (r *Repository) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `
		SELECT id, name, password_hash, balance, recharge_due, created_at, updated_at
		FROM users
		WHERE name = $1
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, name), "get account by name")
}

// GetAccountByID retrieves an account by its ID.
func (r *Repository) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `
		SELECT id, name, password_hash, balance, recharge_due, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, id), "get account by id")
}

func (r *Repository) scanAccount(row pgx.Row, op string) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.PasswordHash,
		&account.Balance,
		&account.RechargeDue,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &account, nil
}
