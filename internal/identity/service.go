// Package identity provides account registration and authentication.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/vindheg/dth-render/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Identity errors.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository defines the interface for account data operations.
type Repository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccountByName(ctx context.Context, name string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*domain.Account, error)
}

// Authenticator issues and validates access tokens.
type Authenticator interface {
	GenerateToken(ctx context.Context, userID int64, role domain.Role) (string, error)
	ValidateToken(ctx context.Context, token string) (userID int64, role domain.Role, err error)
}

// AdminCredentials is the out-of-band configured superuser credential pair.
// Admin login is resolved before the account store is consulted.
type AdminCredentials struct {
	Name     string
	Password string
}

// Service implements account registration and login.
type Service struct {
	repo  Repository
	auth  Authenticator
	admin AdminCredentials
}

// NewService creates a new identity service.
func NewService(repo Repository, auth Authenticator, admin AdminCredentials) *Service {
	return &Service{
		repo:  repo,
		auth:  auth,
		admin: admin,
	}
}

// SignupInput contains data for registering an account.
type SignupInput struct {
	Name     string
	Password string
}

// Signup registers a new account. New accounts start with the default
// balance and a recharge due date 30 days out, both assigned server-side.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Name:         input.Name,
		PasswordHash: string(hash),
		Balance:      domain.DefaultBalance,
		RechargeDue:  time.Now().Add(domain.RechargePeriod),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// LoginInput contains credentials for authentication.
type LoginInput struct {
	Name     string
	Password string
}

// LoginResult is the outcome of a successful login.
// Account is nil for the admin role.
type LoginResult struct {
	Role    domain.Role
	Account *domain.Account
	Token   string
}

// Login authenticates by name and password. The configured admin
// credential short-circuits to the admin role without a store lookup;
// everything else is a bcrypt comparison against the stored hash.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if s.isAdmin(input.Name, input.Password) {
		token, err := s.auth.GenerateToken(ctx, 0, domain.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("generate admin token: %w", err)
		}
		return &LoginResult{Role: domain.RoleAdmin, Token: token}, nil
	}

	account, err := s.repo.GetAccountByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(ctx, account.ID, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{Role: domain.RoleUser, Account: account, Token: token}, nil
}

// GetAccountByID returns an account by its ID.
func (s *Service) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.GetAccountByID(ctx, id)
}

// ValidateToken implements httputil.TokenValidator.
func (s *Service) ValidateToken(ctx context.Context, token string) (int64, domain.Role, error) {
	return s.auth.ValidateToken(ctx, token)
}

func (s *Service) isAdmin(name, password string) bool {
	if s.admin.Name == "" || s.admin.Password == "" {
		return false
	}
	nameOK := subtle.ConstantTimeCompare([]byte(name), []byte(s.admin.Name)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	return nameOK && passOK
}
