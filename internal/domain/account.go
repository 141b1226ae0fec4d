package domain

import "time"

// Role represents an access level within the portal.
type Role string

// Roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// HasPermission reports whether the role satisfies the required minimum role.
func (r Role) HasPermission(min Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == min
}

// DefaultBalance is credited to every new account.
const DefaultBalance int64 = 500

// RechargePeriod is the time until a fresh account is due for a recharge.
const RechargePeriod = 30 * 24 * time.Hour

// Account represents a registered portal user.
// PasswordHash is a bcrypt hash and never leaves the backend.
type Account struct {
	ID           int64
	Name         string
	PasswordHash string
	Balance      int64
	RechargeDue  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountProjection is the public view of an account.
type AccountProjection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Balance     int64  `json:"balance"`
	RechargeDue string `json:"recharge_due"`
}

// Projection returns the account's public view with the recharge
// date rendered as a calendar date.
func (a *Account) Projection() AccountProjection {
	return AccountProjection{
		ID:          a.ID,
		Name:        a.Name,
		Balance:     a.Balance,
		RechargeDue: a.RechargeDue.Format("2006-01-02"),
	}
}
