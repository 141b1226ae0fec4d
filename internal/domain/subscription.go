package domain

import "time"

// Subscription is an active entitlement linking one account to one channel.
// The (UserID, ChannelID) pair is unique; there is no price snapshot.
type Subscription struct {
	UserID    int64     `json:"user_id"`
	ChannelID int64     `json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Balance is the read-only projection of an account's funds.
type Balance struct {
	Balance     int64  `json:"balance"`
	RechargeDue string `json:"recharge_due"`
}
