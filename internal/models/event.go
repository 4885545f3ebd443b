package models

import "time"

// Event types published to the account events queue.
const (
	EventAccountRegistered      = "account.registered"
	EventAccountPasswordChanged = "account.password_changed"
)

// AccountEvent is the JSON body published after a fully successful
// provisioning operation.
type AccountEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	AccountID string    `json:"account_id"`
	OwnerID   string    `json:"owner_id"`
	Timestamp time.Time `json:"timestamp"`
}

// RepairMessage carries everything needed to replay a map-server write
// that failed after the login-server write had already succeeded. It is
// published to the repair queue on a partial failure and consumed by the
// reconciler.
type RepairMessage struct {
	EventID        string `json:"event_id"`
	AccountID      string `json:"account_id"`
	PasswordDigest string `json:"password_digest"`
	Bonus          int    `json:"bonus"`
	OwnerID        string `json:"owner_id"`
	// NewAccount is true when the missing write was the initial insert,
	// false when it was a password update that left the digest stale.
	NewAccount bool `json:"new_account"`
}
