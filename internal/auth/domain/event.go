package domain

import "time"

const (
	EventAccountRegistered   = "account.registered"
	EventAccountRoleUpgraded = "account.role_upgraded"
	EventAccountLoggedOutAll = "account.logged_out_all"
)

// AccountEvent is published after an account lifecycle change commits.
type AccountEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	AccountID  int64     `json:"account_id"`
	Role       Role      `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
