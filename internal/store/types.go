package store

import "time"

// UserProfile is a snapshot of one users_profile row. Attributes carries the
// full row as returned by the store and is echoed verbatim on detail display.
type UserProfile struct {
	ID         string
	Name       string
	Approved   bool
	Attributes map[string]any
}

// LoginRecord is one append-only user_logins row.
type LoginRecord struct {
	ID         string
	Email      string
	CreatedAt  time.Time
	Attributes map[string]any
}

// AuditEntry is one approval_logs row describing an operator toggling the
// approval flag.
type AuditEntry struct {
	AdminID      string
	AdminName    string
	TargetUserID string
	NewStatus    bool
	CreatedAt    time.Time
}
