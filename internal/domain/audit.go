package domain

import "time"

// AuditEntry represents a single audit log record for a console mutation.
type AuditEntry struct {
	ID         string
	ActorID    string
	ActorEmail string
	Action     string // e.g. "CREATE", "UPDATE", "DELETE", "REORDER", "GRANT"
	Entity     string // table or collection name
	EntityID   string
	Status     string // "ALLOWED", "DENIED", "ERROR"
	Detail     *string
	CreatedAt  time.Time
}

// Audit statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
	AuditError   = "ERROR"
)

// AuditFilter narrows an audit log listing.
type AuditFilter struct {
	ActorID string
	Entity  string
	Status  string
	Page    PageRequest
}
