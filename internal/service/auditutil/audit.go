// Package auditutil records console mutations in the audit log.
package auditutil

import (
	"context"

	"studio-site/internal/domain"
)

// Event describes one audited mutation.
type Event struct {
	Action   string
	Entity   string
	EntityID string
	Detail   string
}

// LogAllowed records a mutation that went through.
func LogAllowed(ctx context.Context, audit domain.AuditRepository, ev Event) {
	logDecision(ctx, audit, domain.AuditAllowed, ev)
}

// LogDenied records a mutation rejected for lack of capability.
func LogDenied(ctx context.Context, audit domain.AuditRepository, ev Event) {
	logDecision(ctx, audit, domain.AuditDenied, ev)
}

// LogError records a mutation that failed in the row store.
func LogError(ctx context.Context, audit domain.AuditRepository, ev Event, err error) {
	if err != nil && ev.Detail == "" {
		ev.Detail = err.Error()
	}
	logDecision(ctx, audit, domain.AuditError, ev)
}

func logDecision(ctx context.Context, audit domain.AuditRepository, status string, ev Event) {
	if audit == nil {
		return
	}
	p, _ := domain.PrincipalFromContext(ctx)
	e := &domain.AuditEntry{
		ActorID:    p.ID,
		ActorEmail: p.Email,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Status:     status,
	}
	if ev.Detail != "" {
		d := ev.Detail
		e.Detail = &d
	}
	// audit writes never fail the request
	_ = audit.Insert(context.WithoutCancel(ctx), e)
}
