package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
	"studio-site/internal/service/auditutil"
)

func TestAuditService_List(t *testing.T) {
	s := internaldb.OpenTestStore(t)
	repo := repository.NewAuditRepo(s.Write)
	svc := NewAuditService(repo)

	actor := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: "u1", Email: "u1@studio.io"})
	auditutil.LogAllowed(actor, repo, auditutil.Event{Action: "CREATE", Entity: "projects", EntityID: "p1"})
	auditutil.LogDenied(actor, repo, auditutil.Event{Action: "DELETE", Entity: "projects", EntityID: "p1"})

	superCtx := domain.WithAccess(actor, domain.UnrestrictedAccess())
	entries, total, err := svc.List(superCtx, domain.AuditFilter{Entity: "projects"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "u1@studio.io", entries[0].ActorEmail)

	denied, _, err := svc.List(superCtx, domain.AuditFilter{Status: domain.AuditDenied})
	require.NoError(t, err)
	require.Len(t, denied, 1)
	assert.Equal(t, "DELETE", denied[0].Action)

	editor := domain.WithAccess(actor, domain.RestrictedAccess([]string{"projects"}))
	_, _, err = svc.List(editor, domain.AuditFilter{})
	var ad *domain.AccessDeniedError
	assert.ErrorAs(t, err, &ad)
}
