package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
	"studio-site/internal/notify"
)

type fakeNotifier struct {
	mu       sync.Mutex
	got      []notify.Notification
	err      error
	deadline bool
	block    chan struct{}
}

func (f *fakeNotifier) Notify(ctx context.Context, n notify.Notification) (notify.Result, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, f.deadline = ctx.Deadline()
	f.got = append(f.got, n)
	if f.err != nil {
		return notify.Result{}, f.err
	}
	return notify.Result{Success: true}, nil
}

type failingInsert struct{ domain.ContactRepository }

func (failingInsert) Insert(context.Context, *domain.ContactSubmission) (*domain.ContactSubmission, error) {
	return nil, errors.New("disk full")
}

func setup(t *testing.T, n notify.Notifier) (*Service, *repository.ContactRepo) {
	t.Helper()
	s := internaldb.OpenTestStore(t)
	repo := repository.NewContactRepo(s.Write)
	svc := NewService(repo, n, repository.NewAuditRepo(s.Write), time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func submission() domain.ContactSubmission {
	return domain.ContactSubmission{Name: "Abebe", Email: "abebe@example.com", Subject: "VR project", Message: "Can we talk?"}
}

func inbox() context.Context {
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: "m"})
	return domain.WithAccess(ctx, domain.RestrictedAccess([]string{"messages"}))
}

func TestSubmit_StoresAndRelays(t *testing.T) {
	n := &fakeNotifier{}
	svc, _ := setup(t, n)

	reqCtx, cancel := context.WithCancel(context.Background())
	saved, err := svc.Submit(reqCtx, submission())
	cancel()
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Read)

	svc.Wait()
	require.Len(t, n.got, 1)
	assert.Equal(t, "VR project", n.got[0].Subject)
	assert.True(t, n.deadline, "relay runs with its own timeout")

	rows, next, err := svc.List(inbox(), domain.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Empty(t, next)
}

func TestSubmit_RelayFailureIsNotReported(t *testing.T) {
	svc, _ := setup(t, &fakeNotifier{err: errors.New("resend down")})
	_, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)
	svc.Wait()

	count, err := svc.UnreadCount(inbox())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmit_DoesNotWaitForRelay(t *testing.T) {
	n := &fakeNotifier{block: make(chan struct{})}
	svc, _ := setup(t, n)

	_, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)
	close(n.block)
	svc.Wait()
	assert.Len(t, n.got, 1)
}

func TestSubmit_InvalidOrFailedInsert(t *testing.T) {
	n := &fakeNotifier{}
	svc, _ := setup(t, n)

	bad := submission()
	bad.Email = "abebe"
	_, err := svc.Submit(context.Background(), bad)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	svc.repo = failingInsert{}
	_, err = svc.Submit(context.Background(), submission())
	assert.Error(t, err)

	svc.Wait()
	assert.Empty(t, n.got, "nothing is relayed unless the row was stored")
}

func TestInbox(t *testing.T) {
	svc, _ := setup(t, nil)
	saved, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)

	anon := context.Background()
	var denied *domain.AccessDeniedError
	_, _, err = svc.List(anon, domain.PageRequest{})
	assert.ErrorAs(t, err, &denied)
	assert.ErrorAs(t, svc.Delete(anon, saved.ID), &denied)

	require.NoError(t, svc.MarkRead(inbox(), saved.ID, true))
	count, err := svc.UnreadCount(inbox())
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Delete(inbox(), saved.ID))
	var nf *domain.NotFoundError
	assert.ErrorAs(t, svc.Delete(inbox(), saved.ID), &nf)
}
