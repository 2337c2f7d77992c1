package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
)

func setupService(t *testing.T) (*Service, *repository.AuditRepo) {
	t.Helper()
	svc, audit, _ := setupServiceStore(t)
	return svc, audit
}

func setupServiceStore(t *testing.T) (*Service, *repository.AuditRepo, *internaldb.Store) {
	t.Helper()
	s := internaldb.OpenTestStore(t)
	audit := repository.NewAuditRepo(s.Write)
	svc := NewService(Repositories{
		Projects: repository.NewProjectRepo(s.Write),
		Team:     repository.NewTeamRepo(s.Write),
		Awards:   repository.NewAwardRepo(s.Write),
		Services: repository.NewServiceRepo(s.Write),
		Partners: repository.NewPartnerRepo(s.Write),
		Blog:     repository.NewBlogRepo(s.Write),
		Settings: repository.NewSettingsRepo(s.Write),
		Order:    repository.NewOrderRepo(s.Write, s.Read),
		Audit:    audit,
	})
	return svc, audit, s
}

func asUser(id string, a domain.Access) context.Context {
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: id, Email: id + "@studio.io", Type: "user"})
	return domain.WithAccess(ctx, a)
}

func superCtx() context.Context { return asUser("super", domain.UnrestrictedAccess()) }

func seedPartners(t *testing.T, svc *Service, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, n := range names {
		p, err := svc.CreatePartner(superCtx(), domain.Partner{Name: n, LogoURL: "https://cdn/" + n + ".png", IsActive: true})
		require.NoError(t, err)
		ids[i] = p.ID
	}
	return ids
}

func TestCapabilityGating(t *testing.T) {
	svc, audit := setupService(t)
	blogOnly := asUser("writer", domain.RestrictedAccess([]string{"blog"}))
	var denied *domain.AccessDeniedError

	_, err := svc.CreateProject(blogOnly, domain.Project{Title: "X"})
	assert.ErrorAs(t, err, &denied)
	_, err = svc.ListTeam(blogOnly)
	assert.ErrorAs(t, err, &denied)
	_, err = svc.CreatePartner(blogOnly, domain.Partner{Name: "A", LogoURL: "l"})
	assert.ErrorAs(t, err, &denied, "partners are gated by projects")
	_, err = svc.SaveRecipients(blogOnly, []string{"a@b.co"})
	assert.ErrorAs(t, err, &denied)

	_, err = svc.CreateBlogPost(blogOnly, domain.BlogPost{Title: "Hello", Content: "body"})
	require.NoError(t, err)

	_, err = svc.ListProjects(context.Background())
	assert.ErrorAs(t, err, &denied, "anonymous callers hold nothing")

	entries, total, err := audit.List(context.Background(), domain.AuditFilter{Status: domain.AuditDenied})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, e := range entries {
		assert.Equal(t, "writer", e.ActorID)
	}
}

func TestProjectLifecycle(t *testing.T) {
	svc, _ := setupService(t)
	ctx := asUser("pm", domain.RestrictedAccess([]string{"projects"}))

	p, err := svc.CreateProject(ctx, domain.Project{Title: "Gondar Castles AR", Category: domain.CategoryAR})
	require.NoError(t, err)
	assert.Equal(t, "gondar-castles-ar", p.Slug)

	_, err = svc.CreateProject(ctx, domain.Project{Title: "Other", Slug: "gondar-castles-ar"})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.MsgDuplicate, domain.UserMessage(err))

	p.Featured = true
	p.ToolsUsed = []string{"Unity", "ARKit"}
	updated, err := svc.UpdateProject(ctx, *p)
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.Equal(t, []string{"Unity", "ARKit"}, updated.ToolsUsed)

	require.NoError(t, svc.DeleteProject(ctx, p.ID))
	_, err = svc.GetProject(ctx, p.ID)
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestReorder_MoveLastToFirst(t *testing.T) {
	svc, _ := setupService(t)
	ids := seedPartners(t, svc, "A", "B", "C")

	got, err := svc.Reorder(superCtx(), "partners", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, domain.IDs(got))

	list, err := svc.ListPartners(superCtx())
	require.NoError(t, err)
	for i, p := range list {
		assert.Equal(t, i, p.DisplayOrder)
	}
	assert.Equal(t, "C", list[0].Name)

	again, err := svc.ApplyOrder(superCtx(), "partners", domain.IDs(got))
	require.NoError(t, err)
	assert.Equal(t, got, again, "committing the same order twice is idempotent")
}

func TestReorder_ScenarioB(t *testing.T) {
	svc, _ := setupService(t)
	ids := seedPartners(t, svc, "A", "B", "C", "D", "E")

	_, err := svc.Reorder(superCtx(), "partners", 2, 0)
	require.NoError(t, err)

	list, err := svc.ListPartners(superCtx())
	require.NoError(t, err)
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
		assert.Equal(t, i, p.DisplayOrder)
	}
	assert.Equal(t, []string{"C", "A", "B", "D", "E"}, names)
	assert.Equal(t, []string{ids[2], ids[0], ids[1], ids[3], ids[4]}, partnerIDs(list))
}

func TestReorder_RenumbersArbitraryPositions(t *testing.T) {
	cases := []struct {
		name     string
		start    []int
		from, to int
	}{
		{name: "duplicates gaps and negatives", start: []int{7, 7, 3, 10, -2}, from: 2, to: 0},
		{name: "all equal", start: []int{5, 5, 5, 5, 5}, from: 0, to: 4},
		{name: "wide gaps", start: []int{0, 10, 20, 30, 40}, from: 4, to: 1},
		{name: "all negative", start: []int{-5, -4, -3, -2, -1}, from: 1, to: 3},
		{name: "no move", start: []int{3, 1, 2, 9, 9}, from: 2, to: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, st := setupServiceStore(t)
			ids := seedPartners(t, svc, "A", "B", "C", "D", "E")
			for i, id := range ids {
				_, err := st.Write.ExecContext(context.Background(),
					`UPDATE partners SET display_order = ? WHERE id = ?`, tc.start[i], id)
				require.NoError(t, err)
			}

			before, err := svc.ListPartners(superCtx())
			require.NoError(t, err)
			want, err := domain.MoveItem(partnerIDs(before), tc.from, tc.to)
			require.NoError(t, err)

			got, err := svc.Reorder(superCtx(), "partners", tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, want, domain.IDs(got))

			after, err := svc.ListPartners(superCtx())
			require.NoError(t, err)
			assert.Equal(t, want, partnerIDs(after))
			for i, p := range after {
				assert.Equal(t, i, p.DisplayOrder, p.Name)
			}
		})
	}
}

func TestReorder_TiesFollowListOrder(t *testing.T) {
	svc, _, st := setupServiceStore(t)
	seedPartners(t, svc, "A", "B", "C")
	// Identical order and timestamp leave only the id to break the tie.
	_, err := st.Write.ExecContext(context.Background(),
		`UPDATE partners SET display_order = 1, created_at = '2025-01-01 00:00:00'`)
	require.NoError(t, err)

	seen, err := svc.ListPartners(superCtx())
	require.NoError(t, err)
	want, err := domain.MoveItem(partnerIDs(seen), 2, 0)
	require.NoError(t, err)

	got, err := svc.Reorder(superCtx(), "partners", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, want, domain.IDs(got), "the row moved is the one shown at that index")
}

func partnerIDs(list []domain.Partner) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func TestReorder_Rejections(t *testing.T) {
	svc, _ := setupService(t)
	ids := seedPartners(t, svc, "A", "B")
	var ve *domain.ValidationError

	_, err := svc.Reorder(superCtx(), "admin_users", 0, 1)
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Reorder(superCtx(), "partners", 0, 5)
	assert.ErrorAs(t, err, &ve)

	_, err = svc.ApplyOrder(superCtx(), "partners", []string{ids[1], "someone-else"})
	assert.ErrorAs(t, err, &ve)

	list, err := svc.ListPartners(superCtx())
	require.NoError(t, err)
	assert.Equal(t, "A", list[0].Name, "rejected commits write nothing")

	teamOnly := asUser("t", domain.RestrictedAccess([]string{"team"}))
	var denied *domain.AccessDeniedError
	_, err = svc.Reorder(teamOnly, "partners", 0, 1)
	assert.ErrorAs(t, err, &denied)
}

func TestMove(t *testing.T) {
	svc, _ := setupService(t)
	ctx := asUser("s", domain.RestrictedAccess([]string{"services"}))
	var ids []string
	for _, title := range []string{"VR", "AR", "Games"} {
		v, err := svc.CreateService(ctx, domain.Service{Title: title, Description: "d", Icon: "Gamepad2"})
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}

	got, err := svc.Move(ctx, "services", ids[2], domain.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, domain.IDs(got))

	got, err = svc.Move(ctx, "services", ids[0], domain.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, ids[0], got[0].ID, "moving the first item up is a no-op")

	_, err = svc.Move(ctx, "services", "missing", domain.MoveDown)
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestBlogPublishStamp(t *testing.T) {
	svc, _ := setupService(t)
	first := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	ctx := asUser("w", domain.RestrictedAccess([]string{"blog"}))

	b, err := svc.CreateBlogPost(ctx, domain.BlogPost{Title: "Draft", Content: "text"})
	require.NoError(t, err)
	assert.Nil(t, b.PublishedAt)
	assert.Equal(t, domain.DefaultAuthorName, b.AuthorName)

	b.Published = true
	b, err = svc.UpdateBlogPost(ctx, *b)
	require.NoError(t, err)
	require.NotNil(t, b.PublishedAt)
	assert.True(t, first.Equal(*b.PublishedAt))

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	b.Title = "Draft, edited"
	b, err = svc.UpdateBlogPost(ctx, *b)
	require.NoError(t, err)
	assert.True(t, first.Equal(*b.PublishedAt), "first publication time is kept")
}

func TestSettingsAndRecipients(t *testing.T) {
	svc, _ := setupService(t)
	ctx := asUser("ops", domain.RestrictedAccess([]string{"settings"}))

	require.NoError(t, svc.SaveSettings(ctx, map[string]string{
		domain.SettingHeroProjects: " 80+ ",
		domain.SettingContactEmail: "hi@studio.io",
	}))
	settings, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "80+", settings.Get(domain.SettingHeroProjects, ""))
	assert.Equal(t, "hi@studio.io", settings.Get(domain.SettingContactEmail, ""))

	var ve *domain.ValidationError
	assert.ErrorAs(t, svc.SaveSettings(ctx, map[string]string{"theme": "dark"}), &ve)

	list, err := svc.Recipients(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.AddRecipient(ctx, "ops@studio.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@studio.io"}, list)

	_, err = svc.AddRecipient(ctx, "OPS@studio.io")
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)

	_, err = svc.AddRecipient(ctx, "not-an-email")
	assert.ErrorAs(t, err, &ve)

	list, err = svc.RemoveRecipient(ctx, "ops@studio.io")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTeamSocialLinks(t *testing.T) {
	svc, _ := setupService(t)
	ctx := asUser("t", domain.RestrictedAccess([]string{"team"}))

	m, err := svc.CreateTeamMember(ctx, domain.TeamMember{Name: "Hana", Role: "Lead Artist"})
	require.NoError(t, err)

	m, err = svc.SetSocialLinks(ctx, m.ID, []domain.SocialLink{
		{Platform: "Behance", URL: "https://behance.net/hana"},
		{Platform: "email", URL: "hana@studio.io"},
	})
	require.NoError(t, err)
	require.Len(t, m.SocialLinks, 2)
	assert.Equal(t, domain.PlatformBehance, m.SocialLinks[0].Platform)
	assert.Equal(t, "mailto:hana@studio.io", m.SocialLinks[1].Href())
}
