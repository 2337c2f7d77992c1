package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type teamRow struct {
	ID           string      `db:"id"`
	Name         string      `db:"name"`
	Role         string      `db:"role"`
	Bio          string      `db:"bio"`
	PhotoURL     string      `db:"photo_url"`
	LinkedinURL  string      `db:"linkedin_url"`
	TwitterURL   string      `db:"twitter_url"`
	SocialLinks  socialLinks `db:"social_links"`
	DisplayOrder int         `db:"display_order"`
	CreatedAt    time.Time   `db:"created_at"`
}

func (r teamRow) toDomain() domain.TeamMember {
	return domain.TeamMember{
		ID: r.ID, Name: r.Name, Role: r.Role, Bio: r.Bio, PhotoURL: r.PhotoURL,
		LinkedinURL: r.LinkedinURL, TwitterURL: r.TwitterURL,
		SocialLinks:  []domain.SocialLink(r.SocialLinks),
		DisplayOrder: r.DisplayOrder, CreatedAt: r.CreatedAt,
	}
}

const teamColumns = `id, name, role, bio, photo_url, linkedin_url, twitter_url, social_links, display_order, created_at`

// TeamRepo implements domain.TeamRepository.
type TeamRepo struct {
	db *sqlx.DB
}

// NewTeamRepo creates a TeamRepo.
func NewTeamRepo(db *sqlx.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// List returns team members in display order.
func (r *TeamRepo) List(ctx context.Context) ([]domain.TeamMember, error) {
	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+teamColumns+` FROM team_members ORDER BY `+displayOrder); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.TeamMember, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns a single team member.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	var row teamRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+teamColumns+` FROM team_members WHERE id = ?`, id); err != nil {
		return nil, mapDBError(err)
	}
	m := row.toDomain()
	return &m, nil
}

// Create appends the member at the end of the display order.
func (r *TeamRepo) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	row := teamRow{
		ID: domain.NewID(), Name: m.Name, Role: m.Role, Bio: m.Bio, PhotoURL: m.PhotoURL,
		LinkedinURL: m.LinkedinURL, TwitterURL: m.TwitterURL, SocialLinks: socialLinks(m.SocialLinks),
		CreatedAt: nowUTC(),
	}
	err := withTx(ctx, r.db, "create-team-member", func(tx *sqlx.Tx) error {
		pos, err := nextPosition(ctx, tx, "team_members")
		if err != nil {
			return err
		}
		row.DisplayOrder = pos
		_, err = tx.NamedExecContext(ctx, `INSERT INTO team_members (`+teamColumns+`) VALUES (
			:id, :name, :role, :bio, :photo_url, :linkedin_url, :twitter_url, :social_links, :display_order, :created_at)`, row)
		return mapDBError(err)
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// Update overwrites the editable fields.
func (r *TeamRepo) Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE team_members SET
		name = ?, role = ?, bio = ?, photo_url = ?, linkedin_url = ?, twitter_url = ?, social_links = ?
		WHERE id = ?`,
		m.Name, m.Role, m.Bio, m.PhotoURL, m.LinkedinURL, m.TwitterURL, socialLinks(m.SocialLinks), m.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := notFoundIfNone(res, "team member", m.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

// Delete removes a team member.
func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "team member", id)
}
