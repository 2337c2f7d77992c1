package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type projectRow struct {
	ID               string    `db:"id"`
	Title            string    `db:"title"`
	Slug             string    `db:"slug"`
	Category         string    `db:"category"`
	ShortDescription string    `db:"short_description"`
	FullDescription  string    `db:"full_description"`
	CoverImageURL    string    `db:"cover_image_url"`
	VideoURL         string    `db:"video_url"`
	ProjectLink      string    `db:"project_link"`
	ToolsUsed        jsonList  `db:"tools_used"`
	GalleryImages    jsonList  `db:"gallery_images"`
	Featured         bool      `db:"featured"`
	DisplayOrder     int       `db:"display_order"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func projectToRow(p *domain.Project) projectRow {
	return projectRow{
		ID: p.ID, Title: p.Title, Slug: p.Slug, Category: string(p.Category),
		ShortDescription: p.ShortDescription, FullDescription: p.FullDescription,
		CoverImageURL: p.CoverImageURL, VideoURL: p.VideoURL, ProjectLink: p.ProjectLink,
		ToolsUsed: jsonList(p.ToolsUsed), GalleryImages: jsonList(p.GalleryImages),
		Featured: p.Featured, DisplayOrder: p.DisplayOrder, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (r projectRow) toDomain() domain.Project {
	return domain.Project{
		ID: r.ID, Title: r.Title, Slug: r.Slug, Category: domain.ProjectCategory(r.Category),
		ShortDescription: r.ShortDescription, FullDescription: r.FullDescription,
		CoverImageURL: r.CoverImageURL, VideoURL: r.VideoURL, ProjectLink: r.ProjectLink,
		ToolsUsed: []string(r.ToolsUsed), GalleryImages: []string(r.GalleryImages),
		Featured: r.Featured, DisplayOrder: r.DisplayOrder, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const projectColumns = `id, title, slug, category, short_description, full_description, cover_image_url,
	video_url, project_link, tools_used, gallery_images, featured, display_order, created_at, updated_at`

// ProjectRepo implements domain.ProjectRepository.
type ProjectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a ProjectRepo.
func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// List returns projects in display order.
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+projectColumns+` FROM projects ORDER BY `+displayOrder); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.Project, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns a single project.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.get(ctx, `id = ?`, id)
}

// GetBySlug returns a single project by slug.
func (r *ProjectRepo) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return r.get(ctx, `slug = ?`, slug)
}

func (r *ProjectRepo) get(ctx context.Context, where string, arg string) (*domain.Project, error) {
	var row projectRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+projectColumns+` FROM projects WHERE `+where, arg); err != nil {
		return nil, mapDBError(err)
	}
	p := row.toDomain()
	return &p, nil
}

// Create appends the project at the end of the display order.
func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := projectToRow(p)
	row.ID = domain.NewID()
	row.CreatedAt = nowUTC()
	row.UpdatedAt = row.CreatedAt

	err := withTx(ctx, r.db, "create-project", func(tx *sqlx.Tx) error {
		pos, err := nextPosition(ctx, tx, "projects")
		if err != nil {
			return err
		}
		row.DisplayOrder = pos
		_, err = tx.NamedExecContext(ctx, `INSERT INTO projects (`+projectColumns+`) VALUES (
			:id, :title, :slug, :category, :short_description, :full_description, :cover_image_url,
			:video_url, :project_link, :tools_used, :gallery_images, :featured, :display_order, :created_at, :updated_at)`, row)
		return mapDBError(err)
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// Update overwrites the editable fields. display_order is left to OrderRepo.
func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := projectToRow(p)
	row.UpdatedAt = nowUTC()
	res, err := r.db.NamedExecContext(ctx, `UPDATE projects SET
		title = :title, slug = :slug, category = :category, short_description = :short_description,
		full_description = :full_description, cover_image_url = :cover_image_url, video_url = :video_url,
		project_link = :project_link, tools_used = :tools_used, gallery_images = :gallery_images,
		featured = :featured, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := notFoundIfNone(res, "project", p.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

// Delete removes a project.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "project", id)
}
