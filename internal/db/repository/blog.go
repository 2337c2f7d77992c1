package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type blogRow struct {
	ID            string       `db:"id"`
	Title         string       `db:"title"`
	Slug          string       `db:"slug"`
	Excerpt       string       `db:"excerpt"`
	Content       string       `db:"content"`
	CoverImageURL string       `db:"cover_image_url"`
	Category      string       `db:"category"`
	AuthorName    string       `db:"author_name"`
	Published     bool         `db:"published"`
	PublishedAt   sql.NullTime `db:"published_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func blogToRow(b *domain.BlogPost) blogRow {
	row := blogRow{
		ID: b.ID, Title: b.Title, Slug: b.Slug, Excerpt: b.Excerpt, Content: b.Content,
		CoverImageURL: b.CoverImageURL, Category: b.Category, AuthorName: b.AuthorName,
		Published: b.Published, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
	if b.PublishedAt != nil {
		row.PublishedAt = sql.NullTime{Time: *b.PublishedAt, Valid: true}
	}
	return row
}

func (r blogRow) toDomain() domain.BlogPost {
	b := domain.BlogPost{
		ID: r.ID, Title: r.Title, Slug: r.Slug, Excerpt: r.Excerpt, Content: r.Content,
		CoverImageURL: r.CoverImageURL, Category: r.Category, AuthorName: r.AuthorName,
		Published: r.Published, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		b.PublishedAt = &t
	}
	return b
}

const blogColumns = `id, title, slug, excerpt, content, cover_image_url, category, author_name,
	published, published_at, created_at, updated_at`

// BlogRepo implements domain.BlogRepository.
type BlogRepo struct {
	db *sqlx.DB
}

// NewBlogRepo creates a BlogRepo.
func NewBlogRepo(db *sqlx.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

// List returns posts newest first. Published posts sort by publication date.
func (r *BlogRepo) List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error) {
	q := `SELECT ` + blogColumns + ` FROM blog_posts`
	if publishedOnly {
		q += ` WHERE published = 1 ORDER BY published_at DESC, created_at DESC`
	} else {
		q += ` ORDER BY created_at DESC`
	}
	var rows []blogRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.BlogPost, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns a single post.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	var row blogRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+blogColumns+` FROM blog_posts WHERE id = ?`, id); err != nil {
		return nil, mapDBError(err)
	}
	b := row.toDomain()
	return &b, nil
}

// GetBySlug returns a single post by slug.
func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var row blogRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = ?`, slug); err != nil {
		return nil, mapDBError(err)
	}
	b := row.toDomain()
	return &b, nil
}

// Create inserts a post.
func (r *BlogRepo) Create(ctx context.Context, b *domain.BlogPost) (*domain.BlogPost, error) {
	row := blogToRow(b)
	row.ID = domain.NewID()
	row.CreatedAt = nowUTC()
	row.UpdatedAt = row.CreatedAt
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO blog_posts (`+blogColumns+`) VALUES (
		:id, :title, :slug, :excerpt, :content, :cover_image_url, :category, :author_name,
		:published, :published_at, :created_at, :updated_at)`, row)
	if err != nil {
		return nil, mapDBError(err)
	}
	out := row.toDomain()
	return &out, nil
}

// Update overwrites the editable fields.
func (r *BlogRepo) Update(ctx context.Context, b *domain.BlogPost) (*domain.BlogPost, error) {
	row := blogToRow(b)
	row.UpdatedAt = nowUTC()
	res, err := r.db.NamedExecContext(ctx, `UPDATE blog_posts SET
		title = :title, slug = :slug, excerpt = :excerpt, content = :content,
		cover_image_url = :cover_image_url, category = :category, author_name = :author_name,
		published = :published, published_at = :published_at, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := notFoundIfNone(res, "blog post", b.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, b.ID)
}

// Delete removes a post.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "blog post", id)
}
