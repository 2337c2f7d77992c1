package content

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

const entityBlog = "blog_posts"

// ListBlogPosts returns drafts and published posts, newest first.
func (s *Service) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	if err := access.Require(ctx, domain.CapBlog); err != nil {
		return nil, err
	}
	return s.repos.Blog.List(ctx, false)
}

// GetBlogPost returns one post by id.
func (s *Service) GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	if err := access.Require(ctx, domain.CapBlog); err != nil {
		return nil, err
	}
	return s.repos.Blog.GetByID(ctx, id)
}

// CreateBlogPost validates b and stores it, stamping published_at when it
// goes out immediately.
func (s *Service) CreateBlogPost(ctx context.Context, b domain.BlogPost) (*domain.BlogPost, error) {
	if err := s.authorize(ctx, domain.CapBlog, "CREATE", entityBlog, ""); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.PublishedAt = nil
	b.StampPublished(nil, s.now())
	out, err := s.repos.Blog.Create(ctx, &b)
	if err != nil {
		return nil, s.record(ctx, "CREATE", entityBlog, "", err)
	}
	return out, s.record(ctx, "CREATE", entityBlog, out.ID, nil)
}

// UpdateBlogPost replaces the editable fields of post b.ID. The first
// publication time is kept across later edits.
func (s *Service) UpdateBlogPost(ctx context.Context, b domain.BlogPost) (*domain.BlogPost, error) {
	if err := s.authorize(ctx, domain.CapBlog, "UPDATE", entityBlog, b.ID); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	prev, err := s.repos.Blog.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.PublishedAt = prev.PublishedAt
	b.StampPublished(prev, s.now())
	out, err := s.repos.Blog.Update(ctx, &b)
	return out, s.record(ctx, "UPDATE", entityBlog, b.ID, err)
}

// DeleteBlogPost removes a post.
func (s *Service) DeleteBlogPost(ctx context.Context, id string) error {
	if err := s.authorize(ctx, domain.CapBlog, "DELETE", entityBlog, id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", entityBlog, id, s.repos.Blog.Delete(ctx, id))
}
