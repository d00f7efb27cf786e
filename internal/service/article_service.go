package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// ArticleService handles the editorial blog section. Writing is staff
// only; reading is public.
type ArticleService struct {
	articleRepo *repository.ArticleRepository
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articleRepo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// GetArticle retrieves a published article by slug.
func (s *ArticleService) GetArticle(ctx context.Context, articleSlug string) (*domain.Article, error) {
	return s.articleRepo.GetPublishedBySlug(ctx, articleSlug)
}

// ListArticles retrieves published articles, newest first.
func (s *ArticleService) ListArticles(ctx context.Context, limit, offset int) ([]*domain.Article, int, error) {
	return s.articleRepo.ListPublished(ctx, limit, offset)
}

// CreateArticle drafts a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, actor domain.Actor, title, body string) (*domain.Article, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", domain.ErrValidation)
	}

	artSlug, err := uniqueSlug(ctx, title, s.articleRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	art := &domain.Article{
		Title:    title,
		Slug:     artSlug,
		Body:     body,
		AuthorID: actor.ID,
	}
	art, err = s.articleRepo.Create(ctx, art)
	if err != nil {
		return nil, err
	}

	slog.Info("article drafted",
		"article_id", art.ID,
		"author_id", actor.ID,
		"slug", art.Slug,
	)

	return art, nil
}

// PublishArticle makes a draft public.
func (s *ArticleService) PublishArticle(ctx context.Context, actor domain.Actor, articleID string) error {
	if err := requireStaff(actor); err != nil {
		return err
	}

	if err := s.articleRepo.Publish(ctx, articleID); err != nil {
		return err
	}

	slog.Info("article published",
		"article_id", articleID,
		"author_id", actor.ID,
	)
	return nil
}
