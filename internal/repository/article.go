package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podryad/podryad/internal/domain"
)

var articleColumns = []string{
	"id", "title", "slug", "body", "author_id",
	"is_published", "published_at", "created_at", "updated_at",
}

// ArticleRepository handles database operations for blog articles.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var art domain.Article
	err := row.Scan(
		&art.ID,
		&art.Title,
		&art.Slug,
		&art.Body,
		&art.AuthorID,
		&art.IsPublished,
		&art.PublishedAt,
		&art.CreatedAt,
		&art.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &art, nil
}

// GetPublishedBySlug retrieves a published article by slug. Drafts are
// not reachable through the public surface.
func (r *ArticleRepository) GetPublishedBySlug(ctx context.Context, articleSlug string) (*domain.Article, error) {
	query, args, err := psql.
		Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"slug": articleSlug, "is_published": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetPublishedBySlug query: %w", err)
	}

	return scanArticle(r.pool.QueryRow(ctx, query, args...))
}

// ListPublished retrieves published articles with pagination, newest
// publication first, along with the unpaginated total.
func (r *ArticleRepository) ListPublished(ctx context.Context, limit, offset int) ([]*domain.Article, int, error) {
	query, args, err := psql.
		Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"is_published": true}).
		OrderBy("published_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build ListPublished query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		art, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, art)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rows: %w", err)
	}

	countQuery, countArgs, err := psql.
		Select("COUNT(*)").
		From("articles").
		Where(sq.Eq{"is_published": true}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	return articles, total, nil
}

// Create inserts a new article. PublishedAt is set by Publish, not here.
func (r *ArticleRepository) Create(ctx context.Context, art *domain.Article) (*domain.Article, error) {
	query, args, err := psql.
		Insert("articles").
		Columns("title", "slug", "body", "author_id").
		Values(art.Title, art.Slug, art.Body, art.AuthorID).
		Suffix("RETURNING id, is_published, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for article: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&art.ID, &art.IsPublished, &art.CreatedAt, &art.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update saves the editable fields of an article.
func (r *ArticleRepository) Update(ctx context.Context, art *domain.Article) error {
	query, args, err := psql.
		Update("articles").
		Set("title", art.Title).
		Set("body", art.Body).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": art.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for article %s: %w", art.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// Publish makes an article public, stamping the publication time once.
func (r *ArticleRepository) Publish(ctx context.Context, articleID string) error {
	query, args, err := psql.
		Update("articles").
		Set("is_published", true).
		Set("published_at", sq.Expr("COALESCE(published_at, NOW())")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Publish query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("publish article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// SlugExists reports whether an article already uses the given slug.
func (r *ArticleRepository) SlugExists(ctx context.Context, articleSlug string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("articles").
		Where(sq.Eq{"slug": articleSlug}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build SlugExists query: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check article slug: %w", err)
	}
	return true, nil
}
