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

var serviceColumns = []string{
	"id", "title", "slug", "description", "author_id", "category_id",
	"location_type", "city_id", "price", "payment_period",
	"is_active", "is_moderated", "moderation_comment", "views", "orders_count",
	"created_at", "updated_at",
}

// ServiceRepository handles database operations for service offerings.
type ServiceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository creates a new ServiceRepository.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var svc domain.Service
	err := row.Scan(
		&svc.ID,
		&svc.Title,
		&svc.Slug,
		&svc.Description,
		&svc.AuthorID,
		&svc.CategoryID,
		&svc.LocationType,
		&svc.CityID,
		&svc.Price,
		&svc.PaymentPeriod,
		&svc.IsActive,
		&svc.IsModerated,
		&svc.ModerationComment,
		&svc.Views,
		&svc.OrdersCount,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("scan service: %w", err)
	}
	return &svc, nil
}

func scanServices(rows pgx.Rows) ([]*domain.Service, error) {
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return services, nil
}

// GetByID retrieves a service by ID.
func (r *ServiceRepository) GetByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	query, args, err := psql.
		Select(serviceColumns...).
		From("services").
		Where(sq.Eq{"id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for service: %w", err)
	}

	return scanService(r.pool.QueryRow(ctx, query, args...))
}

// GetBySlug retrieves a service by its unique slug.
func (r *ServiceRepository) GetBySlug(ctx context.Context, serviceSlug string) (*domain.Service, error) {
	query, args, err := psql.
		Select(serviceColumns...).
		From("services").
		Where(sq.Eq{"slug": serviceSlug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetBySlug query for service: %w", err)
	}

	return scanService(r.pool.QueryRow(ctx, query, args...))
}

// ServiceListFilters holds the supported filters for service listing.
type ServiceListFilters struct {
	SectionSlug  string
	CategorySlug string
	CityID       *string
	AuthorID     *string
	Limit        int
	Offset       int
}

func serviceListConditions(qb sq.SelectBuilder, filters ServiceListFilters) sq.SelectBuilder {
	qb = qb.Where(sq.Eq{"s.is_active": true, "s.is_moderated": true})

	if filters.SectionSlug != "" {
		qb = qb.Join("categories c ON c.id = s.category_id").
			Join("category_sections cs ON cs.id = c.section_id").
			Where(sq.Eq{"cs.slug": filters.SectionSlug})
		if filters.CategorySlug != "" {
			qb = qb.Where(sq.Eq{"c.slug": filters.CategorySlug})
		}
	} else if filters.CategorySlug != "" {
		qb = qb.Join("categories c ON c.id = s.category_id").
			Where(sq.Eq{"c.slug": filters.CategorySlug})
	}

	if filters.CityID != nil {
		qb = qb.Where(sq.Eq{"s.city_id": *filters.CityID})
	}
	if filters.AuthorID != nil {
		qb = qb.Where(sq.Eq{"s.author_id": *filters.AuthorID})
	}

	return qb
}

// List retrieves publicly visible services with filters and pagination,
// newest first, along with the unpaginated total.
func (r *ServiceRepository) List(ctx context.Context, filters ServiceListFilters) ([]*domain.Service, int, error) {
	cols := make([]string, len(serviceColumns))
	for i, c := range serviceColumns {
		cols[i] = "s." + c
	}

	qb := serviceListConditions(psql.Select(cols...).From("services s"), filters).
		OrderBy("s.created_at DESC").
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query services: %w", err)
	}

	services, err := scanServices(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := serviceListConditions(psql.Select("COUNT(*)").From("services s"), filters).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	return services, total, nil
}

// Create inserts a new service.
func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	query, args, err := psql.
		Insert("services").
		Columns(
			"title", "slug", "description", "author_id", "category_id",
			"location_type", "city_id", "price", "payment_period",
			"is_active", "is_moderated",
		).
		Values(
			svc.Title,
			svc.Slug,
			svc.Description,
			svc.AuthorID,
			svc.CategoryID,
			svc.LocationType,
			svc.CityID,
			svc.Price,
			svc.PaymentPeriod,
			svc.IsActive,
			svc.IsModerated,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for service: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	return svc, nil
}

// Update saves the editable fields of a service, including the moderation
// reset an edit forces.
func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	query, args, err := psql.
		Update("services").
		Set("title", svc.Title).
		Set("description", svc.Description).
		Set("category_id", svc.CategoryID).
		Set("location_type", svc.LocationType).
		Set("city_id", svc.CityID).
		Set("price", svc.Price).
		Set("payment_period", svc.PaymentPeriod).
		Set("is_active", svc.IsActive).
		Set("is_moderated", svc.IsModerated).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": svc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for service %s: %w", svc.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

// SetModeration approves or rejects a service.
func (r *ServiceRepository) SetModeration(ctx context.Context, serviceID string, moderated bool, comment string) error {
	query, args, err := psql.
		Update("services").
		Set("is_moderated", moderated).
		Set("moderation_comment", comment).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": serviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SetModeration query for service %s: %w", serviceID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set service moderation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

// IncrementViews bumps the view counter. Best effort; the caller ignores
// the count in the response path.
func (r *ServiceRepository) IncrementViews(ctx context.Context, serviceID string) error {
	query, args, err := psql.
		Update("services").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": serviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build IncrementViews query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("increment service views: %w", err)
	}
	return nil
}

// SlugExists reports whether a service already uses the given slug.
func (r *ServiceRepository) SlugExists(ctx context.Context, serviceSlug string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("services").
		Where(sq.Eq{"slug": serviceSlug}).
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
		return false, fmt.Errorf("check service slug: %w", err)
	}
	return true, nil
}
