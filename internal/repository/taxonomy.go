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

// TaxonomyRepository handles read access to the category and location
// reference data. The rows are seeded by migrations and managed outside
// the API, so there are no write methods.
type TaxonomyRepository struct {
	pool *pgxpool.Pool
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{pool: pool}
}

// ListSections retrieves all active category sections ordered by name.
func (r *TaxonomyRepository) ListSections(ctx context.Context) ([]*domain.CategorySection, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "description", "short_description", "is_active", "created_at", "updated_at").
		From("category_sections").
		Where(sq.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListSections query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	var sections []*domain.CategorySection
	for rows.Next() {
		var s domain.CategorySection
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.ShortDescription, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return sections, nil
}

// GetSectionBySlug retrieves one active section by slug.
func (r *TaxonomyRepository) GetSectionBySlug(ctx context.Context, sectionSlug string) (*domain.CategorySection, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "description", "short_description", "is_active", "created_at", "updated_at").
		From("category_sections").
		Where(sq.Eq{"slug": sectionSlug, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetSectionBySlug query: %w", err)
	}

	var s domain.CategorySection
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.ShortDescription, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, fmt.Errorf("scan section: %w", err)
	}
	return &s, nil
}

// ListCategories retrieves the active categories of a section ordered by
// name.
func (r *TaxonomyRepository) ListCategories(ctx context.Context, sectionID string) ([]*domain.Category, error) {
	query, args, err := psql.
		Select("id", "section_id", "name", "slug", "description", "short_description", "is_active", "created_at", "updated_at").
		From("categories").
		Where(sq.Eq{"section_id": sectionID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListCategories query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.SectionID, &c.Name, &c.Slug, &c.Description, &c.ShortDescription, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return categories, nil
}

// GetCategoryByID retrieves one active category by ID.
func (r *TaxonomyRepository) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query, args, err := psql.
		Select("id", "section_id", "name", "slug", "description", "short_description", "is_active", "created_at", "updated_at").
		From("categories").
		Where(sq.Eq{"id": categoryID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetCategoryByID query: %w", err)
	}

	var c domain.Category
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.SectionID, &c.Name, &c.Slug, &c.Description, &c.ShortDescription, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

// GetCategoryBySlugs retrieves a category addressed by section slug and
// category slug together, the form used in listing URLs.
func (r *TaxonomyRepository) GetCategoryBySlugs(ctx context.Context, sectionSlug, categorySlug string) (*domain.Category, error) {
	query, args, err := psql.
		Select("c.id", "c.section_id", "c.name", "c.slug", "c.description", "c.short_description", "c.is_active", "c.created_at", "c.updated_at").
		From("categories c").
		Join("category_sections cs ON cs.id = c.section_id").
		Where(sq.Eq{"cs.slug": sectionSlug, "c.slug": categorySlug, "c.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetCategoryBySlugs query: %w", err)
	}

	var c domain.Category
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.SectionID, &c.Name, &c.Slug, &c.Description, &c.ShortDescription, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

// ListRegions retrieves all active regions ordered by name.
func (r *TaxonomyRepository) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "is_active").
		From("regions").
		Where(sq.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListRegions query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var regions []*domain.Region
	for rows.Next() {
		var reg domain.Region
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Slug, &reg.IsActive); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return regions, nil
}

// GetRegionBySlug retrieves one active region by slug.
func (r *TaxonomyRepository) GetRegionBySlug(ctx context.Context, regionSlug string) (*domain.Region, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "is_active").
		From("regions").
		Where(sq.Eq{"slug": regionSlug, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetRegionBySlug query: %w", err)
	}

	var reg domain.Region
	err = r.pool.QueryRow(ctx, query, args...).Scan(&reg.ID, &reg.Name, &reg.Slug, &reg.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRegionNotFound
		}
		return nil, fmt.Errorf("scan region: %w", err)
	}
	return &reg, nil
}

// ListCities retrieves the active cities of a region ordered by name.
func (r *TaxonomyRepository) ListCities(ctx context.Context, regionID string) ([]*domain.City, error) {
	query, args, err := psql.
		Select("id", "region_id", "name", "slug", "is_active").
		From("cities").
		Where(sq.Eq{"region_id": regionID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListCities query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(&city.ID, &city.RegionID, &city.Name, &city.Slug, &city.IsActive); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, &city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return cities, nil
}

// GetCityByID retrieves one active city by ID.
func (r *TaxonomyRepository) GetCityByID(ctx context.Context, cityID string) (*domain.City, error) {
	query, args, err := psql.
		Select("id", "region_id", "name", "slug", "is_active").
		From("cities").
		Where(sq.Eq{"id": cityID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetCityByID query: %w", err)
	}

	var city domain.City
	err = r.pool.QueryRow(ctx, query, args...).Scan(&city.ID, &city.RegionID, &city.Name, &city.Slug, &city.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCityNotFound
		}
		return nil, fmt.Errorf("scan city: %w", err)
	}
	return &city, nil
}
