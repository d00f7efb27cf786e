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

var vacancyColumns = []string{
	"id", "title", "slug", "description", "author_id", "specialty_id",
	"experience", "employment_type", "work_nature", "other_conditions",
	"salary", "location", "city_id",
	"is_active", "is_moderated", "moderation_comment", "views", "responses_count",
	"created_at", "updated_at",
}

// VacancyRepository handles database operations for vacancies and
// vacancy responses.
type VacancyRepository struct {
	pool *pgxpool.Pool
}

// NewVacancyRepository creates a new VacancyRepository.
func NewVacancyRepository(pool *pgxpool.Pool) *VacancyRepository {
	return &VacancyRepository{pool: pool}
}

func scanVacancy(row pgx.Row) (*domain.Vacancy, error) {
	var vac domain.Vacancy
	err := row.Scan(
		&vac.ID,
		&vac.Title,
		&vac.Slug,
		&vac.Description,
		&vac.AuthorID,
		&vac.SpecialtyID,
		&vac.Experience,
		&vac.EmploymentType,
		&vac.WorkNature,
		&vac.OtherConditions,
		&vac.Salary,
		&vac.Location,
		&vac.CityID,
		&vac.IsActive,
		&vac.IsModerated,
		&vac.ModerationComment,
		&vac.Views,
		&vac.ResponsesCount,
		&vac.CreatedAt,
		&vac.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("scan vacancy: %w", err)
	}
	return &vac, nil
}

// GetByID retrieves a vacancy by ID.
func (r *VacancyRepository) GetByID(ctx context.Context, vacancyID string) (*domain.Vacancy, error) {
	query, args, err := psql.
		Select(vacancyColumns...).
		From("vacancies").
		Where(sq.Eq{"id": vacancyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for vacancy: %w", err)
	}

	return scanVacancy(r.pool.QueryRow(ctx, query, args...))
}

// GetBySlug retrieves a vacancy by its unique slug.
func (r *VacancyRepository) GetBySlug(ctx context.Context, vacancySlug string) (*domain.Vacancy, error) {
	query, args, err := psql.
		Select(vacancyColumns...).
		From("vacancies").
		Where(sq.Eq{"slug": vacancySlug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetBySlug query for vacancy: %w", err)
	}

	return scanVacancy(r.pool.QueryRow(ctx, query, args...))
}

// VacancyListFilters holds the supported filters for vacancy listing.
type VacancyListFilters struct {
	SpecialtySlug string
	CityID        *string
	AuthorID      *string
	Limit         int
	Offset        int
}

func vacancyListConditions(qb sq.SelectBuilder, filters VacancyListFilters) sq.SelectBuilder {
	qb = qb.Where(sq.Eq{"v.is_active": true, "v.is_moderated": true})

	if filters.SpecialtySlug != "" {
		qb = qb.Join("specialties sp ON sp.id = v.specialty_id").
			Where(sq.Eq{"sp.slug": filters.SpecialtySlug})
	}
	if filters.CityID != nil {
		qb = qb.Where(sq.Eq{"v.city_id": *filters.CityID})
	}
	if filters.AuthorID != nil {
		qb = qb.Where(sq.Eq{"v.author_id": *filters.AuthorID})
	}

	return qb
}

// List retrieves publicly visible vacancies with filters and pagination,
// newest first, along with the unpaginated total.
func (r *VacancyRepository) List(ctx context.Context, filters VacancyListFilters) ([]*domain.Vacancy, int, error) {
	cols := make([]string, len(vacancyColumns))
	for i, c := range vacancyColumns {
		cols[i] = "v." + c
	}

	qb := vacancyListConditions(psql.Select(cols...).From("vacancies v"), filters).
		OrderBy("v.created_at DESC").
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []*domain.Vacancy
	for rows.Next() {
		vac, err := scanVacancy(rows)
		if err != nil {
			return nil, 0, err
		}
		vacancies = append(vacancies, vac)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rows: %w", err)
	}

	countQuery, countArgs, err := vacancyListConditions(psql.Select("COUNT(*)").From("vacancies v"), filters).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vacancies: %w", err)
	}

	return vacancies, total, nil
}

// Create inserts a new vacancy.
func (r *VacancyRepository) Create(ctx context.Context, vac *domain.Vacancy) (*domain.Vacancy, error) {
	query, args, err := psql.
		Insert("vacancies").
		Columns(
			"title", "slug", "description", "author_id", "specialty_id",
			"experience", "employment_type", "work_nature", "other_conditions",
			"salary", "location", "city_id", "is_active", "is_moderated",
		).
		Values(
			vac.Title,
			vac.Slug,
			vac.Description,
			vac.AuthorID,
			vac.SpecialtyID,
			vac.Experience,
			vac.EmploymentType,
			vac.WorkNature,
			vac.OtherConditions,
			vac.Salary,
			vac.Location,
			vac.CityID,
			vac.IsActive,
			vac.IsModerated,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for vacancy: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&vac.ID, &vac.CreatedAt, &vac.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vacancy: %w", err)
	}

	return vac, nil
}

// Update saves the editable fields of a vacancy, including the moderation
// reset an edit forces.
func (r *VacancyRepository) Update(ctx context.Context, vac *domain.Vacancy) error {
	query, args, err := psql.
		Update("vacancies").
		Set("title", vac.Title).
		Set("description", vac.Description).
		Set("specialty_id", vac.SpecialtyID).
		Set("experience", vac.Experience).
		Set("employment_type", vac.EmploymentType).
		Set("work_nature", vac.WorkNature).
		Set("other_conditions", vac.OtherConditions).
		Set("salary", vac.Salary).
		Set("location", vac.Location).
		Set("city_id", vac.CityID).
		Set("is_active", vac.IsActive).
		Set("is_moderated", vac.IsModerated).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": vac.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for vacancy %s: %w", vac.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update vacancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVacancyNotFound
	}
	return nil
}

// SetModeration approves or rejects a vacancy.
func (r *VacancyRepository) SetModeration(ctx context.Context, vacancyID string, moderated bool, comment string) error {
	query, args, err := psql.
		Update("vacancies").
		Set("is_moderated", moderated).
		Set("moderation_comment", comment).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": vacancyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SetModeration query for vacancy %s: %w", vacancyID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set vacancy moderation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVacancyNotFound
	}
	return nil
}

// IncrementViews bumps the view counter.
func (r *VacancyRepository) IncrementViews(ctx context.Context, vacancyID string) error {
	query, args, err := psql.
		Update("vacancies").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": vacancyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build IncrementViews query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("increment vacancy views: %w", err)
	}
	return nil
}

// SlugExists reports whether a vacancy already uses the given slug.
func (r *VacancyRepository) SlugExists(ctx context.Context, vacancySlug string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("vacancies").
		Where(sq.Eq{"slug": vacancySlug}).
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
		return false, fmt.Errorf("check vacancy slug: %w", err)
	}
	return true, nil
}

// GetResponse retrieves the application a candidate sent to a vacancy.
func (r *VacancyRepository) GetResponse(ctx context.Context, vacancyID, candidateID string) (*domain.VacancyResponse, error) {
	query, args, err := psql.
		Select("id", "vacancy_id", "candidate_id", "message", "is_read", "created_at").
		From("vacancy_responses").
		Where(sq.Eq{"vacancy_id": vacancyID, "candidate_id": candidateID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetResponse query: %w", err)
	}

	var resp domain.VacancyResponse
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&resp.ID, &resp.VacancyID, &resp.CandidateID, &resp.Message, &resp.IsRead, &resp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResponseNotFound
		}
		return nil, fmt.Errorf("scan vacancy response: %w", err)
	}
	return &resp, nil
}

// ListResponses retrieves all applications to a vacancy, newest first.
func (r *VacancyRepository) ListResponses(ctx context.Context, vacancyID string) ([]*domain.VacancyResponse, error) {
	query, args, err := psql.
		Select("id", "vacancy_id", "candidate_id", "message", "is_read", "created_at").
		From("vacancy_responses").
		Where(sq.Eq{"vacancy_id": vacancyID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListResponses query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vacancy responses: %w", err)
	}
	defer rows.Close()

	var responses []*domain.VacancyResponse
	for rows.Next() {
		var resp domain.VacancyResponse
		if err := rows.Scan(&resp.ID, &resp.VacancyID, &resp.CandidateID, &resp.Message, &resp.IsRead, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vacancy response: %w", err)
		}
		responses = append(responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return responses, nil
}

// CreateResponse inserts an application and bumps the vacancy's response
// counter in the same transaction. A duplicate application surfaces the
// unique constraint for the service to resolve.
func (r *VacancyRepository) CreateResponse(ctx context.Context, resp *domain.VacancyResponse) (*domain.VacancyResponse, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer rollback(ctx, tx)

	query, args, err := psql.
		Insert("vacancy_responses").
		Columns("vacancy_id", "candidate_id", "message").
		Values(resp.VacancyID, resp.CandidateID, resp.Message).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateResponse query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&resp.ID, &resp.IsRead, &resp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "vacancy_responses_vacancy_id_candidate_id_key") {
			return nil, domain.ErrValidation
		}
		return nil, fmt.Errorf("create vacancy response: %w", err)
	}

	countQuery, countArgs, err := psql.
		Update("vacancies").
		Set("responses_count", sq.Expr("responses_count + 1")).
		Where(sq.Eq{"id": resp.VacancyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build response counter query: %w", err)
	}
	if _, err := tx.Exec(ctx, countQuery, countArgs...); err != nil {
		return nil, fmt.Errorf("bump response counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return resp, nil
}

// MarkResponseRead flags an application as seen by the employer.
func (r *VacancyRepository) MarkResponseRead(ctx context.Context, responseID string) error {
	query, args, err := psql.
		Update("vacancy_responses").
		Set("is_read", true).
		Where(sq.Eq{"id": responseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkResponseRead query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark vacancy response read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResponseNotFound
	}
	return nil
}

// ListSpecialties retrieves all specialties ordered by name.
func (r *VacancyRepository) ListSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "description").
		From("specialties").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListSpecialties query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query specialties: %w", err)
	}
	defer rows.Close()

	var specialties []*domain.Specialty
	for rows.Next() {
		var sp domain.Specialty
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Description); err != nil {
			return nil, fmt.Errorf("scan specialty: %w", err)
		}
		specialties = append(specialties, &sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return specialties, nil
}

// GetSpecialtyBySlug retrieves one specialty by slug.
func (r *VacancyRepository) GetSpecialtyBySlug(ctx context.Context, specialtySlug string) (*domain.Specialty, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "description").
		From("specialties").
		Where(sq.Eq{"slug": specialtySlug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetSpecialtyBySlug query: %w", err)
	}

	var sp domain.Specialty
	err = r.pool.QueryRow(ctx, query, args...).Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpecialtyNotFound
		}
		return nil, fmt.Errorf("scan specialty: %w", err)
	}
	return &sp, nil
}

// GetSpecialtyByID retrieves one specialty by ID.
func (r *VacancyRepository) GetSpecialtyByID(ctx context.Context, specialtyID string) (*domain.Specialty, error) {
	query, args, err := psql.
		Select("id", "name", "slug", "description").
		From("specialties").
		Where(sq.Eq{"id": specialtyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetSpecialtyByID query: %w", err)
	}

	var sp domain.Specialty
	err = r.pool.QueryRow(ctx, query, args...).Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpecialtyNotFound
		}
		return nil, fmt.Errorf("scan specialty: %w", err)
	}
	return &sp, nil
}
