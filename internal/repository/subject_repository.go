package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
	"github.com/jeanmvides21/academic-back/internal/repository/base"
)

type SubjectRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewSubjectRepository(pool *pgxpool.Pool, logger *zap.Logger) *SubjectRepository {
	return &SubjectRepository{
		pool:   pool,
		logger: logger,
	}
}

// Create создаёт новый предмет
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (name, description, max_sessions_per_week)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(
		ctx, query,
		subject.Name,
		subject.Description,
		subject.MaxSessionsPerWeek,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)

	if err != nil {
		if base.IsConstraintViolation(err) {
			return apperror.Conflictf("a subject named %q already exists", subject.Name)
		}
		r.logger.Error("Failed to insert subject into DB",
			zap.String("name", subject.Name),
			zap.Error(err))
		return fmt.Errorf("create subject: %w", err)
	}

	r.logger.Info("Subject inserted successfully",
		zap.Int64("subject_id", subject.ID),
		zap.String("name", subject.Name))

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	query := `
		SELECT id, name, description, max_sessions_per_week, created_at, updated_at
		FROM subjects
		WHERE id = $1
	`

	var subject model.Subject
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Description,
		&subject.MaxSessionsPerWeek,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return &subject, nil
}

// GetAll получает все предметы
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*model.Subject, error) {
	query := `
		SELECT id, name, description, max_sessions_per_week, created_at, updated_at
		FROM subjects
		ORDER BY id
	`

	q := base.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*model.Subject
	for rows.Next() {
		var subject model.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Description,
			&subject.MaxSessionsPerWeek,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}

	return subjects, nil
}

// Update обновляет предмет
func (r *SubjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, description = $2, max_sessions_per_week = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`

	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(
		ctx, query,
		subject.Name,
		subject.Description,
		subject.MaxSessionsPerWeek,
		subject.ID,
	).Scan(&subject.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("subject not found")
		}
		if base.IsConstraintViolation(err) {
			return apperror.Conflictf("a subject named %q already exists", subject.Name)
		}
		return fmt.Errorf("update subject: %w", err)
	}

	return nil
}

// Delete удаляет предмет
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM subjects WHERE id = $1`

	q := base.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return apperror.Conflictf("cannot delete subject because it has schedule slots assigned")
		}
		return fmt.Errorf("delete subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subject not found")
	}

	return nil
}

// NameInUse проверяет занято ли название другим предметом
func (r *SubjectRepository) NameInUse(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM subjects
			WHERE name = $1 AND ($2 = 0 OR id <> $2)
		)
	`

	var exists bool
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subject name in use: %w", err)
	}

	return exists, nil
}

// HasSlots проверяет есть ли у предмета назначенные слоты расписания
func (r *SubjectRepository) HasSlots(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM schedule_slots
			WHERE subject_id = $1
		)
	`

	var exists bool
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subject has slots: %w", err)
	}

	return exists, nil
}
