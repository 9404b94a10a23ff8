package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
	"github.com/jeanmvides21/academic-back/internal/repository/base"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (cedula, name, email, phone, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(
		ctx, query,
		user.Cedula,
		user.Name,
		user.Email,
		user.Phone,
		user.Role,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if base.IsConstraintViolation(err) {
			// Страховка от гонки мимо прикладной проверки уникальности
			return apperror.Conflictf("a user with this cedula or email already exists")
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, cedula, name, email, phone, role, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Cedula,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// GetAll получает всех пользователей
func (r *UserRepository) GetAll(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, cedula, name, email, phone, role, password_hash, created_at, updated_at
		FROM users
		ORDER BY id
	`

	q := base.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID,
			&user.Cedula,
			&user.Name,
			&user.Email,
			&user.Phone,
			&user.Role,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, nil
}

// Update обновляет пользователя
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET cedula = $1, name = $2, email = $3, phone = $4, role = $5, password_hash = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`

	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(
		ctx, query,
		user.Cedula,
		user.Name,
		user.Email,
		user.Phone,
		user.Role,
		user.PasswordHash,
		user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("user not found")
		}
		if base.IsConstraintViolation(err) {
			return apperror.Conflictf("a user with this cedula or email already exists")
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

// Delete удаляет пользователя
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	q := base.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return apperror.Conflictf("cannot delete user because schedule slots are assigned")
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// CedulaInUse проверяет занята ли цедула другим пользователем
func (r *UserRepository) CedulaInUse(ctx context.Context, cedula string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE cedula = $1 AND ($2 = 0 OR id <> $2)
		)
	`

	var exists bool
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, cedula, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check cedula in use: %w", err)
	}

	return exists, nil
}

// EmailInUse проверяет занят ли email другим пользователем
func (r *UserRepository) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE email = $1 AND ($2 = 0 OR id <> $2)
		)
	`

	var exists bool
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email in use: %w", err)
	}

	return exists, nil
}
