package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
	"github.com/jeanmvides21/academic-back/internal/repository/base"
)

// weekdayOrder выражение сортировки дней в календарном порядке
const weekdayOrder = `array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], s.day)`

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create создаёт новый слот расписания
func (r *SlotRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (day, start_time, end_time, user_id, subject_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(
		ctx, query,
		slot.Day,
		slot.StartTime.PG(),
		slot.EndTime.PG(),
		slot.UserID,
		slot.SubjectID,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		if base.IsConstraintViolation(err) {
			// Страховочное ограничение БД сработало раньше прикладной проверки
			return apperror.Conflictf("schedule slot conflicts with an existing slot")
		}
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
	query := `
		SELECT id, day, start_time, end_time, user_id, subject_id, created_at, updated_at
		FROM schedule_slots
		WHERE id = $1
	`

	var (
		slot       model.ScheduleSlot
		start, end pgtype.Time
	)
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.Day,
		&start,
		&end,
		&slot.UserID,
		&slot.SubjectID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	slot.StartTime = model.TimeOfDayFromPG(start)
	slot.EndTime = model.TimeOfDayFromPG(end)

	return &slot, nil
}

// GetByUserAndDay получает слоты пользователя на день вместе с названием
// предмета, отсортированные по началу и ID. excludeID исключает
// редактируемый слот из выборки, 0 - без исключения.
func (r *SlotRepository) GetByUserAndDay(ctx context.Context, userID int64, day model.Weekday, excludeID int64) ([]*model.DaySlot, error) {
	query := `
		SELECT s.id, s.day, s.start_time, s.end_time, s.user_id, s.subject_id, s.created_at, s.updated_at,
		       COALESCE(sub.name, '')
		FROM schedule_slots s
		LEFT JOIN subjects sub ON s.subject_id = sub.id
		WHERE s.user_id = $1 AND s.day = $2 AND ($3 = 0 OR s.id <> $3)
		ORDER BY s.start_time, s.id
	`

	q := base.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID, day, excludeID)
	if err != nil {
		return nil, fmt.Errorf("get slots by user and day: %w", err)
	}
	defer rows.Close()

	var slots []*model.DaySlot
	for rows.Next() {
		var (
			slot       model.DaySlot
			start, end pgtype.Time
		)
		err := rows.Scan(
			&slot.ID,
			&slot.Day,
			&start,
			&end,
			&slot.UserID,
			&slot.SubjectID,
			&slot.CreatedAt,
			&slot.UpdatedAt,
			&slot.SubjectName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan day slot: %w", err)
		}
		slot.StartTime = model.TimeOfDayFromPG(start)
		slot.EndTime = model.TimeOfDayFromPG(end)
		slots = append(slots, &slot)
	}

	return slots, nil
}

// CountByUserAndSubject считает слоты пары (пользователь, предмет).
// excludeID исключает редактируемый слот, 0 - без исключения.
func (r *SlotRepository) CountByUserAndSubject(ctx context.Context, userID, subjectID, excludeID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM schedule_slots
		WHERE user_id = $1 AND subject_id = $2 AND ($3 = 0 OR id <> $3)
	`

	var count int
	q := base.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, userID, subjectID, excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count slots by user and subject: %w", err)
	}

	return count, nil
}

// Update обновляет только заполненные поля патча
func (r *SlotRepository) Update(ctx context.Context, id int64, patch model.SlotPatch) error {
	if patch.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)

	if patch.Day != nil {
		args = append(args, *patch.Day)
		sets = append(sets, fmt.Sprintf("day = $%d", len(args)))
	}
	if patch.StartTime != nil {
		args = append(args, patch.StartTime.PG())
		sets = append(sets, fmt.Sprintf("start_time = $%d", len(args)))
	}
	if patch.EndTime != nil {
		args = append(args, patch.EndTime.PG())
		sets = append(sets, fmt.Sprintf("end_time = $%d", len(args)))
	}
	if patch.UserID != nil {
		args = append(args, *patch.UserID)
		sets = append(sets, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if patch.SubjectID != nil {
		args = append(args, *patch.SubjectID)
		sets = append(sets, fmt.Sprintf("subject_id = $%d", len(args)))
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE schedule_slots SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	q := base.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		if base.IsConstraintViolation(err) {
			return apperror.Conflictf("schedule slot conflicts with an existing slot")
		}
		return fmt.Errorf("update slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Delete удаляет слот, возвращает false если слота нет
func (r *SlotRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM schedule_slots WHERE id = $1`

	q := base.QuerierFrom(ctx, r.pool)
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

const slotViewSelect = `
	SELECT s.id, s.day, s.start_time, s.end_time, s.user_id, s.subject_id, s.created_at, s.updated_at,
	       u.id, u.cedula, u.name, u.email, u.phone, u.role,
	       sub.id, sub.name, sub.description, sub.max_sessions_per_week
	FROM schedule_slots s
	LEFT JOIN users u ON s.user_id = u.id
	LEFT JOIN subjects sub ON s.subject_id = sub.id
`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSlotView собирает обогащённое представление слота,
// срезы остаются nil если внешняя строка отсутствует
func scanSlotView(row rowScanner) (*model.SlotView, error) {
	var (
		view       model.SlotView
		start, end pgtype.Time

		userID                          *int64
		userCedula, userName            *string
		userEmail, userPhone, userRole  *string
		subjectID                       *int64
		subjectName, subjectDescription *string
		subjectMax                      *int
	)

	err := row.Scan(
		&view.ID,
		&view.Day,
		&start,
		&end,
		&view.UserID,
		&view.SubjectID,
		&view.CreatedAt,
		&view.UpdatedAt,
		&userID,
		&userCedula,
		&userName,
		&userEmail,
		&userPhone,
		&userRole,
		&subjectID,
		&subjectName,
		&subjectDescription,
		&subjectMax,
	)
	if err != nil {
		return nil, err
	}

	view.StartTime = model.TimeOfDayFromPG(start)
	view.EndTime = model.TimeOfDayFromPG(end)

	if userID != nil {
		view.User = &model.UserSnapshot{
			ID:     *userID,
			Cedula: *userCedula,
			Name:   *userName,
			Email:  *userEmail,
			Phone:  *userPhone,
			Role:   *userRole,
		}
	}
	if subjectID != nil {
		view.Subject = &model.SubjectSnapshot{
			ID:                 *subjectID,
			Name:               *subjectName,
			Description:        *subjectDescription,
			MaxSessionsPerWeek: *subjectMax,
		}
	}

	return &view, nil
}

// GetView получает обогащённое представление слота по ID
func (r *SlotRepository) GetView(ctx context.Context, id int64) (*model.SlotView, error) {
	query := slotViewSelect + ` WHERE s.id = $1`

	q := base.QuerierFrom(ctx, r.pool)
	view, err := scanSlotView(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot view: %w", err)
	}

	return view, nil
}

// ListViews получает все слоты с вложенными срезами,
// отсортированные по дню недели и началу
func (r *SlotRepository) ListViews(ctx context.Context) ([]*model.SlotView, error) {
	query := slotViewSelect + ` ORDER BY ` + weekdayOrder + `, s.start_time`

	q := base.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slot views: %w", err)
	}
	defer rows.Close()

	var views []*model.SlotView
	for rows.Next() {
		view, err := scanSlotView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot view: %w", err)
		}
		views = append(views, view)
	}

	return views, nil
}

// ListViewsByUser получает слоты пользователя с вложенными срезами
func (r *SlotRepository) ListViewsByUser(ctx context.Context, userID int64) ([]*model.SlotView, error) {
	query := slotViewSelect + ` WHERE s.user_id = $1 ORDER BY ` + weekdayOrder + `, s.start_time`

	q := base.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list slot views by user: %w", err)
	}
	defer rows.Close()

	var views []*model.SlotView
	for rows.Next() {
		view, err := scanSlotView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot view: %w", err)
		}
		views = append(views, view)
	}

	return views, nil
}
