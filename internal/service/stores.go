package service

import (
	"context"

	"github.com/jeanmvides21/academic-back/internal/model"
)

// Интерфейсы хранилищ, которыми пользуются сервисы.
// Боевые реализации - pgx-репозитории, в тестах - in-memory заглушки.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	CedulaInUse(ctx context.Context, cedula string, excludeID int64) (bool, error)
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
}

type SubjectStore interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
	GetAll(ctx context.Context) ([]*model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id int64) error
	NameInUse(ctx context.Context, name string, excludeID int64) (bool, error)
	HasSlots(ctx context.Context, id int64) (bool, error)
}

type SlotStore interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error)
	GetByUserAndDay(ctx context.Context, userID int64, day model.Weekday, excludeID int64) ([]*model.DaySlot, error)
	CountByUserAndSubject(ctx context.Context, userID, subjectID, excludeID int64) (int, error)
	Update(ctx context.Context, id int64, patch model.SlotPatch) error
	Delete(ctx context.Context, id int64) (bool, error)
	GetView(ctx context.Context, id int64) (*model.SlotView, error)
	ListViews(ctx context.Context) ([]*model.SlotView, error)
	ListViewsByUser(ctx context.Context, userID int64) ([]*model.SlotView, error)
}

// TxScope сериализует последовательность проверка-затем-запись
// по пользователю-владельцу
type TxScope interface {
	WithinUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error
}
