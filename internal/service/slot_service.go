package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
)

// SlotService движок валидации и разрешения конфликтов расписания.
// Мутация проходит цепочку проверок и останавливается на первой ошибке:
// владелец -> предмет -> нормализация времени -> диапазон -> рабочее окно
// -> квота -> пересечения -> запись -> обогащённое чтение.
type SlotService struct {
	users    UserStore
	subjects SubjectStore
	slots    SlotStore
	tx       TxScope
	logger   *zap.Logger
}

func NewSlotService(users UserStore, subjects SubjectStore, slots SlotStore, tx TxScope, logger *zap.Logger) *SlotService {
	return &SlotService{
		users:    users,
		subjects: subjects,
		slots:    slots,
		tx:       tx,
		logger:   logger,
	}
}

type CreateSlotInput struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	UserID    int64  `json:"user_id"`
	SubjectID int64  `json:"subject_id"`
}

// UpdateSlotInput частичное обновление: nil-поле наследуется
// из текущей записи
type UpdateSlotInput struct {
	Day       *string `json:"day"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	UserID    *int64  `json:"user_id"`
	SubjectID *int64  `json:"subject_id"`
}

// slotChanges какие стороны слота реально меняются
type slotChanges struct {
	day     bool
	times   bool
	user    bool
	subject bool
}

func (c slotChanges) any() bool {
	return c.day || c.times || c.user || c.subject
}

// pairChanged меняется ли пара (пользователь, предмет), к которой
// привязана недельная квота
func (c slotChanges) pairChanged() bool {
	return c.user || c.subject
}

// parseSlotPatch переводит сырые поля запроса в типизированный патч
func parseSlotPatch(in UpdateSlotInput) (model.SlotPatch, error) {
	var patch model.SlotPatch

	if in.Day != nil {
		day, err := model.ParseWeekday(*in.Day)
		if err != nil {
			return model.SlotPatch{}, apperror.Validationf("invalid day: %v", err)
		}
		patch.Day = &day
	}
	if in.StartTime != nil {
		start, err := model.ParseTimeOfDay(*in.StartTime)
		if err != nil {
			return model.SlotPatch{}, apperror.Validationf("invalid start_time: %v", err)
		}
		patch.StartTime = &start
	}
	if in.EndTime != nil {
		end, err := model.ParseTimeOfDay(*in.EndTime)
		if err != nil {
			return model.SlotPatch{}, apperror.Validationf("invalid end_time: %v", err)
		}
		patch.EndTime = &end
	}
	patch.UserID = in.UserID
	patch.SubjectID = in.SubjectID

	return patch, nil
}

// mergeSlot чистая функция слияния: эффективная запись после применения
// патча плюс набор реально изменившихся сторон. Поле, присланное со
// старым значением, изменением не считается.
func mergeSlot(current model.ScheduleSlot, patch model.SlotPatch) (model.ScheduleSlot, slotChanges) {
	eff := current
	var ch slotChanges

	if patch.Day != nil && *patch.Day != current.Day {
		eff.Day = *patch.Day
		ch.day = true
	}
	if patch.StartTime != nil && *patch.StartTime != current.StartTime {
		eff.StartTime = *patch.StartTime
		ch.times = true
	}
	if patch.EndTime != nil && *patch.EndTime != current.EndTime {
		eff.EndTime = *patch.EndTime
		ch.times = true
	}
	if patch.UserID != nil && *patch.UserID != current.UserID {
		eff.UserID = *patch.UserID
		ch.user = true
	}
	if patch.SubjectID != nil && *patch.SubjectID != current.SubjectID {
		eff.SubjectID = *patch.SubjectID
		ch.subject = true
	}

	return eff, ch
}

// diffPatch патч только из полей, которыми eff отличается от current -
// в хранилище уходят именно изменённые поля
func diffPatch(current, eff model.ScheduleSlot) model.SlotPatch {
	var patch model.SlotPatch

	if eff.Day != current.Day {
		patch.Day = &eff.Day
	}
	if eff.StartTime != current.StartTime {
		patch.StartTime = &eff.StartTime
	}
	if eff.EndTime != current.EndTime {
		patch.EndTime = &eff.EndTime
	}
	if eff.UserID != current.UserID {
		patch.UserID = &eff.UserID
	}
	if eff.SubjectID != current.SubjectID {
		patch.SubjectID = &eff.SubjectID
	}

	return patch
}

// validateTimeRange общие темпоральные проверки кандидата
func validateTimeRange(start, end model.TimeOfDay) error {
	if end <= start {
		return apperror.Validationf("end_time must be after start_time")
	}
	if !start.WithinOperatingWindow() {
		return apperror.Validationf(
			"start_time must be between %s and %s, got: %s",
			model.OpeningTime.Short(), model.ClosingTime.Short(), start.Short(),
		)
	}
	if !end.WithinOperatingWindow() {
		return apperror.Validationf(
			"end_time must be between %s and %s, got: %s",
			model.OpeningTime.Short(), model.ClosingTime.Short(), end.Short(),
		)
	}
	return nil
}

// Create создаёт слот расписания после полной цепочки проверок
func (s *SlotService) Create(ctx context.Context, in CreateSlotInput) (*model.SlotView, error) {
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundf("user with id %d not found", in.UserID)
	}

	subject, err := s.subjects.GetByID(ctx, in.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperror.NotFoundf("subject with id %d not found", in.SubjectID)
	}

	day, err := model.ParseWeekday(in.Day)
	if err != nil {
		return nil, apperror.Validationf("invalid day: %v", err)
	}
	start, err := model.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, apperror.Validationf("invalid start_time: %v", err)
	}
	end, err := model.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return nil, apperror.Validationf("invalid end_time: %v", err)
	}

	if err := validateTimeRange(start, end); err != nil {
		return nil, err
	}

	var view *model.SlotView
	err = s.tx.WithinUserLock(ctx, in.UserID, func(ctx context.Context) error {
		count, err := s.slots.CountByUserAndSubject(ctx, in.UserID, in.SubjectID, 0)
		if err != nil {
			return err
		}
		if err := validateWeeklyCapacity(subject, count, true); err != nil {
			return err
		}

		others, err := s.slots.GetByUserAndDay(ctx, in.UserID, day, 0)
		if err != nil {
			return err
		}
		if conflict := findOverlap(start, end, others); conflict != nil {
			return overlapConflict(conflict)
		}

		slot := &model.ScheduleSlot{
			Day:       day,
			StartTime: start,
			EndTime:   end,
			UserID:    in.UserID,
			SubjectID: in.SubjectID,
		}
		if err := s.slots.Create(ctx, slot); err != nil {
			return err
		}

		view, err = s.slots.GetView(ctx, slot.ID)
		if err != nil {
			return err
		}
		if view == nil {
			return fmt.Errorf("slot %d not readable after insert", slot.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.checkViewIntegrity(view)
	s.logger.Info("Schedule slot created",
		zap.Int64("slot_id", view.ID),
		zap.Int64("user_id", view.UserID),
		zap.Int64("subject_id", view.SubjectID),
		zap.String("day", string(view.Day)),
		zap.String("time", view.StartTime.Short()+"-"+view.EndTime.Short()),
	)

	return view, nil
}

// Update применяет частичное обновление: сливает патч с текущей записью
// и перепроверяет только изменившиеся стороны
func (s *SlotService) Update(ctx context.Context, id int64, in UpdateSlotInput) (*model.SlotView, error) {
	current, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFoundf("schedule slot with id %d not found", id)
	}

	patch, err := parseSlotPatch(in)
	if err != nil {
		return nil, err
	}

	eff, ch := mergeSlot(*current, patch)
	if !ch.any() {
		// Ничего не меняется - отдаём текущее представление без записи
		view, err := s.slots.GetView(ctx, id)
		if err != nil {
			return nil, err
		}
		if view == nil {
			return nil, apperror.NotFoundf("schedule slot with id %d not found", id)
		}
		s.checkViewIntegrity(view)
		return view, nil
	}

	if ch.user {
		user, err := s.users.GetByID(ctx, eff.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NotFoundf("user with id %d not found", eff.UserID)
		}
	}

	// Предмет пост-слияния нужен и для проверки существования,
	// и для квоты при смене пары
	var subject *model.Subject
	if ch.pairChanged() {
		subject, err = s.subjects.GetByID(ctx, eff.SubjectID)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, apperror.NotFoundf("subject with id %d not found", eff.SubjectID)
		}
	}

	if ch.times {
		if err := validateTimeRange(eff.StartTime, eff.EndTime); err != nil {
			return nil, err
		}
	}

	var view *model.SlotView
	err = s.tx.WithinUserLock(ctx, eff.UserID, func(ctx context.Context) error {
		if ch.pairChanged() {
			// Квота проверяется для пары пост-слияния; редактируемый слот
			// в её счётчик не входит, значит фиксация добавит строку
			count, err := s.slots.CountByUserAndSubject(ctx, eff.UserID, eff.SubjectID, id)
			if err != nil {
				return err
			}
			if err := validateWeeklyCapacity(subject, count, true); err != nil {
				return err
			}
		}

		if ch.day || ch.times || ch.user {
			others, err := s.slots.GetByUserAndDay(ctx, eff.UserID, eff.Day, id)
			if err != nil {
				return err
			}
			if conflict := findOverlap(eff.StartTime, eff.EndTime, others); conflict != nil {
				return overlapConflict(conflict)
			}
		}

		if err := s.slots.Update(ctx, id, diffPatch(*current, eff)); err != nil {
			return err
		}

		view, err = s.slots.GetView(ctx, id)
		if err != nil {
			return err
		}
		if view == nil {
			return fmt.Errorf("slot %d not readable after update", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.checkViewIntegrity(view)
	s.logger.Info("Schedule slot updated",
		zap.Int64("slot_id", id),
		zap.Int64("user_id", view.UserID),
		zap.Int64("subject_id", view.SubjectID),
	)

	return view, nil
}

// Remove удаляет слот, инварианты от отсутствия не зависят
func (s *SlotService) Remove(ctx context.Context, id int64) error {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if slot == nil {
		return apperror.NotFoundf("schedule slot with id %d not found", id)
	}

	ok, err := s.slots.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFoundf("schedule slot with id %d not found", id)
	}

	s.logger.Info("Schedule slot deleted", zap.Int64("slot_id", id))
	return nil
}

// Get получает обогащённое представление слота
func (s *SlotService) Get(ctx context.Context, id int64) (*model.SlotView, error) {
	view, err := s.slots.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperror.NotFoundf("schedule slot with id %d not found", id)
	}

	s.checkViewIntegrity(view)
	return view, nil
}

// List получает все слоты, отсортированные по дню недели и началу
func (s *SlotService) List(ctx context.Context) ([]*model.SlotView, error) {
	views, err := s.slots.ListViews(ctx)
	if err != nil {
		return nil, err
	}

	for _, view := range views {
		s.checkViewIntegrity(view)
	}
	return views, nil
}

// ListByUser получает слоты пользователя
func (s *SlotService) ListByUser(ctx context.Context, userID int64) ([]*model.SlotView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundf("user with id %d not found", userID)
	}

	views, err := s.slots.ListViewsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, view := range views {
		s.checkViewIntegrity(view)
	}
	return views, nil
}

// checkViewIntegrity пустой срез у слота означает осиротевшую ссылку -
// нарушение инварианта, о котором надо знать, а не молча отдавать null
func (s *SlotService) checkViewIntegrity(view *model.SlotView) {
	if view == nil {
		return
	}
	if view.User == nil {
		s.logger.Warn("Slot references missing user",
			zap.Int64("slot_id", view.ID),
			zap.Int64("user_id", view.UserID))
	}
	if view.Subject == nil {
		s.logger.Warn("Slot references missing subject",
			zap.Int64("slot_id", view.ID),
			zap.Int64("subject_id", view.SubjectID))
	}
}
