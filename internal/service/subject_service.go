package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
)

// Допустимые пределы недельной квоты предмета
const (
	minSessionsPerWeek = 1
	maxSessionsPerWeek = 10
)

// SubjectService CRUD предметов с проверкой уникальности названия
// и стражем удаления
type SubjectService struct {
	subjects SubjectStore
	logger   *zap.Logger
}

func NewSubjectService(subjects SubjectStore, logger *zap.Logger) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		logger:   logger,
	}
}

type CreateSubjectInput struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	MaxSessionsPerWeek int    `json:"max_sessions_per_week"`
}

type UpdateSubjectInput struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	MaxSessionsPerWeek *int    `json:"max_sessions_per_week"`
}

// ensureNameFree страж уникальности названия предмета
func (s *SubjectService) ensureNameFree(ctx context.Context, name string, excludeID int64) error {
	inUse, err := s.subjects.NameInUse(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.Conflictf("a subject named %q already exists", name)
	}
	return nil
}

func validateSessionsPerWeek(max int) error {
	if max < minSessionsPerWeek || max > maxSessionsPerWeek {
		return apperror.Validationf(
			"max_sessions_per_week must be between %d and %d, got: %d",
			minSessionsPerWeek, maxSessionsPerWeek, max,
		)
	}
	return nil
}

// Create создаёт новый предмет
func (s *SubjectService) Create(ctx context.Context, in CreateSubjectInput) (*model.Subject, error) {
	if in.Name == "" {
		return nil, apperror.Validationf("name is required")
	}

	max := in.MaxSessionsPerWeek
	if max == 0 {
		max = minSessionsPerWeek
	}
	if err := validateSessionsPerWeek(max); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		Name:               in.Name,
		Description:        in.Description,
		MaxSessionsPerWeek: max,
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// Get получает предмет по ID
func (s *SubjectService) Get(ctx context.Context, id int64) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperror.NotFoundf("subject with id %d not found", id)
	}
	return subject, nil
}

// List получает все предметы
func (s *SubjectService) List(ctx context.Context) ([]*model.Subject, error) {
	return s.subjects.GetAll(ctx)
}

// Update обновляет заполненные поля предмета
func (s *SubjectService) Update(ctx context.Context, id int64, in UpdateSubjectInput) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperror.NotFoundf("subject with id %d not found", id)
	}

	if in.Name != nil && *in.Name != subject.Name {
		if err := s.ensureNameFree(ctx, *in.Name, id); err != nil {
			return nil, err
		}
		subject.Name = *in.Name
	}
	if in.Description != nil {
		subject.Description = *in.Description
	}
	if in.MaxSessionsPerWeek != nil {
		if err := validateSessionsPerWeek(*in.MaxSessionsPerWeek); err != nil {
			return nil, err
		}
		subject.MaxSessionsPerWeek = *in.MaxSessionsPerWeek
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info("Subject updated", zap.Int64("subject_id", id))
	return subject, nil
}

// Remove удаляет предмет если на него не ссылаются слоты расписания
func (s *SubjectService) Remove(ctx context.Context, id int64) error {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if subject == nil {
		return apperror.NotFoundf("subject with id %d not found", id)
	}

	hasSlots, err := s.subjects.HasSlots(ctx, id)
	if err != nil {
		return err
	}
	if hasSlots {
		return apperror.Conflictf("cannot delete subject %q because it has schedule slots assigned", subject.Name)
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Subject deleted", zap.Int64("subject_id", id))
	return nil
}
