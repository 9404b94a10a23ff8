package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
)

func newSubjectService() (*SubjectService, *mockSubjectStore, *mockSlotStore) {
	users := newMockUserStore()
	subjects := newMockSubjectStore()
	slots := newMockSlotStore(users, subjects)
	return NewSubjectService(subjects, zap.NewNop()), subjects, slots
}

func TestSubjectService_Create(t *testing.T) {
	svc, _, _ := newSubjectService()

	subject, err := svc.Create(context.Background(), CreateSubjectInput{
		Name:               "Calculus",
		Description:        "Differential and integral calculus",
		MaxSessionsPerWeek: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, subject.ID)
	assert.Equal(t, 3, subject.MaxSessionsPerWeek)

	// Нулевая квота означает значение по умолчанию
	subject, err = svc.Create(context.Background(), CreateSubjectInput{Name: "Physics"})
	require.NoError(t, err)
	assert.Equal(t, 1, subject.MaxSessionsPerWeek)
}

func TestSubjectService_Create_Validation(t *testing.T) {
	svc, _, _ := newSubjectService()

	_, err := svc.Create(context.Background(), CreateSubjectInput{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	for _, max := range []int{-1, 11} {
		_, err := svc.Create(context.Background(), CreateSubjectInput{Name: "Chemistry", MaxSessionsPerWeek: max})
		require.Error(t, err, "max %d", max)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "must be between 1 and 10")
	}
}

func TestSubjectService_Create_DuplicateName(t *testing.T) {
	svc, subjects, _ := newSubjectService()
	subjects.add(model.Subject{Name: "Calculus", MaxSessionsPerWeek: 1})

	_, err := svc.Create(context.Background(), CreateSubjectInput{Name: "Calculus"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), `"Calculus"`)
}

func TestSubjectService_Update(t *testing.T) {
	svc, subjects, _ := newSubjectService()
	subjects.add(model.Subject{Name: "Calculus", MaxSessionsPerWeek: 1})
	subjects.add(model.Subject{Name: "Physics", MaxSessionsPerWeek: 1})

	name := "Physics"
	_, err := svc.Update(context.Background(), 1, UpdateSubjectInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	max := 11
	_, err = svc.Update(context.Background(), 1, UpdateSubjectInput{MaxSessionsPerWeek: &max})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	max = 5
	subject, err := svc.Update(context.Background(), 1, UpdateSubjectInput{MaxSessionsPerWeek: &max})
	require.NoError(t, err)
	assert.Equal(t, 5, subject.MaxSessionsPerWeek)
}

func TestSubjectService_Remove(t *testing.T) {
	svc, subjects, slots := newSubjectService()
	subjects.add(model.Subject{Name: "Calculus", MaxSessionsPerWeek: 1})
	subjects.add(model.Subject{Name: "Physics", MaxSessionsPerWeek: 1})
	slots.add(model.ScheduleSlot{Day: model.Monday, StartTime: 480, EndTime: 540, UserID: 1, SubjectID: 1})

	// Предмет со слотами расписания удалить нельзя
	err := svc.Remove(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), `"Calculus"`)

	require.NoError(t, svc.Remove(context.Background(), 2))

	err = svc.Remove(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
