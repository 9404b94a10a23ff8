package service

import (
	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
)

// validateWeeklyCapacity проверяет недельную квоту пары (пользователь, предмет).
// current - число уже существующих слотов пары (без редактируемого),
// inserting - добавит ли фиксация новую строку в пару.
func validateWeeklyCapacity(subject *model.Subject, current int, inserting bool) error {
	prospective := current
	if inserting {
		prospective++
	}

	if prospective > subject.MaxSessionsPerWeek {
		return apperror.Conflictf(
			"subject %q allows only %d session(s) per week; %d already scheduled",
			subject.Name, subject.MaxSessionsPerWeek, current,
		)
	}

	return nil
}

// findOverlap возвращает первый слот дня, пересекающийся с кандидатом.
// Слоты приходят отсортированными по началу и ID, поэтому результат
// детерминирован.
func findOverlap(start, end model.TimeOfDay, others []*model.DaySlot) *model.DaySlot {
	for _, other := range others {
		if model.Overlaps(start, end, other.StartTime, other.EndTime) {
			return other
		}
	}
	return nil
}

// overlapConflict строит ошибку конфликта по найденному слоту
func overlapConflict(conflict *model.DaySlot) error {
	label := conflict.SubjectName
	if label == "" {
		label = "another subject"
	}
	return apperror.Conflictf(
		"time slot overlaps with %s (%s - %s)",
		label, conflict.StartTime.Short(), conflict.EndTime.Short(),
	)
}
