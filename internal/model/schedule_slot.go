package model

import "time"

type ScheduleSlot struct {
	ID        int64     `json:"id"`
	Day       Weekday   `json:"day"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
	UserID    int64     `json:"user_id"`
	SubjectID int64     `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotView слот вместе со срезами пользователя и предмета.
// Срез может быть nil если внешняя запись исчезла - это нарушение
// инварианта, сервис его логирует.
type SlotView struct {
	ScheduleSlot
	User    *UserSnapshot    `json:"user"`
	Subject *SubjectSnapshot `json:"subject"`
}

// DaySlot слот в пределах одного дня с названием предмета,
// используется при проверке пересечений
type DaySlot struct {
	ScheduleSlot
	SubjectName string `json:"subject_name"`
}

// SlotPatch частичное обновление слота: nil-поле не трогается
type SlotPatch struct {
	Day       *Weekday
	StartTime *TimeOfDay
	EndTime   *TimeOfDay
	UserID    *int64
	SubjectID *int64
}

// Empty сообщает что патч не содержит ни одного поля
func (p SlotPatch) Empty() bool {
	return p.Day == nil && p.StartTime == nil && p.EndTime == nil && p.UserID == nil && p.SubjectID == nil
}
