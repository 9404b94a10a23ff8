package model

import "fmt"

// Weekday день недели расписания
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays канонический порядок дней для сортировки
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday разбирает название дня недели
func ParseWeekday(text string) (Weekday, error) {
	for _, d := range Weekdays {
		if string(d) == text {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", text)
}

// Index возвращает позицию дня в неделе (0 = Monday)
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}
