package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// TimeOfDay время суток в минутах от полуночи, диапазон [0, 1440)
type TimeOfDay int

const minutesPerDay = 24 * 60

// Границы рабочего окна расписания
const (
	OpeningTime TimeOfDay = 6 * 60  // 06:00
	ClosingTime TimeOfDay = 22 * 60 // 22:00
)

// Принимаем HH:MM и HH:MM:SS, 24-часовой формат
var timeOfDayPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)

// ParseTimeOfDay разбирает строку времени в формате HH:MM или HH:MM:SS.
// Секунды допускаются на входе, но каноническое значение хранится
// с точностью до минуты.
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	m := timeOfDayPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, fmt.Errorf("time %q is not in HH:MM or HH:MM:SS format (24-hour)", text)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	return TimeOfDay(hours*60 + minutes), nil
}

// String каноническая запись HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60)
}

// Short краткая запись HH:MM для сообщений
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Valid проверяет что значение попадает в сутки
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// WithinOperatingWindow проверяет попадание в рабочее окно 06:00-22:00,
// обе границы включительно
func (t TimeOfDay) WithinOperatingWindow() bool {
	return t >= OpeningTime && t <= ClosingTime
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [start, end).
// Слоты впритык (один кончается когда начинается другой) не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// PG конвертирует в pgtype.Time для записи в колонку time
func (t TimeOfDay) PG() pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * 60 * 1_000_000, Valid: true}
}

// TimeOfDayFromPG восстанавливает значение из колонки time
func TimeOfDayFromPG(t pgtype.Time) TimeOfDay {
	return TimeOfDay(t.Microseconds / 1_000_000 / 60)
}

// MarshalJSON сериализует время в каноническом виде
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}
