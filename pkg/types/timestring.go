package types

import "time"

// timeStringLayout формат времени для TimeString
const timeStringLayout = "15:04"

// TimeString время в формате "HH:MM" (например, "10:00" или "19:30").
// Используется для передачи времени слота без привязки к дате и таймзоне.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}
