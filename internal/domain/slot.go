package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationCore/pkg/types"
)

// TimeSlot часовой слот в пределах рабочего дня.
// Значимый объект: не хранится, пересчитывается при каждой смене даты
// или набора занятых интервалов.
type TimeSlot struct {
	Hour int
}

// NewTimeSlot создает слот для указанного часа
func NewTimeSlot(hour int) TimeSlot {
	return TimeSlot{Hour: hour}
}

// Display возвращает отображаемое время слота ("10:00")
func (s TimeSlot) Display() types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:00", s.Hour))
}

// StartOn возвращает момент начала слота в указанную дату
// (в таймзоне даты)
func (s TimeSlot) StartOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), s.Hour, 0, 0, 0, date.Location())
}

// EndOn возвращает момент конца слота: всегда начало плюс один час
func (s TimeSlot) EndOn(date time.Time) time.Time {
	return s.StartOn(date).Add(time.Hour)
}

// BookedInterval занятый интервал, полученный с бэкенда для пары (услуга, дата).
// Локально никогда не мутируется, используется только для пометки часов занятыми.
type BookedInterval struct {
	StartTime time.Time
	EndTime   time.Time
}

// StartHour возвращает час начала интервала
func (b BookedInterval) StartHour() int {
	return b.StartTime.Hour()
}

// OperatingHours рабочие часы салона: слоты существуют в [StartHour, EndHour)
type OperatingHours struct {
	StartHour int
	EndHour   int
}

// DefaultOperatingHours возвращает рабочие часы по умолчанию
func DefaultOperatingHours() OperatingHours {
	return OperatingHours{
		StartHour: DefaultOperatingStartHour,
		EndHour:   DefaultOperatingEndHour,
	}
}

// Contains возвращает true, если час попадает в рабочее окно
func (h OperatingHours) Contains(hour int) bool {
	return hour >= h.StartHour && hour < h.EndHour
}

// Valid возвращает true для корректного рабочего окна
func (h OperatingHours) Valid() bool {
	return h.StartHour >= 0 && h.EndHour <= 24 && h.StartHour < h.EndHour
}
