package domain

import (
	"regexp"
	"time"
)

// phonePattern телефон клиента: ровно 10 цифр
var phonePattern = regexp.MustCompile(`^\d{10}$`)

// IsValidPhone проверяет формат телефона
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// SelectionState рабочий черновик выбора пользователя.
// Date и Slot сбрасываются вместе: смена даты делает ранее выбранный
// час недействительным.
type SelectionState struct {
	Date  *time.Time
	Slot  *TimeSlot
	Phone string
}

// SetDate устанавливает дату и сбрасывает выбранный слот
func (s *SelectionState) SetDate(date time.Time) {
	d := date
	s.Date = &d
	s.Slot = nil
}

// SetSlot устанавливает выбранный слот
func (s *SelectionState) SetSlot(slot TimeSlot) {
	sl := slot
	s.Slot = &sl
}

// Reset полностью очищает выбор
func (s *SelectionState) Reset() {
	s.Date = nil
	s.Slot = nil
	s.Phone = ""
}

// Complete возвращает true, когда выбор готов к коммиту:
// выбраны дата и слот, телефон корректен
func (s *SelectionState) Complete() bool {
	return s.Date != nil && s.Slot != nil && IsValidPhone(s.Phone)
}
