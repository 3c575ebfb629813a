package reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
	"github.com/m04kA/SMC-ReservationCore/internal/usecase/get_available_slots"
)

// Options - параметры сессии бронирования
type Options struct {
	ServiceID     string
	Hours         domain.OperatingHours
	Currency      string
	RazorpayKeyID string
	CustomerRef   string
}

// Snapshot - неизменяемый срез текущего состояния сессии.
// Возвращается наружу вместо прямого доступа к полям автомата.
type Snapshot struct {
	State           State
	Failure         *Failure
	Service         *domain.Service
	Date            *time.Time
	Slot            *domain.TimeSlot
	Phone           string
	Candidates      []get_available_slots.Slot
	CatalogDegraded bool
	Booking         *domain.Booking
}

// SelectedDate возвращает выбранную дату или zero time
func (s Snapshot) SelectedDate() time.Time {
	if s.Date == nil {
		return time.Time{}
	}
	return *s.Date
}

// HasCandidate сообщает, есть ли час в актуальном списке доступных
func (s Snapshot) HasCandidate(hour int) bool {
	for _, c := range s.Candidates {
		if c.Hour == hour && c.Available {
			return true
		}
	}
	return false
}
