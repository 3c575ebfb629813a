package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
)

// candidateSlots вычисляет слоты-кандидаты для даты.
// Для каждого целого часа в рабочем окне [hours.StartHour, hours.EndHour):
//   - час исключается, если его начало не строго позже now (прошедшее
//     время не бронируется);
//   - час помечается недоступным, если какой-либо занятый интервал
//     начинается в этот же час.
//
// Коллизии считаются с часовой гранулярностью: слоты фиксированной
// длительности в один час, подчасовые пересечения протоколом не моделируются.
// Результат отсортирован по возрастанию часа. Пустой список - корректный
// исход "нет доступного времени", не ошибка.
func candidateSlots(
	date time.Time,
	hours domain.OperatingHours,
	booked []domain.BookedInterval,
	now time.Time,
) []Slot {
	slots := make([]Slot, 0, hours.EndHour-hours.StartHour)

	for hour := hours.StartHour; hour < hours.EndHour; hour++ {
		slot := domain.NewTimeSlot(hour)

		// Слот должен начинаться строго в будущем
		if !slot.StartOn(date).After(now) {
			continue
		}

		slots = append(slots, Slot{
			Hour:      hour,
			StartTime: slot.Display(),
			Available: !isHourBooked(hour, booked),
		})
	}

	return slots
}

// isHourBooked проверяет совпадение часа с началом занятого интервала
func isHourBooked(hour int, booked []domain.BookedInterval) bool {
	for _, interval := range booked {
		if interval.StartHour() == hour {
			return true
		}
	}
	return false
}
