package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
	"github.com/m04kA/SMC-ReservationCore/pkg/types"
)

// Request модель запроса на получение слотов-кандидатов
type Request struct {
	ServiceID string                // ID услуги
	Date      time.Time             // Дата, для которой считаются слоты
	Hours     domain.OperatingHours // Рабочие часы салона
}

// Response модель ответа со слотами-кандидатами
type Response struct {
	Date      time.Time
	ServiceID string
	Slots     []Slot // Слоты в порядке возрастания часа

	// Degraded выставляется, когда занятые интервалы получить не удалось
	// и слоты посчитаны по пустому набору. Отображаемая деградация,
	// не ошибка: коммит всё равно защищён узкой проверкой.
	Degraded bool
}

// Slot слот-кандидат для отображения
type Slot struct {
	Hour      int              // Час начала слота
	StartTime types.TimeString // Отображаемое время ("10:00")
	Available bool             // false, если час совпадает с занятым интервалом
}

// AvailableSlots возвращает только доступные для выбора слоты
func (r *Response) AvailableSlots() []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(r.Slots))
	for _, slot := range r.Slots {
		if slot.Available {
			result = append(result, domain.NewTimeSlot(slot.Hour))
		}
	}
	return result
}

// IsAvailable возвращает true, если указанный час присутствует
// среди кандидатов и доступен
func (r *Response) IsAvailable(hour int) bool {
	for _, slot := range r.Slots {
		if slot.Hour == hour {
			return slot.Available
		}
	}
	return false
}
