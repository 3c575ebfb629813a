package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
)

// AvailabilityClient интерфейс клиента занятых интервалов
type AvailabilityClient interface {
	// GetBookedSlots получает занятые интервалы для пары (услуга, дата)
	GetBookedSlots(ctx context.Context, serviceID string, date time.Time) ([]domain.BookedInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
