package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
)

// UseCase use case для получения слотов-кандидатов на дату.
// Пересчитывается при каждой смене даты или набора занятых интервалов,
// результат между вызовами не кэшируется.
type UseCase struct {
	availabilityClient AvailabilityClient
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityClient AvailabilityClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityClient: availabilityClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения слотов-кандидатов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем занятые интервалы с бэкенда.
	// Широкая выборка - оптимизация отображения, не проверка безопасности:
	// при сбое деградируем до пустого набора и продолжаем. Коммит в любом
	// случае защищён узкой проверкой слота.
	degraded := false
	booked, err := uc.availabilityClient.GetBookedSlots(ctx, req.ServiceID, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to fetch booked slots, degrading to empty set: %v", err)
		booked = nil
		degraded = true
	}

	// 4. Вычисляем слоты-кандидаты
	slots := candidateSlots(req.Date, req.Hours, booked, now)

	uc.logger.Info("GetAvailableSlots: %d candidate slots for service=%s, date=%s (degraded=%v)",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat), degraded)

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
		Degraded:  degraded,
	}, nil
}
