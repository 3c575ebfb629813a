package reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
	"github.com/m04kA/SMC-ReservationCore/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationCore/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ReservationCore/internal/usecase/get_available_slots"
)

// SalonClient - клиент бэкенда салона
type SalonClient interface {
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
	VerifySlotAvailable(ctx context.Context, serviceID string, date time.Time, slot domain.TimeSlot) (bool, error)
	CreateBooking(ctx context.Context, request *salonservice.CreateBookingRequest) (*domain.Booking, error)
}

// PaymentClient - клиент платежного шлюза
type PaymentClient interface {
	CreateOrder(ctx context.Context, request *paymentservice.CreateOrderRequest) (*paymentservice.Order, error)
	VerifyPayment(ctx context.Context, request *paymentservice.VerifyPaymentRequest) (bool, error)
}

// SlotCatalog - сценарий построения каталога доступных часов
type SlotCatalog interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// TimeProvider - провайдер текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider - реальная реализация провайдера времени
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
