package domain

import (
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PayAfterService PaymentMethod = "pay_after_service"
	PayRazorpay     PaymentMethod = "razorpay"
	PayFree         PaymentMethod = "free"
)

// Booking бронирование, созданное на бэкенде.
// После создания ядро резервирования бронирование не изменяет:
// мутации - забота административной части бэкенда.
type Booking struct {
	ID        string
	ServiceID string
	Phone     string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	TotalAmount   float64

	// Идентификаторы платежного шлюза (только для онлайн-оплаты)
	RazorpayOrderID   *string
	RazorpayPaymentID *string
	RazorpaySignature *string

	// Идемпотентный ключ попытки коммита: повтор отправки после сбоя
	// несёт тот же ключ и не создаёт второе бронирование
	ClientRef string

	CreatedAt time.Time
}

// IsActive возвращает true, если бронирование не отменено
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsPaid возвращает true, если бронирование оплачено
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}
