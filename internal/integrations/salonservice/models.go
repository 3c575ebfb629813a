package salonservice

import (
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
)

// serviceResponse модель услуги в API салона
type serviceResponse struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	Active          bool    `json:"isActive"`
}

func (r *serviceResponse) toDomain() *domain.Service {
	return &domain.Service{
		ID:              r.ID,
		Name:            r.Name,
		Category:        r.Category,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Active:          r.Active,
	}
}

// bookedSlot занятый интервал в ответе getBookedSlots
type bookedSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// bookedSlotsResponse ответ широкой выборки занятых интервалов
type bookedSlotsResponse struct {
	BookedSlots []bookedSlot `json:"bookedSlots"`
}

// availabilityResponse ответ узкой проверки одного слота
type availabilityResponse struct {
	Available bool `json:"available"`
}

// CreateBookingRequest тело запроса на создание бронирования.
// Поля повторяют контракт POST /booking/newBooking.
type CreateBookingRequest struct {
	Service       string    `json:"service"`
	Phone         string    `json:"phone"`
	Date          string    `json:"date"` // YYYY-MM-DD
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   float64   `json:"totalAmount"`

	// Идемпотентный ключ попытки коммита
	ClientRef string `json:"clientRef"`

	// Идентификаторы платежного шлюза (только для онлайн-оплаты)
	RazorpayOrderID   *string `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature *string `json:"razorpaySignature,omitempty"`
}

// bookingResponse модель созданного бронирования в ответе API
type bookingResponse struct {
	ID            string    `json:"_id"`
	Service       string    `json:"service"`
	Phone         string    `json:"phone"`
	Date          string    `json:"date"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   float64   `json:"totalAmount"`
	ClientRef     string    `json:"clientRef"`

	RazorpayOrderID   *string `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature *string `json:"razorpaySignature,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *bookingResponse) toDomain() (*domain.Booking, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:                r.ID,
		ServiceID:         r.Service,
		Phone:             r.Phone,
		Date:              date,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		Status:            domain.BookingStatus(r.Status),
		PaymentStatus:     domain.PaymentStatus(r.PaymentStatus),
		PaymentMethod:     domain.PaymentMethod(r.PaymentMethod),
		TotalAmount:       r.TotalAmount,
		RazorpayOrderID:   r.RazorpayOrderID,
		RazorpayPaymentID: r.RazorpayPaymentID,
		RazorpaySignature: r.RazorpaySignature,
		ClientRef:         r.ClientRef,
		CreatedAt:         r.CreatedAt,
	}, nil
}
