// Package salonstub поднимает in-memory бэкенд салона для тестов:
// услуги, занятые интервалы, бронирования и платежные маршруты.
// Поведение управляется из теста: занятость слотов, результат проверки
// оплаты, отказ в создании заказа.
package salonstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationCore/pkg/types"
)

const dateFormat = "2006-01-02"

// Service услуга в ответах стаба
type Service struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	Active          bool    `json:"isActive"`
}

// Booking бронирование, сохранённое стабом
type Booking struct {
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

type bookedSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Server in-memory бэкенд салона
type Server struct {
	mu sync.Mutex

	authToken string

	services map[string]Service
	bookings []Booking

	nextBookingID   int
	nextOrderID     int
	failCreateOrder bool
	verifyPayment   bool

	router *mux.Router
}

// New создает стаб. authToken - пустая строка отключает проверку авторизации.
func New(authToken string) *Server {
	s := &Server{
		authToken:     authToken,
		services:      make(map[string]Service),
		verifyPayment: true,
	}

	router := mux.NewRouter()
	router.HandleFunc("/services/{id}", s.handleGetService).Methods(http.MethodGet)
	router.HandleFunc("/booking/getBookedSlots", s.handleGetBookedSlots).Methods(http.MethodGet)
	router.HandleFunc("/booking/newBooking", s.handleNewBooking).Methods(http.MethodPost)
	router.HandleFunc("/booking/payments/create-order", s.handleCreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/booking/payments/verify-payment", s.handleVerifyPayment).Methods(http.MethodPost)
	s.router = router

	return s
}

// Handler возвращает http.Handler стаба для httptest.NewServer
func (s *Server) Handler() http.Handler {
	return s.router
}

// AddService регистрирует услугу
func (s *Server) AddService(svc Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

// Book занимает часовой слот услуги на дату, минуя HTTP
func (s *Server) Book(serviceID string, date time.Time, hour int) {
	start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBookingID++
	s.bookings = append(s.bookings, Booking{
		ID:        fmt.Sprintf("seed-%d", s.nextBookingID),
		Service:   serviceID,
		Date:      date.Format(dateFormat),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    "confirmed",
	})
}

// SetVerifyPayment задаёт результат серверной проверки подписи
func (s *Server) SetVerifyPayment(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifyPayment = ok
}

// SetFailCreateOrder включает отказ в создании заказа
func (s *Server) SetFailCreateOrder(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreateOrder = fail
}

// BookingCount возвращает число бронирований, созданных через HTTP
func (s *Server) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, b := range s.bookings {
		if !strings.HasPrefix(b.ID, "seed-") {
			count++
		}
	}
	return count
}

// LastBooking возвращает последнее созданное бронирование
func (s *Server) LastBooking() (Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.bookings) == 0 {
		return Booking{}, false
	}
	return s.bookings[len(s.bookings)-1], true
}

func (s *Server) authorized(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+s.authToken
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	svc, ok := s.services[mux.Vars(r)["id"]]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, svc)
}

// handleGetBookedSlots обслуживает оба режима одного маршрута:
// широкую выборку занятых интервалов и узкую проверку одного слота
// (когда запрос несёт границы startTime/endTime).
func (s *Server) handleGetBookedSlots(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	serviceID := query.Get("service")
	date := query.Get("date")

	s.mu.Lock()
	var taken []bookedSlot
	for _, b := range s.bookings {
		if b.Service == serviceID && b.Date == date && b.Status != "cancelled" {
			taken = append(taken, bookedSlot{StartTime: b.StartTime, EndTime: b.EndTime})
		}
	}
	s.mu.Unlock()

	startTime := query.Get("startTime")
	endTime := query.Get("endTime")
	if startTime == "" || endTime == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"bookedSlots": taken})
		return
	}

	available := true
	for _, slot := range taken {
		if types.NewTimeString(slot.StartTime).String() == startTime {
			available = false
			break
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (s *Server) handleNewBooking(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req Booking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Идемпотентность: повтор с тем же clientRef возвращает уже
	// созданное бронирование, не создавая второе
	if req.ClientRef != "" {
		for _, b := range s.bookings {
			if b.ClientRef == req.ClientRef {
				writeJSON(w, http.StatusOK, b)
				return
			}
		}
	}

	for _, b := range s.bookings {
		if b.Service == req.Service && b.Date == req.Date && b.Status != "cancelled" &&
			b.StartTime.Hour() == req.StartTime.Hour() {
			w.WriteHeader(http.StatusConflict)
			return
		}
	}

	s.nextBookingID++
	req.ID = fmt.Sprintf("bk-%d", s.nextBookingID)
	req.CreatedAt = time.Now().UTC()
	s.bookings = append(s.bookings, req)

	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Service  string `json:"service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreateOrder {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.nextOrderID++
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       fmt.Sprintf("order_%d", s.nextOrderID),
		"amount":   req.Amount,
		"currency": req.Currency,
	})
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	success := s.verifyPayment && req.Signature != ""
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"success": success})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
