package salonservice

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
	"github.com/m04kA/SMC-ReservationCore/internal/testsupport/salonstub"
	"github.com/m04kA/SMC-ReservationCore/pkg/ptr"
)

const testToken = "stub-token"

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// recordLogger записывает сообщения для проверки логирования клиента
type recordLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordLogger) logf(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+" "+fmt.Sprintf(format, v...))
}

func (l *recordLogger) Info(format string, v ...interface{})  { l.logf("INFO", format, v...) }
func (l *recordLogger) Warn(format string, v ...interface{})  { l.logf("WARN", format, v...) }
func (l *recordLogger) Error(format string, v ...interface{}) { l.logf("ERROR", format, v...) }

func (l *recordLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}

func newTestClient(t *testing.T) (*Client, *salonstub.Server) {
	t.Helper()

	stub := salonstub.New(testToken)
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	client := NewClient(server.URL, testToken, 5*time.Second, nil, noopLogger{})
	return client, stub
}

func TestClient_GetService(t *testing.T) {
	client, stub := newTestClient(t)
	stub.AddService(salonstub.Service{
		ID:              "svc-1",
		Name:            "Haircut",
		Category:        "hair",
		Price:           499,
		DurationMinutes: 60,
		Active:          true,
	})

	svc, err := client.GetService(context.Background(), "svc-1")
	require.NoError(t, err)

	assert.Equal(t, "svc-1", svc.ID)
	assert.Equal(t, "Haircut", svc.Name)
	assert.Equal(t, 499.0, svc.Price)
	assert.True(t, svc.Active)
}

func TestClient_GetService_NotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetService(context.Background(), "missing")
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestClient_GetService_Unauthorized(t *testing.T) {
	_, stub := newTestClient(t)

	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "wrong-token", 5*time.Second, nil, noopLogger{})

	_, err := client.GetService(context.Background(), "svc-1")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_GetBookedSlots(t *testing.T) {
	client, stub := newTestClient(t)
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	stub.Book("svc-1", date, 14)
	stub.Book("svc-1", date, 16)
	stub.Book("svc-2", date, 14) // другая услуга, не попадает в выборку

	intervals, err := client.GetBookedSlots(context.Background(), "svc-1", date)
	require.NoError(t, err)

	require.Len(t, intervals, 2)
	assert.Equal(t, 14, intervals[0].StartHour())
	assert.Equal(t, 16, intervals[1].StartHour())
}

func TestClient_VerifySlotAvailable(t *testing.T) {
	client, stub := newTestClient(t)
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	stub.Book("svc-1", date, 14)

	taken, err := client.VerifySlotAvailable(context.Background(), "svc-1", date, domain.NewTimeSlot(14))
	require.NoError(t, err)
	assert.False(t, taken)

	free, err := client.VerifySlotAvailable(context.Background(), "svc-1", date, domain.NewTimeSlot(15))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestClient_CreateBooking(t *testing.T) {
	client, stub := newTestClient(t)
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	req := &CreateBookingRequest{
		Service:       "svc-1",
		Phone:         "9876543210",
		Date:          date.Format(domain.DateFormat),
		StartTime:     time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
		Status:        "pending",
		PaymentMethod: "pay_after_service",
		PaymentStatus: "pending",
		TotalAmount:   499,
		ClientRef:     "ref-1",
	}

	booking, err := client.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "svc-1", booking.ServiceID)
	assert.Equal(t, "9876543210", booking.Phone)
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.Equal(t, 1, stub.BookingCount())
}

func TestClient_CreateBooking_Conflict(t *testing.T) {
	client, stub := newTestClient(t)
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	stub.Book("svc-1", date, 14)

	req := &CreateBookingRequest{
		Service:   "svc-1",
		Phone:     "9876543210",
		Date:      date.Format(domain.DateFormat),
		StartTime: time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
		Status:    "pending",
		ClientRef: "ref-1",
	}

	_, err := client.CreateBooking(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 0, stub.BookingCount())
}

func TestClient_LogsRequestOutcomes(t *testing.T) {
	stub := salonstub.New(testToken)
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	log := &recordLogger{}
	client := NewClient(server.URL, testToken, 5*time.Second, nil, log)

	stub.AddService(salonstub.Service{ID: "svc-1", Name: "Haircut", Price: 499, Active: true})

	_, err := client.GetService(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.True(t, log.contains("fetched service svc-1"))

	_, err = client.GetService(context.Background(), "missing")
	require.ErrorIs(t, err, ErrServiceNotFound)
	assert.True(t, log.contains("service missing not found"))

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err = client.VerifySlotAvailable(context.Background(), "svc-1", date, domain.NewTimeSlot(14))
	require.NoError(t, err)
	assert.True(t, log.contains("available=true"))

	// Сетевой сбой попадает в лог уровнем ERROR
	server.Close()
	_, err = client.VerifySlotAvailable(context.Background(), "svc-1", date, domain.NewTimeSlot(14))
	require.Error(t, err)
	assert.True(t, log.contains("ERROR VerifySlotAvailable: request failed"))
}

func TestClient_CreateBooking_IdempotentRetry(t *testing.T) {
	client, stub := newTestClient(t)
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	req := &CreateBookingRequest{
		Service:           "svc-1",
		Phone:             "9876543210",
		Date:              date.Format(domain.DateFormat),
		StartTime:         time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		EndTime:           time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
		Status:            "confirmed",
		PaymentMethod:     "razorpay",
		PaymentStatus:     "paid",
		TotalAmount:       499,
		ClientRef:         "ref-retry",
		RazorpayOrderID:   ptr.Ptr("order-1"),
		RazorpayPaymentID: ptr.Ptr("pay-1"),
		RazorpaySignature: ptr.Ptr("sig-1"),
	}

	first, err := client.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	// Повтор с тем же clientRef не создаёт второе бронирование,
	// хотя слот формально уже занят первым запросом
	second, err := client.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, stub.BookingCount())
}
