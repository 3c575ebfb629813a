package paymentservice

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

	"github.com/m04kA/SMC-ReservationCore/internal/testsupport/salonstub"
)

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

	stub := salonstub.New("")
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "", 5*time.Second, nil, noopLogger{})
	return client, stub
}

func TestClient_CreateOrder(t *testing.T) {
	client, _ := newTestClient(t)

	order, err := client.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Service:  "svc-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestClient_CreateOrder_NonPositiveAmount(t *testing.T) {
	client, _ := newTestClient(t)

	// Нулевая сумма отклоняется локально, без похода на бэкенд
	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   0,
		Currency: "INR",
		Service:  "svc-1",
	})
	require.ErrorIs(t, err, ErrOrderRejected)
}

func TestClient_CreateOrder_Rejected(t *testing.T) {
	client, stub := newTestClient(t)
	stub.SetFailCreateOrder(true)

	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Service:  "svc-1",
	})
	require.ErrorIs(t, err, ErrOrderRejected)
}

func TestClient_LogsOrderLifecycle(t *testing.T) {
	stub := salonstub.New("")
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	log := &recordLogger{}
	client := NewClient(server.URL, "", 5*time.Second, nil, log)

	order, err := client.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Service:  "svc-1",
	})
	require.NoError(t, err)
	assert.True(t, log.contains("order "+order.ID+" created"))

	stub.SetFailCreateOrder(true)
	_, err = client.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Service:  "svc-1",
	})
	require.ErrorIs(t, err, ErrOrderRejected)
	assert.True(t, log.contains("WARN CreateOrder: backend rejected"))

	ok, err := client.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   order.ID,
		RazorpayPaymentID: "pay-1",
		RazorpaySignature: "sig-1",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, log.contains("VerifyPayment: success=true for order "+order.ID))

	// Сетевой сбой попадает в лог уровнем ERROR
	server.Close()
	_, err = client.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   order.ID,
		RazorpayPaymentID: "pay-1",
		RazorpaySignature: "sig-1",
	})
	require.Error(t, err)
	assert.True(t, log.contains("ERROR request to /booking/payments/verify-payment failed"))
}

func TestClient_VerifyPayment(t *testing.T) {
	client, _ := newTestClient(t)

	ok, err := client.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order-1",
		RazorpayPaymentID: "pay-1",
		RazorpaySignature: "sig-1",
	})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_VerifyPayment_Rejected(t *testing.T) {
	client, stub := newTestClient(t)
	stub.SetVerifyPayment(false)

	ok, err := client.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order-1",
		RazorpayPaymentID: "pay-1",
		RazorpaySignature: "sig-1",
	})
	require.NoError(t, err)
	assert.False(t, ok)
}
