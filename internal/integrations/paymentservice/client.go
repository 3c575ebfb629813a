package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежных эндпоинтов бэкенда салона.
// Сам шлюз (Razorpay) живёт на бэкенде; клиент видит только два маршрута:
// создание заказа и серверную проверку подписи оплаты.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр платежного клиента.
// transport может быть nil - тогда используется http.DefaultTransport.
func NewClient(baseURL, authToken string, timeout time.Duration, transport http.RoundTripper, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

// CreateOrder создает заказ платежного шлюза на стороне бэкенда.
// Бронирование при этом НЕ создаётся: заказ и бронирование остаются
// разными ресурсами до проверки оплаты.
func (c *Client) CreateOrder(ctx context.Context, request *CreateOrderRequest) (*Order, error) {
	if request.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrOrderRejected)
	}

	resp, err := c.post(ctx, "/booking/payments/create-order", request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest:
		c.log.Warn("CreateOrder: backend rejected order for service=%s amount=%d", request.Service, request.Amount)
		return nil, fmt.Errorf("%w: backend rejected order request", ErrOrderRejected)
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warn("CreateOrder: authentication rejected for service=%s", request.Service)
		return nil, ErrUnauthorized
	default:
		return nil, unexpectedStatus(resp)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id is empty", ErrInvalidResponse)
	}

	c.log.Info("CreateOrder: order %s created (amount=%d %s)", order.ID, order.Amount, order.Currency)

	return &order, nil
}

// VerifyPayment выполняет серверную проверку подписи оплаты.
// false означает, что подпись не подтверждена: бронирование создавать нельзя.
// Ошибка означает "не проверено" - также запрет на создание бронирования.
func (c *Client) VerifyPayment(ctx context.Context, request *VerifyPaymentRequest) (bool, error) {
	resp, err := c.post(ctx, "/booking/payments/verify-payment", request)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, unexpectedStatus(resp)
	}

	var payload verifyPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("VerifyPayment: success=%v for order %s", payload.Success, request.RazorpayOrderID)

	return payload.Success, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("request to %s failed: %v", path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	return resp, nil
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}
