package salonservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-ReservationCore/internal/domain"
)

// Client клиент для работы с API салона: услуги, занятые интервалы,
// создание бронирований
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента API салона.
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

// GetService получает услугу по идентификатору
func (c *Client) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	endpoint := fmt.Sprintf("%s/services/%s", c.baseURL, url.PathEscape(serviceID))

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("GetService: request failed for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		c.log.Info("GetService: service %s not found", serviceID)
		return nil, ErrServiceNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warn("GetService: authentication rejected for service=%s", serviceID)
		return nil, ErrUnauthorized
	default:
		return nil, unexpectedStatus(resp)
	}

	var service serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("GetService: fetched service %s (%s)", service.ID, service.Name)

	return service.toDomain(), nil
}

// GetBookedSlots получает занятые интервалы для пары (услуга, дата).
// Широкая выборка: используется для отображения сетки слотов и не является
// гарантией доступности в момент коммита.
func (c *Client) GetBookedSlots(ctx context.Context, serviceID string, date time.Time) ([]domain.BookedInterval, error) {
	query := url.Values{}
	query.Set("date", date.Format(domain.DateFormat))
	query.Set("service", serviceID)

	endpoint := fmt.Sprintf("%s/booking/getBookedSlots?%s", c.baseURL, query.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("GetBookedSlots: request failed for service=%s date=%s: %v",
			serviceID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var payload bookedSlotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	intervals := make([]domain.BookedInterval, 0, len(payload.BookedSlots))
	for _, slot := range payload.BookedSlots {
		intervals = append(intervals, domain.BookedInterval{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	c.log.Info("GetBookedSlots: %d booked intervals for service=%s date=%s",
		len(intervals), serviceID, date.Format(domain.DateFormat))

	return intervals, nil
}

// VerifySlotAvailable выполняет узкую авторитетную проверку одного слота
// непосредственно перед коммитом. Тот же маршрут, что и широкая выборка,
// но с границами startTime/endTime одного часа; ответ несёт available.
//
// Любая сетевая ошибка означает "не проверено": вызывающая сторона обязана
// трактовать её как запрет коммита (fail closed), а не как доступность.
func (c *Client) VerifySlotAvailable(ctx context.Context, serviceID string, date time.Time, slot domain.TimeSlot) (bool, error) {
	endSlot := domain.NewTimeSlot(slot.Hour + 1)

	query := url.Values{}
	query.Set("date", date.Format(domain.DateFormat))
	query.Set("service", serviceID)
	query.Set("startTime", slot.Display().String())
	query.Set("endTime", endSlot.Display().String())

	endpoint := fmt.Sprintf("%s/booking/getBookedSlots?%s", c.baseURL, query.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("VerifySlotAvailable: request failed for service=%s %s %s: %v",
			serviceID, date.Format(domain.DateFormat), slot.Display(), err)
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, unexpectedStatus(resp)
	}

	var payload availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("VerifySlotAvailable: service=%s %s %s -> available=%v",
		serviceID, date.Format(domain.DateFormat), slot.Display(), payload.Available)

	return payload.Available, nil
}

// CreateBooking создает бронирование.
// Запрос несёт идемпотентный ключ ClientRef: повторная отправка того же
// запроса после сбоя не создаёт второе бронирование.
func (c *Client) CreateBooking(ctx context.Context, request *CreateBookingRequest) (*domain.Booking, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/booking/newBooking", c.baseURL)

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CreateBooking: request failed for clientRef=%s: %v", request.ClientRef, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusConflict:
		c.log.Warn("CreateBooking: slot conflict for %s %s (clientRef=%s)",
			request.Date, request.StartTime.Format("15:04"), request.ClientRef)
		return nil, ErrSlotConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warn("CreateBooking: authentication rejected (clientRef=%s)", request.ClientRef)
		return nil, ErrUnauthorized
	default:
		return nil, unexpectedStatus(resp)
	}

	var payload bookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	booking, err := payload.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse booking: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreateBooking: booking %s created (clientRef=%s)", booking.ID, booking.ClientRef)

	return booking, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return req, nil
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}
