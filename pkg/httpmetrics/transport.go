package httpmetrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationCore/pkg/metrics"
)

// Transport обёртка над http.RoundTripper, записывающая метрики исходящих запросов.
// Если metrics == nil, работает как прозрачный pass-through.
type Transport struct {
	next    http.RoundTripper
	metrics *metrics.Metrics
	target  string
}

// Wrap оборачивает next в транспорт с метриками.
// target - имя сервиса-коллаборатора для лейбла (например, "salon_service").
func Wrap(next http.RoundTripper, m *metrics.Metrics, target string) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if m == nil {
		return next
	}
	return &Transport{
		next:    next,
		metrics: m,
		target:  target,
	}
}

// RoundTrip выполняет запрос и записывает длительность и код ответа
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	t.metrics.ObserveHTTPRequest(t.target, req.Method, code, time.Since(start).Seconds())

	return resp, err
}
