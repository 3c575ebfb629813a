package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Результаты проверки слота для лейбла result
const (
	VerifyResultFree  = "free"
	VerifyResultTaken = "taken"
	VerifyResultError = "error"
)

// Исходы платежного шага для лейбла outcome
const (
	PaymentOutcomeOrderCreated = "order_created"
	PaymentOutcomeCancelled    = "cancelled"
	PaymentOutcomeVerified     = "verified"
	PaymentOutcomeRejected     = "rejected"
	PaymentOutcomeError        = "error"
)

// Metrics prometheus-метрики клиента бронирования.
// Все коллекторы регистрируются в DefaultRegisterer при создании.
type Metrics struct {
	serviceName string

	httpRequestDuration *prometheus.HistogramVec
	stateTransitions    *prometheus.CounterVec
	slotVerifications   *prometheus.CounterVec
	bookingsCreated     *prometheus.CounterVec
	paymentOutcomes     *prometheus.CounterVec
}

// New создает и регистрирует набор метрик для указанного имени сервиса
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reservation_http_client_request_duration_seconds",
				Help:    "Duration of outgoing HTTP requests to collaborator services",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "target", "method", "code"},
		),

		stateTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_state_transitions_total",
				Help: "State machine transitions of the reservation orchestrator",
			},
			[]string{"service", "from", "to"},
		),

		slotVerifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_slot_verifications_total",
				Help: "Narrow slot availability re-checks by result",
			},
			[]string{"service", "result"},
		),

		bookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_bookings_created_total",
				Help: "Bookings successfully created, by payment method",
			},
			[]string{"service", "payment_method"},
		),

		paymentOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_payment_outcomes_total",
				Help: "Outcomes of online payment attempts",
			},
			[]string{"service", "outcome"},
		),
	}

	prometheus.MustRegister(
		m.httpRequestDuration,
		m.stateTransitions,
		m.slotVerifications,
		m.bookingsCreated,
		m.paymentOutcomes,
	)

	return m
}

// ObserveHTTPRequest записывает длительность исходящего HTTP запроса
func (m *Metrics) ObserveHTTPRequest(target, method, code string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(m.serviceName, target, method, code).Observe(seconds)
}

// IncStateTransition инкрементирует счетчик переходов конечного автомата
func (m *Metrics) IncStateTransition(from, to string) {
	m.stateTransitions.WithLabelValues(m.serviceName, from, to).Inc()
}

// IncSlotVerification инкрементирует счетчик проверок слота
func (m *Metrics) IncSlotVerification(result string) {
	m.slotVerifications.WithLabelValues(m.serviceName, result).Inc()
}

// IncBookingCreated инкрементирует счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(paymentMethod string) {
	m.bookingsCreated.WithLabelValues(m.serviceName, paymentMethod).Inc()
}

// IncPaymentOutcome инкрементирует счетчик исходов платежей
func (m *Metrics) IncPaymentOutcome(outcome string) {
	m.paymentOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}
