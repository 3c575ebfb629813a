package reservation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationCore/internal/checkout"
	"github.com/m04kA/SMC-ReservationCore/internal/domain"
	"github.com/m04kA/SMC-ReservationCore/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationCore/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ReservationCore/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationCore/pkg/metrics"
	"github.com/m04kA/SMC-ReservationCore/pkg/ptr"
)

// Service оркестратор сессии бронирования: конечный автомат, который
// владеет черновиком выбора и единственный инициирует сетевые вызовы.
//
// Конкурентная модель: одна сетевая операция за раз. Пока операция
// выполняется, автомат помечен busy и параллельные операции получают
// ErrBusy. Cancel работает и во время busy: он инкрементирует epoch,
// и результат уже запущенной операции отбрасывается при возврате.
type Service struct {
	opts Options

	salonClient   SalonClient
	paymentClient PaymentClient
	widget        checkout.Widget
	slotCatalog   SlotCatalog
	timeProvider  TimeProvider
	logger        Logger
	metrics       *metrics.Metrics

	mu    sync.Mutex
	busy  bool
	epoch int

	state       State
	lastFailure *Failure

	service   *domain.Service
	selection domain.SelectionState
	catalog   *get_available_slots.Response

	// clientRef - идемпотентный ключ текущей попытки коммита.
	// Генерируется один раз при входе в AwaitingPaymentChoice; все
	// повторы создания бронирования несут тот же ключ.
	clientRef      string
	pendingBooking *salonservice.CreateBookingRequest
	confirmed      *domain.Booking

	// cancelInFlight прерывает контекст текущей платежной операции,
	// чтобы Cancel закрывал и открытый виджет
	cancelInFlight context.CancelFunc
}

// NewService создает оркестратор сессии бронирования
func NewService(
	opts Options,
	salonClient SalonClient,
	paymentClient PaymentClient,
	widget checkout.Widget,
	slotCatalog SlotCatalog,
	logger Logger,
	m *metrics.Metrics,
) *Service {
	if !opts.Hours.Valid() {
		opts.Hours = domain.DefaultOperatingHours()
	}

	return &Service{
		opts:          opts,
		salonClient:   salonClient,
		paymentClient: paymentClient,
		widget:        widget,
		slotCatalog:   slotCatalog,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		metrics:       m,
		state:         StateIdle,
	}
}

// Begin загружает услугу и открывает сессию.
// Услуга загружается один раз и дальше считается неизменяемой.
func (s *Service) Begin(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()

	if s.state != StateIdle || s.service != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrInvalidTransition
	}
	if s.busy {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrBusy
	}

	epoch := s.beginOpLocked()
	s.mu.Unlock()

	svc, err := s.salonClient.GetService(ctx, s.opts.ServiceID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if stale := s.endOpLocked(epoch); stale {
		return s.snapshotLocked(), ErrCancelled
	}

	if err != nil {
		s.logger.Error("Begin: failed to load service %s: %v", s.opts.ServiceID, err)
		s.failLocked(ReasonNetwork, msgServiceUnavailable)
		if errors.Is(err, salonservice.ErrServiceNotFound) {
			return s.snapshotLocked(), ErrServiceUnavailable
		}
		return s.snapshotLocked(), ErrInternal
	}
	if !svc.Active {
		s.logger.Warn("Begin: service %s is inactive", svc.ID)
		s.failLocked(ReasonValidation, msgServiceUnavailable)
		return s.snapshotLocked(), ErrServiceUnavailable
	}

	s.service = svc
	s.lastFailure = nil
	s.logger.Info("Begin: session opened for service=%s (%s, price=%.2f)", svc.ID, svc.Name, svc.Price)

	return s.snapshotLocked(), nil
}

// SelectDate выбирает дату и перестраивает каталог слотов-кандидатов.
// Прошедшая дата отклоняется локально, без сетевых вызовов.
// Смена даты всегда сбрасывает ранее выбранный час.
func (s *Service) SelectDate(ctx context.Context, date time.Time) (Snapshot, error) {
	s.mu.Lock()

	if err := s.requireStateLocked(StateIdle, StateDateSelected, StateTimeSelected, StateAwaitingPaymentChoice); err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}
	// Возврат из выбора оплаты допустим, пока нет несданного запроса:
	// собранный после оплаты запрос обязан уйти без изменений
	if s.state == StateAwaitingPaymentChoice && s.pendingBooking != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrInvalidTransition
	}

	// 1. Локальная валидация: дата не в прошлом (по календарному дню)
	if isPastDay(date, s.timeProvider.Now()) {
		s.failLocked(ReasonValidation, msgInvalidDate)
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrInvalidDate
	}

	// 2. Фиксируем выбор; час сбрасывается вместе со сменой даты
	s.selection.SetDate(date)
	s.catalog = nil
	s.lastFailure = nil
	s.setStateLocked(StateDateSelected)

	// 3. Широкая выборка занятых интервалов для отображения
	epoch := s.beginOpLocked()
	serviceID := s.opts.ServiceID
	hours := s.opts.Hours
	s.mu.Unlock()

	catalog, err := s.slotCatalog.Execute(ctx, &get_available_slots.Request{
		ServiceID: serviceID,
		Date:      date,
		Hours:     hours,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if stale := s.endOpLocked(epoch); stale {
		return s.snapshotLocked(), ErrCancelled
	}

	if err != nil {
		// Недостижимо при корректной конфигурации: сценарий деградирует
		// при сетевых сбоях сам и ошибается только на валидации входа
		s.logger.Error("SelectDate: slot catalog failed: %v", err)
		catalog = &get_available_slots.Response{Date: date, ServiceID: serviceID, Degraded: true}
	}
	s.catalog = catalog

	return s.snapshotLocked(), nil
}

// SelectTime выбирает час и подтверждает его узкой проверкой на бэкенде.
// Час вне актуального списка кандидатов отклоняется локально. Сбой
// проверки трактуется как "слот не подтверждён": выбор не фиксируется.
func (s *Service) SelectTime(ctx context.Context, hour int) (Snapshot, error) {
	s.mu.Lock()

	if err := s.requireStateLocked(StateDateSelected, StateTimeSelected); err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}

	// 1. Локальная проверка: час в рабочем окне и в актуальных кандидатах
	if !s.opts.Hours.Contains(hour) || s.selection.Date == nil || s.catalog == nil || !s.catalog.IsAvailable(hour) {
		s.failLocked(ReasonValidation, msgSlotNotCandidate)
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrSlotNotCandidate
	}

	// 2. Узкая проверка выбранного слота
	date := *s.selection.Date
	slot := domain.NewTimeSlot(hour)
	s.setStateLocked(StateVerifying)
	epoch := s.beginOpLocked()
	serviceID := s.opts.ServiceID
	s.mu.Unlock()

	available, err := s.salonClient.VerifySlotAvailable(ctx, serviceID, date, slot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if stale := s.endOpLocked(epoch); stale {
		return s.snapshotLocked(), ErrCancelled
	}

	if err != nil {
		s.incSlotVerification(metrics.VerifyResultError)
		s.logger.Error("SelectTime: slot verification unavailable: %v", err)
		s.failLocked(ReasonNetwork, msgVerifyUnavailable)
		s.setStateLocked(StateDateSelected)
		return s.snapshotLocked(), ErrVerifyUnavailable
	}

	if !available {
		s.incSlotVerification(metrics.VerifyResultTaken)
		s.logger.Info("SelectTime: slot %s on %s already taken",
			slot.Display(), date.Format(domain.DateFormat))
		s.failLocked(ReasonSlotTaken, msgSlotTaken)
		s.setStateLocked(StateDateSelected)
		s.refreshCatalogLocked(ctx, epoch)
		return s.snapshotLocked(), ErrSlotTaken
	}

	s.incSlotVerification(metrics.VerifyResultFree)
	s.selection.SetSlot(slot)
	s.lastFailure = nil
	s.setStateLocked(StateTimeSelected)

	return s.snapshotLocked(), nil
}

// SetPhone запоминает телефон клиента. Только локальная валидация.
func (s *Service) SetPhone(phone string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStateLocked(StateIdle, StateDateSelected, StateTimeSelected); err != nil {
		return s.snapshotLocked(), err
	}

	if !domain.IsValidPhone(phone) {
		s.failLocked(ReasonValidation, msgInvalidPhone)
		return s.snapshotLocked(), ErrInvalidPhone
	}

	s.selection.Phone = phone
	s.lastFailure = nil

	return s.snapshotLocked(), nil
}

// InitiateCommit начинает коммит: локально валидирует выбор, повторно
// проверяет слот на бэкенде и при успехе переводит сессию к выбору
// способа оплаты. Fail closed: без подтверждённого слота коммит запрещён.
func (s *Service) InitiateCommit(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()

	if err := s.requireStateLocked(StateTimeSelected); err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}

	// 1. Локальная валидация - до любых сетевых вызовов
	if !s.selection.Complete() {
		if s.selection.Date == nil || s.selection.Slot == nil {
			s.failLocked(ReasonValidation, msgNoSelection)
			defer s.mu.Unlock()
			return s.snapshotLocked(), ErrNoSelection
		}
		s.failLocked(ReasonValidation, msgInvalidPhone)
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrInvalidPhone
	}

	// 2. Повторная узкая проверка: между выбором часа и коммитом
	// слот мог занять другой клиент
	date := *s.selection.Date
	slot := *s.selection.Slot
	s.setStateLocked(StateVerifying)
	epoch := s.beginOpLocked()
	serviceID := s.opts.ServiceID
	s.mu.Unlock()

	available, err := s.salonClient.VerifySlotAvailable(ctx, serviceID, date, slot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if stale := s.endOpLocked(epoch); stale {
		return s.snapshotLocked(), ErrCancelled
	}

	if err != nil {
		s.incSlotVerification(metrics.VerifyResultError)
		s.logger.Error("InitiateCommit: slot verification unavailable: %v", err)
		s.failLocked(ReasonNetwork, msgVerifyUnavailable)
		s.setStateLocked(StateTimeSelected)
		return s.snapshotLocked(), ErrVerifyUnavailable
	}

	if !available {
		s.incSlotVerification(metrics.VerifyResultTaken)
		s.logger.Info("InitiateCommit: slot %s on %s taken before commit",
			slot.Display(), date.Format(domain.DateFormat))
		s.failLocked(ReasonSlotTaken, msgSlotTaken)
		s.selection.Slot = nil
		s.setStateLocked(StateDateSelected)
		s.refreshCatalogLocked(ctx, epoch)
		return s.snapshotLocked(), ErrSlotTaken
	}

	s.incSlotVerification(metrics.VerifyResultFree)
	s.clientRef = uuid.NewString()
	s.pendingBooking = nil
	s.lastFailure = nil
	s.setStateLocked(StateAwaitingPaymentChoice)

	return s.snapshotLocked(), nil
}

// ChoosePayLater создает бронирование с оплатой в салоне:
// статус pending, оплата pending, без платежного шага.
func (s *Service) ChoosePayLater(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()

	if err := s.requirePaymentChoiceLocked(); err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}

	payload := s.buildBookingLocked(domain.PayAfterService, domain.StatusPending, domain.PaymentPending, nil)

	return s.submitBookingLocked(ctx, payload)
}

// ChoosePayOnline проводит онлайн-оплату и создает бронирование.
// Порядок жёсткий: заказ шлюза -> виджет -> серверная проверка подписи ->
// создание бронирования. Оплаченное бронирование не создаётся без
// подтверждённой проверки подписи. Бесплатная услуга минует оплату.
func (s *Service) ChoosePayOnline(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()

	if err := s.requirePaymentChoiceLocked(); err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}

	// 1. Бесплатная услуга: платежный шаг не нужен
	if s.service.PriceMinorUnits() == 0 {
		payload := s.buildBookingLocked(domain.PayFree, domain.StatusConfirmed, domain.PaymentPaid, nil)
		return s.submitBookingLocked(ctx, payload)
	}

	amount := s.service.PriceMinorUnits()
	serviceID := s.opts.ServiceID
	phone := s.selection.Phone
	s.setStateLocked(StateCommitting)
	epoch := s.beginOpLocked()

	// Отмена сессии должна закрывать и открытый виджет
	ctx, cancelOp := context.WithCancel(ctx)
	defer cancelOp()
	s.cancelInFlight = cancelOp
	s.mu.Unlock()

	// 2. Заказ платежного шлюза. Заказ - не бронирование: при отмене
	// или сбое он остаётся на бэкенде бездействующим.
	order, err := s.paymentClient.CreateOrder(ctx, &paymentservice.CreateOrderRequest{
		Amount:   amount,
		Currency: s.opts.Currency,
		Service:  serviceID,
		Customer: s.opts.CustomerRef,
	})
	if err != nil {
		return s.paymentFailed(epoch, metrics.PaymentOutcomeError, ReasonPaymentFailed, msgPaymentFailed, ErrPaymentFailed,
			"ChoosePayOnline: create order failed: %v", err)
	}
	s.incPaymentOutcome(metrics.PaymentOutcomeOrderCreated)

	// 3. Виджет оплаты: блокируемся до единственного исхода
	result := s.widget.Open(ctx, checkout.Options{
		Key:      s.opts.RazorpayKeyID,
		Amount:   order.Amount,
		Currency: order.Currency,
		OrderID:  order.ID,
		Prefill:  checkout.Prefill{Contact: phone},
	})

	switch result.Outcome {
	case checkout.OutcomeCancelled:
		// Закрытие виджета - не ошибка: возврат к выбору способа
		// оплаты, бронирование не создаётся
		return s.paymentFailed(epoch, metrics.PaymentOutcomeCancelled, ReasonPaymentCancelled, msgPaymentCancelled, ErrPaymentCancelled,
			"ChoosePayOnline: payment dismissed for order %s", order.ID)
	case checkout.OutcomeError:
		return s.paymentFailed(epoch, metrics.PaymentOutcomeError, ReasonPaymentFailed, msgPaymentFailed, ErrPaymentFailed,
			"ChoosePayOnline: widget error for order %s: %v", order.ID, result.Err)
	}

	// 4. Серверная проверка подписи. Fail closed: сбой проверки
	// означает "не подтверждено", бронирование не создаётся.
	verified, err := s.paymentClient.VerifyPayment(ctx, &paymentservice.VerifyPaymentRequest{
		RazorpayOrderID:   result.Payment.OrderID,
		RazorpayPaymentID: result.Payment.PaymentID,
		RazorpaySignature: result.Payment.Signature,
	})
	if err != nil || !verified {
		return s.paymentFailed(epoch, metrics.PaymentOutcomeRejected, ReasonPaymentVerification, msgPaymentVerification, ErrPaymentVerificationFailed,
			"ChoosePayOnline: payment verification failed for order %s: %v", order.ID, err)
	}
	s.incPaymentOutcome(metrics.PaymentOutcomeVerified)

	// 5. Создание подтверждённого оплаченного бронирования
	s.mu.Lock()
	if stale := s.endOpLocked(epoch); stale {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrCancelled
	}

	payload := s.buildBookingLocked(domain.PayRazorpay, domain.StatusConfirmed, domain.PaymentPaid, result.Payment)

	return s.submitBookingLocked(ctx, payload)
}

// RetryCommit повторяет создание бронирования после сбоя: отправляется
// тот же запрос с тем же clientRef. Платежный шаг никогда не повторяется.
func (s *Service) RetryCommit(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()

	if err := s.requireOpenLocked(); err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}
	if s.state != StateAwaitingPaymentChoice || s.pendingBooking == nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrInvalidTransition
	}

	payload := *s.pendingBooking

	return s.submitBookingLocked(ctx, payload)
}

// Cancel отменяет сессию: локальный сброс без сетевых вызовов.
// Результаты уже запущенных операций отбрасываются. Созданный, но не
// использованный заказ платежного шлюза остаётся бездействующим.
func (s *Service) Cancel() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateConfirmed {
		return s.snapshotLocked()
	}

	s.epoch++
	s.busy = false
	if s.cancelInFlight != nil {
		s.cancelInFlight()
		s.cancelInFlight = nil
	}
	s.selection.Reset()
	s.catalog = nil
	s.clientRef = ""
	s.pendingBooking = nil
	s.lastFailure = nil
	s.setStateLocked(StateIdle)

	s.logger.Info("Cancel: session reset")

	return s.snapshotLocked()
}

// Snapshot возвращает срез текущего состояния сессии
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ---- внутренние помощники (все *Locked вызываются под s.mu) ----

// beginOpLocked помечает автомат занятым и возвращает epoch операции
func (s *Service) beginOpLocked() int {
	s.busy = true
	return s.epoch
}

// endOpLocked завершает операцию. Возвращает true, если сессия была
// отменена, пока операция выполнялась: результат нужно отбросить,
// не трогая состояние.
func (s *Service) endOpLocked(epoch int) bool {
	if s.epoch != epoch {
		return true
	}
	s.busy = false
	return false
}

func (s *Service) requireOpenLocked() error {
	if s.state == StateConfirmed {
		return ErrSessionFinished
	}
	if s.busy {
		return ErrBusy
	}
	if s.service == nil {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) requireStateLocked(allowed ...State) error {
	if err := s.requireOpenLocked(); err != nil {
		return err
	}
	for _, st := range allowed {
		if s.state == st {
			return nil
		}
	}
	return ErrInvalidTransition
}

func (s *Service) requirePaymentChoiceLocked() error {
	if err := s.requireStateLocked(StateAwaitingPaymentChoice); err != nil {
		return err
	}
	// После сбоя создания бронирования допустим только RetryCommit:
	// собранный запрос должен уйти без изменений
	if s.pendingBooking != nil {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) setStateLocked(to State) {
	if s.state == to {
		return
	}
	if s.metrics != nil {
		s.metrics.IncStateTransition(s.state.String(), to.String())
	}
	s.state = to
}

func (s *Service) failLocked(reason FailureReason, message string) {
	s.lastFailure = &Failure{Reason: reason, Message: message}
}

func (s *Service) incSlotVerification(result string) {
	if s.metrics != nil {
		s.metrics.IncSlotVerification(result)
	}
}

func (s *Service) incPaymentOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.IncPaymentOutcome(outcome)
	}
}

// buildBookingLocked собирает запрос на создание бронирования из
// текущего выбора. payment != nil только для онлайн-оплаты.
func (s *Service) buildBookingLocked(
	method domain.PaymentMethod,
	status domain.BookingStatus,
	paymentStatus domain.PaymentStatus,
	payment *checkout.PaymentResult,
) salonservice.CreateBookingRequest {
	date := *s.selection.Date
	slot := *s.selection.Slot

	req := salonservice.CreateBookingRequest{
		Service:       s.opts.ServiceID,
		Phone:         s.selection.Phone,
		Date:          date.Format(domain.DateFormat),
		StartTime:     slot.StartOn(date),
		EndTime:       slot.EndOn(date),
		Status:        string(status),
		PaymentMethod: string(method),
		PaymentStatus: string(paymentStatus),
		TotalAmount:   s.service.Price,
		ClientRef:     s.clientRef,
	}

	if payment != nil {
		req.RazorpayOrderID = ptr.Ptr(payment.OrderID)
		req.RazorpayPaymentID = ptr.Ptr(payment.PaymentID)
		req.RazorpaySignature = ptr.Ptr(payment.Signature)
	}

	return req
}

// submitBookingLocked отправляет запрос на создание бронирования.
// Вызывается под s.mu; запрос сохраняется как pendingBooking до отправки,
// чтобы повтор после сбоя ушёл байт в байт тем же телом.
func (s *Service) submitBookingLocked(ctx context.Context, payload salonservice.CreateBookingRequest) (Snapshot, error) {
	s.pendingBooking = &payload
	s.setStateLocked(StateCommitting)
	epoch := s.beginOpLocked()
	s.mu.Unlock()

	booking, err := s.salonClient.CreateBooking(ctx, &payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if stale := s.endOpLocked(epoch); stale {
		return s.snapshotLocked(), ErrCancelled
	}

	if err != nil {
		if errors.Is(err, salonservice.ErrSlotConflict) {
			// Гонка дошла до коммита: слот занят, выбор часа сбрасывается
			s.logger.Warn("CreateBooking: slot conflict for %s %s", payload.Date, payload.StartTime.Format("15:04"))
			s.failLocked(ReasonSlotTaken, msgSlotTaken)
			s.pendingBooking = nil
			s.selection.Slot = nil
			s.setStateLocked(StateDateSelected)
			s.refreshCatalogLocked(ctx, epoch)
			return s.snapshotLocked(), ErrSlotTaken
		}

		// Прочие сбои: запрос сохранён, RetryCommit отправит его повторно
		s.logger.Error("CreateBooking: failed: %v", err)
		s.failLocked(ReasonBookingFailed, msgBookingFailed)
		s.setStateLocked(StateAwaitingPaymentChoice)
		return s.snapshotLocked(), ErrBookingFailed
	}

	s.confirmed = booking
	s.pendingBooking = nil
	s.lastFailure = nil
	s.setStateLocked(StateConfirmed)
	if s.metrics != nil {
		s.metrics.IncBookingCreated(payload.PaymentMethod)
	}

	s.logger.Info("CreateBooking: booking %s confirmed (%s, %s %s)",
		booking.ID, payload.PaymentMethod, payload.Date, payload.StartTime.Format("15:04"))

	return s.snapshotLocked(), nil
}

// paymentFailed завершает платежный шаг неуспехом: сессия возвращается
// к выбору способа оплаты, бронирование не создаётся
func (s *Service) paymentFailed(
	epoch int,
	outcome string,
	reason FailureReason,
	message string,
	opErr error,
	logFormat string,
	logArgs ...interface{},
) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stale := s.endOpLocked(epoch); stale {
		return s.snapshotLocked(), ErrCancelled
	}

	s.incPaymentOutcome(outcome)
	if reason == ReasonPaymentCancelled {
		s.logger.Info(logFormat, logArgs...)
	} else {
		s.logger.Warn(logFormat, logArgs...)
	}
	s.failLocked(reason, message)
	s.setStateLocked(StateAwaitingPaymentChoice)

	return s.snapshotLocked(), opErr
}

// refreshCatalogLocked перестраивает каталог слотов после обнаруженной
// занятости. Вызывается под s.mu в хвосте операции, которая уже владеет
// busy-флагом: на время выборки замок отпускается.
func (s *Service) refreshCatalogLocked(ctx context.Context, epoch int) {
	if s.selection.Date == nil {
		s.catalog = nil
		return
	}

	date := *s.selection.Date
	serviceID := s.opts.ServiceID
	hours := s.opts.Hours
	s.busy = true
	s.mu.Unlock()

	catalog, err := s.slotCatalog.Execute(ctx, &get_available_slots.Request{
		ServiceID: serviceID,
		Date:      date,
		Hours:     hours,
	})

	s.mu.Lock()
	if stale := s.endOpLocked(epoch); stale {
		return
	}
	if err != nil {
		s.logger.Warn("refreshCatalog: %v", err)
		catalog = &get_available_slots.Response{Date: date, ServiceID: serviceID, Degraded: true}
	}
	s.catalog = catalog
}

func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   s.state,
		Phone:   s.selection.Phone,
		Service: s.service,
		Booking: s.confirmed,
	}

	if s.lastFailure != nil {
		f := *s.lastFailure
		snap.Failure = &f
	}
	if s.selection.Date != nil {
		d := *s.selection.Date
		snap.Date = &d
	}
	if s.selection.Slot != nil {
		sl := *s.selection.Slot
		snap.Slot = &sl
	}
	if s.catalog != nil {
		snap.Candidates = make([]get_available_slots.Slot, len(s.catalog.Slots))
		copy(snap.Candidates, s.catalog.Slots)
		snap.CatalogDegraded = s.catalog.Degraded
	}

	return snap
}

// isPastDay возвращает true, если date раньше сегодняшнего календарного дня
func isPastDay(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Before(today)
}
