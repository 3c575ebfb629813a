package reservation

// State состояние конечного автомата бронирования.
// Переходы выполняются только явными операциями оркестратора;
// недопустимый переход - ошибка, а не молчаливый no-op.
type State int

const (
	// StateIdle сессия начата, дата не выбрана
	StateIdle State = iota
	// StateDateSelected дата выбрана, час не выбран
	StateDateSelected
	// StateTimeSelected час выбран и подтверждён узкой проверкой
	StateTimeSelected
	// StateVerifying выполняется узкая проверка слота
	StateVerifying
	// StateAwaitingPaymentChoice слот перепроверен на момент коммита,
	// ожидается выбор способа оплаты
	StateAwaitingPaymentChoice
	// StateCommitting выполняется платежный шаг и/или создание бронирования
	StateCommitting
	// StateConfirmed бронирование создано; терминальное состояние
	StateConfirmed
)

// String возвращает имя состояния
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDateSelected:
		return "date_selected"
	case StateTimeSelected:
		return "time_selected"
	case StateVerifying:
		return "verifying"
	case StateAwaitingPaymentChoice:
		return "awaiting_payment_choice"
	case StateCommitting:
		return "committing"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// FailureReason причина последнего сбоя
type FailureReason string

const (
	// ReasonSlotTaken узкая проверка показала, что слот занят
	ReasonSlotTaken FailureReason = "slot-taken"
	// ReasonValidation локальная валидация не прошла; сеть не трогалась
	ReasonValidation FailureReason = "validation"
	// ReasonNetwork сетевой сбой проверки слота; коммит запрещён (fail closed)
	ReasonNetwork FailureReason = "network"
	// ReasonPaymentCancelled пользователь закрыл платежный виджет
	ReasonPaymentCancelled FailureReason = "payment-cancelled"
	// ReasonPaymentFailed платежный шаг завершился ошибкой
	ReasonPaymentFailed FailureReason = "payment-failed"
	// ReasonPaymentVerification серверная проверка подписи не подтвердила оплату
	ReasonPaymentVerification FailureReason = "payment-verification"
	// ReasonBookingFailed создание бронирования не удалось; попытку можно
	// повторить тем же идемпотентным запросом
	ReasonBookingFailed FailureReason = "booking-failed"
)

// Failure последний сбой с сообщением для пользователя.
// Каждому сбою соответствует конкретное действие, а не общая ошибка.
type Failure struct {
	Reason  FailureReason
	Message string
}

// Сообщения для пользователя
const (
	msgServiceUnavailable  = "This service could not be loaded. Please try again later."
	msgSlotTaken           = "This time slot was just booked by someone else. Please pick another time."
	msgVerifyUnavailable   = "We could not confirm slot availability. Check your connection and try again."
	msgInvalidDate         = "This date is in the past. Pick an upcoming date."
	msgInvalidPhone        = "Enter a valid 10-digit phone number."
	msgNoSelection         = "Select a date and time before continuing."
	msgSlotNotCandidate    = "This time is no longer offered for the selected date. Pick another time."
	msgPaymentCancelled    = "Payment was cancelled. You can retry the payment or choose to pay at the salon."
	msgPaymentFailed       = "Payment could not be completed. Please try again."
	msgPaymentVerification = "Payment verification failed, so no booking was created. Please retry the payment."
	msgBookingFailed       = "Your booking could not be saved. Retry to submit the same booking again."
)
