package reservation

import "errors"

var (
	// ErrBusy возвращается при попытке запустить операцию, пока
	// предыдущая сетевая операция ещё выполняется (защита от двойного сабмита)
	ErrBusy = errors.New("reservation: another operation is in progress")

	// ErrInvalidTransition возвращается при операции, недопустимой
	// в текущем состоянии автомата
	ErrInvalidTransition = errors.New("reservation: operation is not allowed in current state")

	// ErrSessionFinished возвращается после достижения терминального состояния
	ErrSessionFinished = errors.New("reservation: session already confirmed")

	// ErrCancelled возвращается, когда результат операции отброшен
	// из-за отмены сессии пользователем
	ErrCancelled = errors.New("reservation: session was cancelled")

	// ErrInvalidDate возвращается при выборе прошедшей даты
	ErrInvalidDate = errors.New("reservation: date is in the past")

	// ErrInvalidPhone возвращается при некорректном телефоне
	ErrInvalidPhone = errors.New("reservation: invalid phone number")

	// ErrNoSelection возвращается при коммите без выбранных даты и часа
	ErrNoSelection = errors.New("reservation: date and time are not selected")

	// ErrSlotNotCandidate возвращается при выборе часа, отсутствующего
	// в актуальном списке кандидатов
	ErrSlotNotCandidate = errors.New("reservation: slot is not in the candidate list")

	// ErrSlotTaken возвращается, когда узкая проверка показала занятость слота
	ErrSlotTaken = errors.New("reservation: slot is already taken")

	// ErrVerifyUnavailable возвращается при сетевом сбое узкой проверки.
	// Сбой трактуется как "не проверено": коммит запрещён (fail closed).
	ErrVerifyUnavailable = errors.New("reservation: slot verification unavailable")

	// ErrPaymentCancelled возвращается при закрытии виджета пользователем
	ErrPaymentCancelled = errors.New("reservation: payment cancelled by user")

	// ErrPaymentFailed возвращается при ошибке платежного шага
	ErrPaymentFailed = errors.New("reservation: payment failed")

	// ErrPaymentVerificationFailed возвращается, когда серверная проверка
	// подписи не подтвердила оплату; бронирование не создаётся
	ErrPaymentVerificationFailed = errors.New("reservation: payment verification failed")

	// ErrBookingFailed возвращается при сбое создания бронирования;
	// повтор отправляет тот же идемпотентный запрос
	ErrBookingFailed = errors.New("reservation: booking creation failed")

	// ErrServiceUnavailable возвращается, когда услуга не найдена или отключена
	ErrServiceUnavailable = errors.New("reservation: service is unavailable")

	// ErrInternal возвращается при внутренних ошибках оркестратора
	ErrInternal = errors.New("reservation: internal error")
)
