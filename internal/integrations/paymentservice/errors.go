package paymentservice

import "errors"

var (
	// ErrOrderRejected возвращается, когда бэкенд отказал в создании заказа
	ErrOrderRejected = errors.New("paymentservice client: order rejected")

	// ErrUnauthorized возвращается при отклонённой аутентификации
	ErrUnauthorized = errors.New("paymentservice client: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")
)
