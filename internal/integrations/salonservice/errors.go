package salonservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("salonservice client: service not found")

	// ErrSlotConflict возвращается, когда бэкенд отклонил создание
	// бронирования из-за занятого слота
	ErrSlotConflict = errors.New("salonservice client: slot already booked")

	// ErrUnauthorized возвращается при отклонённой аутентификации
	ErrUnauthorized = errors.New("salonservice client: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("salonservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonservice client: internal error")
)
