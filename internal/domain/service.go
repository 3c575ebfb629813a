package domain

import "math"

// Service услуга салона.
// С точки зрения ядра резервирования неизменяема: загружается один раз
// на сессию бронирования.
type Service struct {
	ID              string
	Name            string
	Category        string
	Price           float64 // цена в рупиях (десятичная)
	DurationMinutes int
	Active          bool
}

// PriceMinorUnits возвращает цену в минорных единицах валюты (пайсы)
// для создания заказа у платежного шлюза
func (s *Service) PriceMinorUnits() int64 {
	return int64(math.Round(s.Price * 100))
}
