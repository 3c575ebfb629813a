package generate_calendar

import "time"

// Day ячейка календарной сетки
type Day struct {
	Date           time.Time // полночь дня в таймзоне monthAnchor
	IsCurrentMonth bool      // день принадлежит месяцу-якорю
}
