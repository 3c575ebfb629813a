package generate_calendar

import "time"

// GridSize размер календарной сетки: всегда 6 полных недель,
// чтобы высота сетки не менялась от месяца к месяцу
const GridSize = 42

// Generate строит сетку месяца из 42 ячеек.
// Неделя начинается с воскресенья: перед первым числом добавляются
// хвостовые дни предыдущего месяца до выравнивания по колонке дня недели,
// после последнего числа - дни следующего месяца до ровно 42 ячеек.
// Чистая функция: детерминирована и не имеет побочных эффектов.
func Generate(monthAnchor time.Time) []Day {
	loc := monthAnchor.Location()
	firstOfMonth := time.Date(monthAnchor.Year(), monthAnchor.Month(), 1, 0, 0, 0, 0, loc)

	// Смещение первого числа от воскресенья: Weekday() для воскресенья равен 0
	offset := int(firstOfMonth.Weekday())
	gridStart := firstOfMonth.AddDate(0, 0, -offset)

	days := make([]Day, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		date := gridStart.AddDate(0, 0, i)
		days = append(days, Day{
			Date:           date,
			IsCurrentMonth: date.Month() == firstOfMonth.Month() && date.Year() == firstOfMonth.Year(),
		})
	}

	return days
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню.
// Сравнение по календарю, не по моментам времени.
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsToday проверяет, что дата приходится на сегодняшний день
func IsToday(date, now time.Time) bool {
	return IsSameDay(date, now)
}

// IsPast проверяет, что дата раньше сегодняшнего дня.
// Время суток игнорируется: сравнение идёт против локальной полуночи "сегодня".
func IsPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
