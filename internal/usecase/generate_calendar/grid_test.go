package generate_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_Always42Cells(t *testing.T) {
	// Месяцы с разным числом дней и разным днём недели первого числа
	anchors := []time.Time{
		date(2025, time.January, 1),   // 31 день, среда
		date(2025, time.February, 10), // 28 дней, суббота
		date(2024, time.February, 1),  // високосный февраль
		date(2025, time.June, 15),     // 30 дней, воскресенье
		date(2025, time.March, 31),    // якорь не обязан быть первым числом
	}

	for _, anchor := range anchors {
		days := Generate(anchor)
		assert.Len(t, days, GridSize, "month %s", anchor.Format("2006-01"))
	}
}

func TestGenerate_ContiguousIncreasingDates(t *testing.T) {
	days := Generate(date(2025, time.August, 1))
	require.Len(t, days, GridSize)

	for i := 1; i < len(days); i++ {
		diff := days[i].Date.Sub(days[i-1].Date)
		assert.Equal(t, 24*time.Hour, diff, "cells %d and %d must be adjacent days", i-1, i)
	}
}

func TestGenerate_AlignsFirstDayToWeekdayColumn(t *testing.T) {
	// Август 2025: 1-е число - пятница (колонка 5 при неделе с воскресенья)
	days := Generate(date(2025, time.August, 1))

	require.True(t, days[5].IsCurrentMonth)
	assert.Equal(t, 1, days[5].Date.Day())
	assert.Equal(t, time.August, days[5].Date.Month())

	// Перед ним - хвост июля
	for i := 0; i < 5; i++ {
		assert.False(t, days[i].IsCurrentMonth, "cell %d", i)
		assert.Equal(t, time.July, days[i].Date.Month(), "cell %d", i)
	}

	// Первая ячейка сетки всегда воскресенье
	assert.Equal(t, time.Sunday, days[0].Date.Weekday())
}

func TestGenerate_PadsWithNextMonth(t *testing.T) {
	// Февраль 2026: 28 дней, 1-е число - воскресенье, месяц занимает ровно 4 недели
	days := Generate(date(2026, time.February, 1))
	require.Len(t, days, GridSize)

	// Нет хвоста предыдущего месяца
	assert.True(t, days[0].IsCurrentMonth)
	assert.Equal(t, 1, days[0].Date.Day())

	// Последние две недели - март, сетка всё равно из 6 недель
	current := 0
	for _, d := range days {
		if d.IsCurrentMonth {
			current++
		}
	}
	assert.Equal(t, 28, current)
	assert.Equal(t, time.March, days[GridSize-1].Date.Month())
}

func TestGenerate_SingleToday(t *testing.T) {
	now := time.Date(2025, time.August, 28, 14, 30, 0, 0, time.UTC)
	days := Generate(date(2025, time.August, 1))

	todayCount := 0
	for _, d := range days {
		if IsToday(d.Date, now) {
			todayCount++
		}
	}
	assert.Equal(t, 1, todayCount)
}

func TestIsPast(t *testing.T) {
	now := time.Date(2025, time.August, 28, 0, 30, 0, 0, time.UTC)

	assert.True(t, IsPast(date(2025, time.August, 27), now))
	// Сегодняшний день не считается прошедшим, даже если время суток уже позднее
	assert.False(t, IsPast(date(2025, time.August, 28), now))
	assert.False(t, IsPast(date(2025, time.August, 29), now))
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, time.August, 28, 9, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.August, 28, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(a, b.AddDate(0, 0, 1)))
}

func TestGenerate_Idempotent(t *testing.T) {
	anchor := date(2025, time.December, 5)

	first := Generate(anchor)
	second := Generate(anchor)

	assert.Equal(t, first, second)
}
