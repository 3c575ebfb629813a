package domain

// DateFormat формат дат в протоколе бронирования
const DateFormat = "2006-01-02"

// SlotDurationMinutes длительность одного слота.
// Протокол работает с фиксированными часовыми слотами: конец слота
// всегда равен началу плюс один час, независимо от длительности услуги.
const SlotDurationMinutes = 60

// Дефолтные рабочие часы салона
const (
	DefaultOperatingStartHour = 9
	DefaultOperatingEndHour   = 20
)
