package checkout

import "context"

// Outcome исход работы внешнего платежного виджета
type Outcome string

const (
	// OutcomePaid виджет закрыт с подписанным результатом оплаты
	OutcomePaid Outcome = "paid"
	// OutcomeCancelled пользователь закрыл виджет без оплаты
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeError виджет завершился ошибкой
	OutcomeError Outcome = "error"
)

// PaymentResult подписанный результат оплаты из колбэка виджета
type PaymentResult struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Result размеченный результат закрытия виджета.
// Payment заполнен только при OutcomePaid, Err - только при OutcomeError.
type Result struct {
	Outcome Outcome
	Payment *PaymentResult
	Err     error
}

// Prefill данные, которыми виджет заполняет свою форму
type Prefill struct {
	Contact string
}

// Options параметры открытия виджета
type Options struct {
	Key      string
	Amount   int64 // минорные единицы валюты
	Currency string
	OrderID  string
	Prefill  Prefill
}

// Widget внешний checkout-виджет.
// Open блокируется до закрытия виджета и возвращает единственный результат:
// оплата, отмена или ошибка. Отмена контекста трактуется как dismiss.
type Widget interface {
	Open(ctx context.Context, opts Options) Result
}
