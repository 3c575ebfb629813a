package checkout

import (
	"context"
	"sync"
)

// CallbackBridge сводит колбэчный API виджета (onSuccess/onDismiss/onError)
// к одному ожидаемому результату. Разрешается ровно один раз: первый
// сработавший колбэк выигрывает, остальные игнорируются.
type CallbackBridge struct {
	once sync.Once
	done chan Result
}

// NewCallbackBridge создает новый мост
func NewCallbackBridge() *CallbackBridge {
	return &CallbackBridge{
		done: make(chan Result, 1),
	}
}

// ResolveSuccess разрешает мост подписанным результатом оплаты
func (b *CallbackBridge) ResolveSuccess(payment PaymentResult) {
	b.resolve(Result{
		Outcome: OutcomePaid,
		Payment: &payment,
	})
}

// ResolveDismiss разрешает мост отменой пользователя
func (b *CallbackBridge) ResolveDismiss() {
	b.resolve(Result{Outcome: OutcomeCancelled})
}

// ResolveError разрешает мост ошибкой виджета
func (b *CallbackBridge) ResolveError(err error) {
	b.resolve(Result{
		Outcome: OutcomeError,
		Err:     err,
	})
}

// Await блокируется до разрешения моста или отмены контекста.
// Отмена контекста эквивалентна dismiss: виджет закрывается без оплаты.
func (b *CallbackBridge) Await(ctx context.Context) Result {
	select {
	case result := <-b.done:
		return result
	case <-ctx.Done():
		return Result{Outcome: OutcomeCancelled}
	}
}

func (b *CallbackBridge) resolve(result Result) {
	b.once.Do(func() {
		b.done <- result
	})
}

// LaunchFunc запускает внешний виджет и навешивает колбэки.
// Реализация обязана в итоге вызвать ровно один из колбэков; повторные
// вызовы безопасны и игнорируются мостом.
type LaunchFunc func(opts Options, onSuccess func(PaymentResult), onDismiss func(), onError func(error))

// CallbackWidget адаптер, превращающий колбэчный виджет в Widget.
type CallbackWidget struct {
	launch LaunchFunc
}

// NewCallbackWidget создает адаптер над функцией запуска виджета
func NewCallbackWidget(launch LaunchFunc) *CallbackWidget {
	return &CallbackWidget{launch: launch}
}

// Open запускает виджет и ждёт единственный результат
func (w *CallbackWidget) Open(ctx context.Context, opts Options) Result {
	bridge := NewCallbackBridge()

	go w.launch(opts, bridge.ResolveSuccess, bridge.ResolveDismiss, bridge.ResolveError)

	return bridge.Await(ctx)
}
