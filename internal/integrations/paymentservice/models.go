package paymentservice

// CreateOrderRequest тело запроса на создание заказа платежного шлюза.
// Amount передаётся в минорных единицах валюты (пайсы для INR).
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Service  string `json:"service"`
	Customer string `json:"customer,omitempty"`
}

// Order заказ платежного шлюза, созданный бэкендом.
// Заказ и бронирование - разные ресурсы: бронирование появляется только
// после проверки подписи оплаты.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest поля подписанного колбэка шлюза для серверной проверки
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// verifyPaymentResponse ответ серверной проверки подписи
type verifyPaymentResponse struct {
	Success bool `json:"success"`
}
