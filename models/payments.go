package models

// Статусы платежа; терминальные — completed/failed/cancelled.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// STKPushRequest — инициирование M-PESA STK push на телефон покупателя.
type STKPushRequest struct {
	OrderID string `json:"order_id"`
	// Phone — MSISDN в формате 2547XXXXXXXX.
	Phone       string `json:"phone"`
	AmountCents int64  `json:"amount_cents"`
}

type STKPushResponse struct {
	// CheckoutRequestID — идентификатор для последующего поллинга статуса.
	CheckoutRequestID string `json:"checkout_request_id"`
	CustomerMessage   string `json:"customer_message"`
}

type PaymentStatus struct {
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	// FailureReason заполнен только для failed/cancelled.
	FailureReason string `json:"failure_reason,omitempty"`
}

// Terminal — достиг ли платёж терминального статуса.
func (p *PaymentStatus) Terminal() bool {
	switch p.Status {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}

	return false
}

// PesapalOrderRequest — создание платёжной сессии Pesapal (карта/кошелёк).
type PesapalOrderRequest struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url"`
}

type PesapalOrderResponse struct {
	// OrderTrackingID — идентификатор транзакции Pesapal для поллинга.
	OrderTrackingID string `json:"order_tracking_id"`
	// RedirectURL — страница оплаты, на которую уходит покупатель.
	RedirectURL string `json:"redirect_url"`
}
