package models

// Статусы заказа, которые отдаёт бэкенд.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturnOpen = "return_requested"
)

type Order struct {
	ID         string      `json:"id"`
	Number     string      `json:"number"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
	TotalCents int64       `json:"total_cents"`
	Currency   string      `json:"currency"`
	Shipping   Address     `json:"shipping"`
	CreatedAt  int64       `json:"created_at"` // Unix UTC
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitCents int64  `json:"unit_cents"`
	Quantity  int32  `json:"quantity"`
}

type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	County   string `json:"county"`
	Town     string `json:"town"`
	Line1    string `json:"line1"`
}

type OrderCreateRequest struct {
	CartID   string  `json:"cart_id"`
	Shipping Address `json:"shipping"`
	// PaymentMethod: mpesa | pesapal | cod.
	PaymentMethod string `json:"payment_method"`
}

type OrderListResponse struct {
	Items         []Order `json:"items"`
	NextPageToken string  `json:"next_page_token"`
}

type TrackingEvent struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	CreatedAt int64  `json:"created_at"` // Unix UTC
}

type TrackingResponse struct {
	OrderID string          `json:"order_id"`
	Events  []TrackingEvent `json:"events"`
}

type ReturnRequest struct {
	OrderID string   `json:"order_id"`
	Reason  string   `json:"reason"`
	ItemIDs []string `json:"item_ids,omitempty"`
}

type ReturnResponse struct {
	ReturnID string `json:"return_id"`
	Status   string `json:"status"`
}
