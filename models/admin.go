package models

type AdminUserListResponse struct {
	Items         []User `json:"items"`
	NextPageToken string `json:"next_page_token"`
}

type AdminRoleUpdateRequest struct {
	Role string `json:"role"` // customer | admin
}

type AdminOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// DashboardStats — агрегаты для главного экрана бэк-офиса.
type DashboardStats struct {
	OrdersToday         int64 `json:"orders_today"`
	RevenueCentsToday   int64 `json:"revenue_cents_today"`
	PendingOrders       int64 `json:"pending_orders"`
	OpenReturns         int64 `json:"open_returns"`
	LowStockProducts    int64 `json:"low_stock_products"`
	RegisteredCustomers int64 `json:"registered_customers"`
}
