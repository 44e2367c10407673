package models

type Cart struct {
	ID         string     `json:"id"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	Currency   string     `json:"currency"`
}

type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	// UnitCents — цена на момент добавления; бэкенд пересчитывает
	// при изменении каталога.
	UnitCents int64 `json:"unit_cents"`
	Quantity  int32 `json:"quantity"`
}

type CartAddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type CartUpdateRequest struct {
	Quantity int32 `json:"quantity"`
}
