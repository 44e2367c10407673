package models

type ProductListRequest struct {
	Category  string `json:"category,omitempty"`
	Limit     int32  `json:"limit,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ProductListResponse struct {
	Items         []Product `json:"items"`
	NextPageToken string    `json:"next_page_token"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	// Цены в минорных единицах (центы KES).
	PriceCents    int64    `json:"price_cents"`
	DiscountCents int64    `json:"discount_cents,omitempty"`
	Currency      string   `json:"currency"`
	ImageURLs     []string `json:"image_urls"`
	InStock       bool     `json:"in_stock"`
	StockCount    int32    `json:"stock_count"`
}

type SearchResponse struct {
	Items []Product `json:"items"`
	Total int32     `json:"total"`
}
