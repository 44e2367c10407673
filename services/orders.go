package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bagenigilbert77664/mizizzi-go-client/models"
)

// OrdersService — оформление, история, трекинг и возвраты.
type OrdersService struct {
	c Caller
}

func (s *OrdersService) Create(ctx context.Context, req models.OrderCreateRequest) (*models.Order, error) {
	const op = "services.orders.Create"

	var out models.Order
	if err := s.c.Call(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *OrdersService) ByID(ctx context.Context, id string) (*models.Order, error) {
	const op = "services.orders.ByID"

	var out models.Order
	if err := s.c.Call(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ListMine — заказы владельца сессии (курсорная пагинация).
func (s *OrdersService) ListMine(ctx context.Context, pageToken string) (*models.OrderListResponse, error) {
	const op = "services.orders.ListMine"

	path := "/orders"
	if pageToken != "" {
		path += "?page_token=" + url.QueryEscape(pageToken)
	}

	var out models.OrderListResponse
	if err := s.c.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *OrdersService) Track(ctx context.Context, id string) (*models.TrackingResponse, error) {
	const op = "services.orders.Track"

	var out models.TrackingResponse
	if err := s.c.Call(ctx, http.MethodGet, "/orders/"+url.PathEscape(id)+"/tracking", nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *OrdersService) RequestReturn(ctx context.Context, req models.ReturnRequest) (*models.ReturnResponse, error) {
	const op = "services.orders.RequestReturn"

	var out models.ReturnResponse
	if err := s.c.Call(ctx, http.MethodPost, "/returns", req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}
