package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bagenigilbert77664/mizizzi-go-client/client"
	"github.com/bagenigilbert77664/mizizzi-go-client/models"
)

// CartService — корзина текущего пользователя.
type CartService struct {
	c Caller
}

// Get — корзина целиком. Повторный вызов вытесняет предыдущий:
// интерфейс перезапрашивает корзину после каждой мутации, и устаревший
// снимок не должен перекрыть свежий.
func (s *CartService) Get(ctx context.Context) (*models.Cart, error) {
	const op = "services.cart.Get"

	var out models.Cart
	if err := s.c.Call(ctx, http.MethodGet, "/cart", nil, &out, client.WithSupersede("cart.get")); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *CartService) AddItem(ctx context.Context, productID string, qty int32) (*models.Cart, error) {
	const op = "services.cart.AddItem"

	in := models.CartAddRequest{ProductID: productID, Quantity: qty}

	var out models.Cart
	if err := s.c.Call(ctx, http.MethodPost, "/cart/items", in, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *CartService) UpdateItem(ctx context.Context, itemID string, qty int32) (*models.Cart, error) {
	const op = "services.cart.UpdateItem"

	in := models.CartUpdateRequest{Quantity: qty}

	var out models.Cart
	if err := s.c.Call(ctx, http.MethodPatch, "/cart/items/"+url.PathEscape(itemID), in, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *CartService) RemoveItem(ctx context.Context, itemID string) (*models.Cart, error) {
	const op = "services.cart.RemoveItem"

	var out models.Cart
	if err := s.c.Call(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(itemID), nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *CartService) Clear(ctx context.Context) error {
	const op = "services.cart.Clear"

	if err := s.c.Call(ctx, http.MethodDelete, "/cart", nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
