package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bagenigilbert77664/mizizzi-go-client/client"
	"github.com/bagenigilbert77664/mizizzi-go-client/models"
)

// CatalogService — витрина: список товаров, карточка, поиск.
type CatalogService struct {
	c Caller
}

// ListProducts — страница каталога с курсорной пагинацией.
func (s *CatalogService) ListProducts(ctx context.Context, req models.ProductListRequest) (*models.ProductListResponse, error) {
	const op = "services.catalog.ListProducts"

	q := url.Values{}
	if req.Category != "" {
		q.Set("category", req.Category)
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(int(req.Limit)))
	}
	if req.PageToken != "" {
		q.Set("page_token", req.PageToken)
	}

	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out models.ProductListResponse
	if err := s.c.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ProductByID — карточка товара.
func (s *CatalogService) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "services.catalog.ProductByID"

	var out models.Product
	if err := s.c.Call(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// Search — поиск «на лету»: каждый новый вызов вытесняет предыдущий
// незавершённый, чтобы устаревшая выдача не перекрыла свежую.
func (s *CatalogService) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	const op = "services.catalog.Search"

	var out models.SearchResponse
	err := s.c.Call(ctx, http.MethodGet, "/products/search?q="+url.QueryEscape(query), nil, &out,
		client.WithSupersede("catalog.search"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}
