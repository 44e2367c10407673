package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bagenigilbert77664/mizizzi-go-client/client"
	"github.com/bagenigilbert77664/mizizzi-go-client/models"
)

// AdminService — операции бэк-офиса. Авторизацию роли проверяет бэкенд;
// клиент вида customer получит 403.
type AdminService struct {
	c Caller
}

func (s *AdminService) ListUsers(ctx context.Context, pageToken string) (*models.AdminUserListResponse, error) {
	const op = "services.admin.ListUsers"

	path := "/admin/users"
	if pageToken != "" {
		path += "?page_token=" + url.QueryEscape(pageToken)
	}

	var out models.AdminUserListResponse
	if err := s.c.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) (*models.User, error) {
	const op = "services.admin.UpdateUserRole"

	in := models.AdminRoleUpdateRequest{Role: role}

	var out models.User
	if err := s.c.Call(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(userID)+"/role", in, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *AdminService) ListOrders(ctx context.Context, status, pageToken string) (*models.OrderListResponse, error) {
	const op = "services.admin.ListOrders"

	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}

	path := "/admin/orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out models.OrderListResponse
	if err := s.c.Call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID string, req models.AdminOrderStatusRequest) (*models.Order, error) {
	const op = "services.admin.UpdateOrderStatus"

	var out models.Order
	if err := s.c.Call(ctx, http.MethodPatch, "/admin/orders/"+url.PathEscape(orderID)+"/status", req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DashboardStats — агрегаты главного экрана; обновляется часто,
// поэтому новый запрос вытесняет незавершённый предыдущий.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "services.admin.DashboardStats"

	var out models.DashboardStats
	if err := s.c.Call(ctx, http.MethodGet, "/admin/dashboard", nil, &out,
		client.WithSupersede("admin.dashboard")); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}
