package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bagenigilbert77664/mizizzi-go-client/client"
	"github.com/bagenigilbert77664/mizizzi-go-client/mocks"
	"github.com/bagenigilbert77664/mizizzi-go-client/models"
)

func TestAdminService_ListOrders_QueryEncoding(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet,
			"/admin/orders?page_token=xyz&status=pending", nil, gomock.Any()).
		Return(nil)

	svc := &AdminService{c: m}

	_, err := svc.ListOrders(context.Background(), models.OrderStatusPending, "xyz")
	require.NoError(t, err)
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodPatch, "/admin/users/u7/role",
			models.AdminRoleUpdateRequest{Role: "admin"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, _ ...client.CallOption) error {
			*out.(*models.User) = models.User{ID: "u7", Role: "admin"}
			return nil
		})

	svc := &AdminService{c: m}

	user, err := svc.UpdateUserRole(context.Background(), "u7", "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Role)
}

func TestAdminService_UpdateOrderStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	req := models.AdminOrderStatusRequest{Status: models.OrderStatusShipped, Note: "G4S waybill 123"}

	m.EXPECT().
		Call(gomock.Any(), http.MethodPatch, "/admin/orders/o1/status", req, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, _ ...client.CallOption) error {
			*out.(*models.Order) = models.Order{ID: "o1", Status: models.OrderStatusShipped}
			return nil
		})

	svc := &AdminService{c: m}

	order, err := svc.UpdateOrderStatus(context.Background(), "o1", req)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusShipped, order.Status)
}

func TestAdminService_DashboardStats_PassesSupersedeOption(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/admin/dashboard", nil, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, opts ...client.CallOption) error {
			require.Len(t, opts, 1)
			*out.(*models.DashboardStats) = models.DashboardStats{OrdersToday: 42}
			return nil
		})

	svc := &AdminService{c: m}

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), stats.OrdersToday)
}
