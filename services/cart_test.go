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

func TestCartService_Get_PassesSupersedeOption(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/cart", nil, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, opts ...client.CallOption) error {
			require.Len(t, opts, 1)
			*out.(*models.Cart) = models.Cart{ID: "c1", TotalCents: 150000, Currency: "KES"}
			return nil
		})

	svc := &CartService{c: m}

	cart, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "c1", cart.ID)
}

func TestCartService_AddItem(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodPost, "/cart/items",
			models.CartAddRequest{ProductID: "p1", Quantity: 2}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, _ ...client.CallOption) error {
			*out.(*models.Cart) = models.Cart{
				ID:    "c1",
				Items: []models.CartItem{{ID: "i1", ProductID: "p1", Quantity: 2}},
			}
			return nil
		})

	svc := &CartService{c: m}

	cart, err := svc.AddItem(context.Background(), "p1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, int32(2), cart.Items[0].Quantity)
}

func TestCartService_UpdateAndRemoveItem_Paths(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodPatch, "/cart/items/i1",
			models.CartUpdateRequest{Quantity: 3}, gomock.Any()).
		Return(nil)
	m.EXPECT().
		Call(gomock.Any(), http.MethodDelete, "/cart/items/i1", nil, gomock.Any()).
		Return(nil)

	svc := &CartService{c: m}

	_, err := svc.UpdateItem(context.Background(), "i1", 3)
	require.NoError(t, err)

	_, err = svc.RemoveItem(context.Background(), "i1")
	require.NoError(t, err)
}

func TestCartService_Clear(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodDelete, "/cart", nil, nil).
		Return(nil)

	svc := &CartService{c: m}

	require.NoError(t, svc.Clear(context.Background()))
}
