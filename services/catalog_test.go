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

func TestCatalogService_ListProducts_QueryEncoding(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet,
			"/products?category=ankara&limit=20&page_token=abc", nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, _ ...client.CallOption) error {
			*out.(*models.ProductListResponse) = models.ProductListResponse{
				Items:         []models.Product{{ID: "p1", Name: "Ankara dress"}},
				NextPageToken: "def",
			}
			return nil
		})

	svc := &CatalogService{c: m}

	out, err := svc.ListProducts(context.Background(), models.ProductListRequest{
		Category:  "ankara",
		Limit:     20,
		PageToken: "abc",
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	require.Equal(t, "def", out.NextPageToken)
}

func TestCatalogService_ListProducts_NoFilters_BarePath(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/products", nil, gomock.Any()).
		Return(nil)

	svc := &CatalogService{c: m}

	_, err := svc.ListProducts(context.Background(), models.ProductListRequest{})
	require.NoError(t, err)
}

func TestCatalogService_ProductByID_EscapesID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/products/p%2F42", nil, gomock.Any()).
		Return(nil)

	svc := &CatalogService{c: m}

	_, err := svc.ProductByID(context.Background(), "p/42")
	require.NoError(t, err)
}

func TestCatalogService_Search_PassesSupersedeOption(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockCaller(ctrl)

	m.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/products/search?q=kitenge+shirt",
			nil, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, out any, opts ...client.CallOption) error {
			// Поиск обязан идти с опцией вытеснения.
			require.Len(t, opts, 1)
			*out.(*models.SearchResponse) = models.SearchResponse{Total: 2}
			return nil
		})

	svc := &CatalogService{c: m}

	out, err := svc.Search(context.Background(), "kitenge shirt")
	require.NoError(t, err)
	require.Equal(t, int32(2), out.Total)
}
