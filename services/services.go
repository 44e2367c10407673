// services — типизированные обёртки над API-клиентом, по файлу на домен
// (auth, каталог, корзина, заказы, платежи, бэк-офис). Обёртки тонкие:
// сборка пути/тела и декодирование ответа; вся механика аутентификации,
// refresh и вытеснения живёт в пакете client.
package services

import (
	"context"

	"github.com/bagenigilbert77664/mizizzi-go-client/client"
	"github.com/bagenigilbert77664/mizizzi-go-client/config"
	"github.com/bagenigilbert77664/mizizzi-go-client/session"
)

// Caller — контракт клиента, нужный сервисам. *client.Client его реализует;
// в тестах подменяется моком.
type Caller interface {
	Call(ctx context.Context, method, path string, in, out any, opts ...client.CallOption) error
	Store() session.Store
}

// Services агрегирует все доменные обёртки поверх одного клиента.
type Services struct {
	Auth     *AuthService
	Catalog  *CatalogService
	Cart     *CartService
	Orders   *OrdersService
	Payments *PaymentsService
	// Admin имеет смысл только для клиента вида admin; для customer
	// бэкенд ответит 403 — SDK этот инвариант не дублирует.
	Admin *AdminService
}

// New собирает доменные обёртки.
func New(c Caller, cfg *config.Config) *Services {
	return &Services{
		Auth:     &AuthService{c: c},
		Catalog:  &CatalogService{c: c},
		Cart:     &CartService{c: c},
		Orders:   &OrdersService{c: c},
		Payments: &PaymentsService{c: c, polling: cfg.Polling},
		Admin:    &AdminService{c: c},
	}
}
