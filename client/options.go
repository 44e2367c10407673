package client

// callOptions — параметры одного вызова.
type callOptions struct {
	// supersedeKey — логический эндпойнт для вытеснения: новый вызов
	// с тем же ключом отменяет предыдущий незавершённый.
	supersedeKey string
	// noAuth — не подставлять access-токен (login/register и прочие
	// публичные эндпойнты).
	noAuth bool

	// retried — запрос уже переигран после refresh; второй подряд 401
	// терминален и нового цикла refresh не запускает.
	retried bool
	// isRefresh — сам вызов refresh; его 401 терминален без рекурсии.
	isRefresh bool
	// authOverride — явный bearer вместо access-токена из хранилища
	// (refresh-вызов подписывается refresh-токеном).
	authOverride string
}

type CallOption func(*callOptions)

// WithSupersede помечает вызов ключом логического эндпойнта:
// более новый вызов с тем же ключом отменит этот с ErrSuperseded.
func WithSupersede(key string) CallOption {
	return func(o *callOptions) { o.supersedeKey = key }
}

// WithoutAuth отключает подстановку bearer-токена.
func WithoutAuth() CallOption {
	return func(o *callOptions) { o.noAuth = true }
}
