// client — аутентифицированный API-клиент MIZIZZI.
//
// Ответственность:
//   - подстановка Authorization: Bearer <access_token> из хранилища сессии
//     (значение перечитывается непосредственно перед отправкой);
//   - прозрачное восстановление после единственного класса отказов —
//     истёкший access-токен (401) — через протокол refresh;
//   - гарантия single-flight: N одновременных 401 под одним истёкшим
//     токеном схлопываются ровно в один сетевой вызов refresh, остальные
//     вызовы ждут в FIFO-очереди и переигрываются с новым токеном;
//   - вытеснение устаревших запросов: новый вызов к тому же логическому
//     эндпойнту отменяет предыдущий, чтобы исключить гонку со «старым»
//     ответом.
//
// Каждый экземпляр Client владеет собственным координатором refresh —
// admin- и customer-клиенты в одном процессе не разделяют состояние
// и не гоняются за общим флагом.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bagenigilbert77664/mizizzi-go-client/config"
	"github.com/bagenigilbert77664/mizizzi-go-client/metrics"
	"github.com/bagenigilbert77664/mizizzi-go-client/session"
)

// Kind — вид клиента; задаётся при конструировании и определяет
// точку входа логина при терминальном отказе аутентификации.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindAdmin    Kind = "admin"
)

// AuthFailure — сигнал «аутентификация потеряна окончательно».
// Сессия к моменту вызова хука уже очищена; LoginURL — куда отправлять
// пользователя. Клиент сам никакой навигации не выполняет.
type AuthFailure struct {
	Kind     Kind
	LoginURL string
	Err      error
}

// Hooks — точки расширения; все поля опциональны.
type Hooks struct {
	// OnAuthFailure вызывается ровно один раз на каждый завершившийся
	// неуспехом цикл refresh (не по разу на каждого ожидающего).
	OnAuthFailure func(AuthFailure)
}

// Options — зависимости клиента; нулевое значение даёт рабочие дефолты.
type Options struct {
	// HTTPClient — транспорт; по умолчанию http.DefaultClient без
	// собственного таймаута (дедлайны управляются контекстом).
	HTTPClient *http.Client
	// Store — хранилище сессии; по умолчанию session.NewMemory().
	Store session.Store
	// Logger — базовый логгер; по умолчанию slog.Default().
	Logger *slog.Logger
	// Metrics — коллекторы Prometheus; nil отключает метрики.
	Metrics *metrics.Metrics
	Hooks   Hooks
}

type Client struct {
	cfg     config.Config
	kind    Kind
	baseURL *url.URL
	httpc   *http.Client
	store   session.Store
	log     *slog.Logger
	metrics *metrics.Metrics
	hooks   Hooks

	refresh  *refreshCoordinator
	inflight *inflightTable
}

// New создаёт клиент заданного вида поверх конфигурации.
func New(cfg *config.Config, kind Kind, opts Options) (*Client, error) {
	const op = "client.New"

	if cfg == nil {
		return nil, fmt.Errorf("%s: nil config", op)
	}

	if kind != KindCustomer && kind != KindAdmin {
		return nil, fmt.Errorf("%s: unknown client kind %q", op, kind)
	}

	base, err := url.Parse(strings.TrimRight(cfg.API.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: invalid base url %q", op, cfg.API.BaseURL)
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}

	store := opts.Store
	if store == nil {
		store = session.NewMemory()
	}

	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}

	return &Client{
		cfg:      *cfg,
		kind:     kind,
		baseURL:  base,
		httpc:    httpc,
		store:    store,
		log:      lg,
		metrics:  opts.Metrics,
		hooks:    opts.Hooks,
		refresh:  &refreshCoordinator{},
		inflight: newInflightTable(),
	}, nil
}

func (c *Client) Kind() Kind { return c.kind }

// Store открывает хранилище сессии (его пишут login/logout в services).
func (c *Client) Store() session.Store { return c.store }

// LoginURL — точка входа логина для вида клиента.
func (c *Client) LoginURL() string {
	if c.kind == KindAdmin {
		return c.cfg.Auth.AdminLoginURL
	}

	return c.cfg.Auth.CustomerLoginURL
}

// authFailed очищает сессию и эмитит сигнал auth-failure.
// Контекст вызвавшего запроса мог уже истечь, поэтому очистка идёт
// на свежем контексте.
func (c *Client) authFailed(err error) {
	_ = c.store.Clear(context.Background())

	if c.hooks.OnAuthFailure != nil {
		c.hooks.OnAuthFailure(AuthFailure{
			Kind:     c.kind,
			LoginURL: c.LoginURL(),
			Err:      err,
		})
	}
}
