package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bagenigilbert77664/mizizzi-go-client/apierrors"
	logctx "github.com/bagenigilbert77664/mizizzi-go-client/pkg/log"
	"github.com/bagenigilbert77664/mizizzi-go-client/session"
)

// Response — сырой ответ бэкенда для вызовов без типизированной модели.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// Call выполняет запрос и декодирует JSON-ответ в out (если out != nil).
// in != nil сериализуется в JSON-тело.
func (c *Client) Call(ctx context.Context, method, path string, in, out any, opts ...CallOption) error {
	const op = "client.request.Call"

	resp, err := c.Do(ctx, method, path, in, opts...)
	if err != nil {
		return err
	}

	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}

	return nil
}

// Do выполняет запрос и возвращает сырой ответ.
// Не-2xx ответы превращаются в ошибку таксономии apierrors.
func (c *Client) Do(ctx context.Context, method, path string, in any, opts ...CallOption) (*Response, error) {
	const op = "client.request.Do"

	var co callOptions
	for _, o := range opts {
		o(&co)
	}

	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = b
	}

	return c.do(ctx, method, path, body, co)
}

// do — полный жизненный цикл вызова: вытеснение, общий дедлайн,
// проактивный refresh, отправка, протокол 401.
func (c *Client) do(ctx context.Context, method, path string, body []byte, co callOptions) (*Response, error) {
	// Вытеснение: регистрируемся по логическому ключу, отменяя предыдущий
	// незавершённый вызов. Действует на весь жизненный цикл, включая
	// ожидание refresh и переигрывание.
	if co.supersedeKey != "" {
		var release func()
		ctx, release = c.inflight.begin(ctx, co.supersedeKey)
		defer release()
	}

	// Общий дедлайн вызова; существующий дедлайн контекста не переопределяется.
	if _, ok := ctx.Deadline(); !ok && c.cfg.Timeouts.Request > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeouts.Request)
		defer cancel()
	}

	// Проактивный refresh: если известен срок access-токена и он истекает
	// в окне leeway — обновляемся до отправки, не дожидаясь 401.
	if !co.noAuth && !co.isRefresh && c.cfg.Auth.RefreshLeeway > 0 {
		if pair, err := c.store.Tokens(ctx); err == nil &&
			pair.RefreshToken != "" && pair.ExpiresWithin(c.cfg.Auth.RefreshLeeway) {
			if _, err := c.runRefresh(ctx); err != nil {
				return nil, err
			}
		}
	}

	resp, err := c.send(ctx, method, path, body, co)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !co.noAuth && !co.isRefresh {
		return c.recover401(ctx, method, path, body, co, resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.FromResponse(resp.StatusCode, resp.Body, resp.RequestID)
	}

	return resp, nil
}

// recover401 — протокол восстановления после 401.
//
// Первый 401 запускает (или ждёт) единственный цикл refresh и переигрывает
// исходный запрос ровно один раз. Запрос, уже помеченный retried,
// второй цикл не запускает: это терминальный отказ аутентификации.
func (c *Client) recover401(ctx context.Context, method, path string, body []byte, co callOptions, resp *Response) (*Response, error) {
	if co.retried {
		failure := apierrors.AuthFailed(apierrors.FromResponse(resp.StatusCode, resp.Body, resp.RequestID), resp.RequestID)
		c.authFailed(failure)
		return nil, failure
	}

	if _, err := c.runRefresh(ctx); err != nil {
		return nil, err
	}

	co.retried = true

	retried, err := c.send(ctx, method, path, body, co)
	if err != nil {
		return nil, err
	}

	if retried.StatusCode == http.StatusUnauthorized {
		return c.recover401(ctx, method, path, body, co, retried)
	}

	if retried.StatusCode < 200 || retried.StatusCode > 299 {
		return nil, apierrors.FromResponse(retried.StatusCode, retried.Body, retried.RequestID)
	}

	return retried, nil
}

// send — одна сетевая попытка: сборка запроса, подпись, логирование.
func (c *Client) send(ctx context.Context, method, path string, body []byte, co callOptions) (*Response, error) {
	const op = "client.request.send"

	start := time.Now()

	u := *c.baseURL
	parsed, err := u.Parse(c.baseURL.Path + path)
	if err != nil {
		return nil, fmt.Errorf("%s: bad path %q: %w", op, path, err)
	}

	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, parsed.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rid := uuid.NewString()
	req.Header.Set("X-Request-Id", rid)
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.API.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.API.UserAgent)
	}

	// Токен перечитывается из хранилища непосредственно перед подстановкой:
	// между постановкой вызова и отправкой пара могла смениться.
	switch {
	case co.authOverride != "":
		req.Header.Set("Authorization", "Bearer "+co.authOverride)
	case !co.noAuth:
		if pair, err := c.store.Tokens(ctx); err == nil && pair.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		} else if err != nil && !errors.Is(err, session.ErrNoSession) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	// Обогащённый request-scoped логгер и прокладка в контекст.
	lg := c.log.With(
		slog.String("request_id", rid),
		slog.String("method", method),
		slog.String("path", path),
	)
	ctx = logctx.Into(ctx, lg)
	req = req.WithContext(ctx)

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		cerr := classifyContextErr(ctx)
		lg.Info("http",
			slog.String("result", "error"),
			slog.Duration("dur", time.Since(start)),
		)

		if errors.Is(cerr, apierrors.ErrSuperseded) {
			c.metrics.ObserveSuperseded()
			return nil, cerr
		}
		if cerr != nil {
			return nil, cerr
		}

		return nil, fmt.Errorf("%s: %w: %w", op, apierrors.ErrNetwork, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w: %w", op, apierrors.ErrNetwork, err)
	}

	lg.Info("http",
		slog.Int("status", httpResp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)
	c.metrics.ObserveRequest(method, httpResp.StatusCode, time.Since(start))

	respRID := httpResp.Header.Get("X-Request-Id")
	if respRID == "" {
		respRID = rid
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       raw,
		RequestID:  respRID,
	}, nil
}

// classifyContextErr — превращает причину отмены контекста в ошибку
// таксономии: вытеснение -> ErrSuperseded, дедлайн/отмена -> ErrNetwork.
func classifyContextErr(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}

	if cause := context.Cause(ctx); errors.Is(cause, apierrors.ErrSuperseded) {
		return fmt.Errorf("%w: newer call took over", apierrors.ErrSuperseded)
	}

	return fmt.Errorf("%w: %w", apierrors.ErrNetwork, context.Cause(ctx))
}
