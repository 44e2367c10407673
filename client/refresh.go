package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bagenigilbert77664/mizizzi-go-client/apierrors"
	logctx "github.com/bagenigilbert77664/mizizzi-go-client/pkg/log"
	"github.com/bagenigilbert77664/mizizzi-go-client/session"
)

// refreshState — состояния протокола refresh.
type refreshState int

const (
	refreshIdle refreshState = iota
	refreshInFlight
)

type refreshResult struct {
	pair *session.TokenPair
	err  error
}

// refreshCoordinator — явный single-flight координатор одного клиента.
//
// Инвариант: в любой момент времени в полёте не больше одного сетевого
// вызова refresh. Первый вызвавший begin в состоянии IDLE становится
// лидером и выполняет вызов; остальные встают в FIFO-очередь ожидания
// и получают результат лидера. settle переводит состояние обратно
// в IDLE и раздаёт результат очереди в порядке постановки.
type refreshCoordinator struct {
	mu      sync.Mutex
	state   refreshState
	waiters []chan refreshResult
}

// begin возвращает lead=true лидеру; остальным — канал результата.
func (rc *refreshCoordinator) begin() (lead bool, wait <-chan refreshResult) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.state == refreshIdle {
		rc.state = refreshInFlight
		return true, nil
	}

	ch := make(chan refreshResult, 1)
	rc.waiters = append(rc.waiters, ch)
	return false, ch
}

// settle завершает цикл: состояние IDLE, очередь получает результат FIFO.
func (rc *refreshCoordinator) settle(res refreshResult) {
	rc.mu.Lock()
	waiters := rc.waiters
	rc.waiters = nil
	rc.state = refreshIdle
	rc.mu.Unlock()

	// Каналы буферизованы: отправка не блокируется, даже если ожидающий
	// уже отменился по своему контексту.
	for _, ch := range waiters {
		ch <- res
	}
}

// runRefresh — точка входа протокола для запроса, поймавшего 401
// (или проактивного refresh). Возвращает свежую пару токенов.
func (c *Client) runRefresh(ctx context.Context) (*session.TokenPair, error) {
	lead, wait := c.refresh.begin()

	if !lead {
		select {
		case res := <-wait:
			return res.pair, res.err
		case <-ctx.Done():
			// Ожидающий отменился сам (таймаут/вытеснение) — цикл refresh
			// это не затрагивает, лидер доведёт его до конца для остальных.
			return nil, classifyContextErr(ctx)
		}
	}

	res := c.doRefresh(ctx)
	c.refresh.settle(res)
	return res.pair, res.err
}

// doRefresh выполняет ровно один сетевой вызов refresh.
//
// Отказ любого рода (нет refresh-токена, сеть, не-2xx, 401 самого
// refresh-вызова) терминален: сессия очищается, сигнал auth-failure
// эмитится ровно один раз, все ожидающие получают ErrAuthFailed.
func (c *Client) doRefresh(ctx context.Context) refreshResult {
	const op = "client.refresh.doRefresh"

	lg := logctx.From(ctx)

	// Отмена лидера не должна ронять refresh для всей очереди:
	// вызов идёт на собственном дедлайне, отвязанном от запроса-лидера.
	rctx := context.WithoutCancel(ctx)
	rctx, cancel := context.WithTimeout(rctx, c.cfg.Timeouts.Refresh)
	defer cancel()

	pair, err := c.store.Tokens(rctx)
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		// Сбой чтения хранилища (например, недоступен redis) — переходящая
		// ошибка, не отказ аутентификации: сессия остаётся на месте.
		lg.Warn("refresh_store_read_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		c.metrics.ObserveRefresh(false)
		return refreshResult{err: fmt.Errorf("%s: %w: %w", op, apierrors.ErrNetwork, err)}
	}

	if err != nil || pair.RefreshToken == "" {
		// Нет refresh-токена — отказ без сетевого вызова.
		lg.Warn("refresh_no_token", slog.String("op", op))

		failure := apierrors.AuthFailed(nil, "")
		c.metrics.ObserveRefresh(false)
		c.authFailed(failure)
		return refreshResult{err: failure}
	}

	resp, err := c.send(rctx, http.MethodPost, c.cfg.Auth.RefreshPath, nil, callOptions{
		isRefresh:    true,
		authOverride: pair.RefreshToken,
	})
	if err == nil && resp.StatusCode != http.StatusOK {
		err = apierrors.FromResponse(resp.StatusCode, resp.Body, resp.RequestID)
	}

	if err != nil {
		lg.Warn("refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		failure := apierrors.AuthFailed(err, "")
		c.metrics.ObserveRefresh(false)
		c.authFailed(failure)
		return refreshResult{err: failure}
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token,omitempty"`
		ExpiresAt    int64  `json:"expires_at,omitempty"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.AccessToken == "" {
		failure := apierrors.AuthFailed(fmt.Errorf("%s: malformed refresh response", op), resp.RequestID)
		c.metrics.ObserveRefresh(false)
		c.authFailed(failure)
		return refreshResult{err: failure}
	}

	next := &session.TokenPair{
		AccessToken: body.AccessToken,
		// Refresh-токен ротируется опционально: если бэкенд не прислал
		// новый, прежний остаётся в силе.
		RefreshToken: pair.RefreshToken,
	}
	if body.RefreshToken != "" {
		next.RefreshToken = body.RefreshToken
	}
	if body.ExpiresAt > 0 {
		next.AccessExpiresAt = time.Unix(body.ExpiresAt, 0).UTC()
	}
	next.Normalize()

	if err := c.store.Save(rctx, next); err != nil {
		failure := apierrors.AuthFailed(fmt.Errorf("%s: %w", op, err), resp.RequestID)
		c.metrics.ObserveRefresh(false)
		c.authFailed(failure)
		return refreshResult{err: failure}
	}

	lg.Info("refresh_ok", slog.String("op", op))
	c.metrics.ObserveRefresh(true)
	return refreshResult{pair: next}
}
