package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bagenigilbert77664/mizizzi-go-client/client"
	"github.com/bagenigilbert77664/mizizzi-go-client/models"
	logctx "github.com/bagenigilbert77664/mizizzi-go-client/pkg/log"
	"github.com/bagenigilbert77664/mizizzi-go-client/pkg/redact"
	"github.com/bagenigilbert77664/mizizzi-go-client/session"
)

// AuthService — логин/регистрация/выход. Единственный сервис, который
// пишет в хранилище сессии напрямую (протокол refresh — второй и
// последний писатель).
type AuthService struct {
	c Caller
}

// Login выполняет вход и сохраняет полученную пару токенов.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "services.auth.Login"

	in := models.LoginRequest{Email: email, Password: password}

	var out models.AuthResponse
	if err := s.c.Call(ctx, http.MethodPost, "/auth/login", in, &out, client.WithoutAuth()); err != nil {
		logctx.From(ctx).Warn("login_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(email)),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.saveSession(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out.User, nil
}

// Register создаёт аккаунт и сразу открывает сессию.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "services.auth.Register"

	var out models.AuthResponse
	if err := s.c.Call(ctx, http.MethodPost, "/auth/register", req, &out, client.WithoutAuth()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.saveSession(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out.User, nil
}

// Logout отзывает refresh-токен на бэкенде и чистит локальную сессию.
// Локальная сессия чистится даже при сетевой ошибке отзыва: пользователь
// попросил выйти — выходим.
func (s *AuthService) Logout(ctx context.Context) error {
	const op = "services.auth.Logout"

	callErr := s.c.Call(ctx, http.MethodPost, "/auth/logout", nil, nil)

	if err := s.c.Store().Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if callErr != nil {
		logctx.From(ctx).Warn("logout_revoke_failed",
			slog.String("op", op),
			slog.String("err", callErr.Error()),
		)
	}

	return nil
}

// CurrentUser — профиль владельца сессии.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	const op = "services.auth.CurrentUser"

	var out models.User
	if err := s.c.Call(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *AuthService) saveSession(ctx context.Context, resp *models.AuthResponse) error {
	pair := &session.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.AccessExpiresAt > 0 {
		pair.AccessExpiresAt = time.Unix(resp.AccessExpiresAt, 0).UTC()
	}

	return s.c.Store().Save(ctx, pair)
}
