// session — хранение пары токенов (access/refresh) на стороне клиента.
//
// Хранилище — единственный разделяемый мутабельный ресурс SDK:
// читает его каждый запрос, пишут только протокол refresh и явные
// login/logout. Читатели обязаны перечитывать значение непосредственно
// перед подстановкой в запрос — между чтением и использованием пара
// могла смениться.
//
// Реализации: память (Memory), файл (File), Redis (Redis). Ключи
// различаются видом клиента (admin/customer), чтобы две сессии
// не пересекались.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSession — в хранилище нет сохранённой пары токенов.
	ErrNoSession = errors.New("no session")
)

// TokenPair — сессия целиком: заменяется новым значением при refresh,
// удаляется при logout или невосстановимом провале refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	// AccessExpiresAt — срок действия access-токена; нулевое значение
	// означает «неизвестен» (бэкенд его не сообщил, а токен не JWT).
	AccessExpiresAt time.Time `json:"access_expires_at,omitempty"`
}

// Normalize восстанавливает AccessExpiresAt из exp-клейма JWT,
// если бэкенд не прислал срок явно. Подпись не проверяется —
// клиенту она не нужна, токен для него opaque bearer.
func (p *TokenPair) Normalize() {
	if p == nil || !p.AccessExpiresAt.IsZero() || p.AccessToken == "" {
		return
	}

	if exp, ok := AccessExpiry(p.AccessToken); ok {
		p.AccessExpiresAt = exp
	}
}

// ExpiresWithin — истекает ли access-токен в окне leeway.
// Неизвестный срок считается неистекающим (решает 401).
func (p *TokenPair) ExpiresWithin(leeway time.Duration) bool {
	if p == nil || p.AccessExpiresAt.IsZero() || leeway <= 0 {
		return false
	}

	return time.Now().Add(leeway).After(p.AccessExpiresAt)
}

// AccessExpiry извлекает exp из JWT без проверки подписи.
func AccessExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Store — контракт хранилища сессии.
// Реализации обязаны быть потокобезопасными.
type Store interface {
	// Tokens возвращает текущую пару или ErrNoSession.
	Tokens(ctx context.Context) (*TokenPair, error)
	// Save заменяет пару целиком.
	Save(ctx context.Context, p *TokenPair) error
	// Clear удаляет сессию; отсутствие сессии ошибкой не считается.
	Clear(ctx context.Context) error
}
