package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis — хранилище сессии в Redis для серверных потребителей SDK
// (боты, интеграции), где процесс может рестартовать, а сессия должна
// пережить рестарт.
//
// Храним как Redis Hash с полями: at (access), rt (refresh), exp (unix, 0 — неизвестен).
type Redis struct {
	rdb *redis.Client
	key string
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// kind различает сессии admin/customer в одном инстансе Redis;
// если prefix пустой — используется "mizizzi:session:".
func NewRedis(redisURL, prefix, kind string) (*Redis, error) {
	if prefix == "" {
		prefix = "mizizzi:session:"
	}
	if kind == "" {
		kind = "customer"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Redis{rdb: rdb, key: prefix + kind}, nil
}

func (r *Redis) Tokens(ctx context.Context) (*TokenPair, error) {
	const op = "session.redis.Tokens"

	m, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(m) == 0 {
		return nil, ErrNoSession
	}

	p := &TokenPair{
		AccessToken:  m["at"],
		RefreshToken: m["rt"],
	}

	if expUnix, err := strconv.ParseInt(m["exp"], 10, 64); err == nil && expUnix > 0 {
		p.AccessExpiresAt = time.Unix(expUnix, 0).UTC()
	}

	if p.AccessToken == "" && p.RefreshToken == "" {
		return nil, ErrNoSession
	}

	return p, nil
}

func (r *Redis) Save(ctx context.Context, p *TokenPair) error {
	const op = "session.redis.Save"

	cp := *p
	cp.Normalize()

	var expUnix int64
	if !cp.AccessExpiresAt.IsZero() {
		expUnix = cp.AccessExpiresAt.Unix()
	}

	kv := map[string]string{
		"at":  cp.AccessToken,
		"rt":  cp.RefreshToken,
		"exp": strconv.FormatInt(expUnix, 10),
	}

	if err := r.rdb.HSet(ctx, r.key, kv).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	const op = "session.redis.Clear"

	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *Redis) Close() error { return r.rdb.Close() }
