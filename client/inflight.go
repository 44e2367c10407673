package client

import (
	"context"
	"sync"

	"github.com/bagenigilbert77664/mizizzi-go-client/apierrors"
)

// inflightTable отслеживает незавершённые вызовы по логическому ключу
// эндпойнта. Более новый вызов с тем же ключом отменяет предыдущий
// с причиной apierrors.ErrSuperseded — вызывающий старого запроса
// никогда не увидит «устаревший» успех.
type inflightTable struct {
	mu sync.Mutex
	m  map[string]*inflightEntry
}

type inflightEntry struct {
	cancel context.CancelCauseFunc
}

func newInflightTable() *inflightTable {
	return &inflightTable{m: make(map[string]*inflightEntry)}
}

// begin регистрирует вызов по ключу, отменяя предыдущего владельца.
// Возвращает производный контекст и release, который обязан быть вызван
// по завершении (снимает регистрацию, только если она всё ещё наша).
func (t *inflightTable) begin(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)
	entry := &inflightEntry{cancel: cancel}

	t.mu.Lock()
	if prev, ok := t.m[key]; ok {
		prev.cancel(apierrors.ErrSuperseded)
	}
	t.m[key] = entry
	t.mu.Unlock()

	release := func() {
		t.mu.Lock()
		if cur, ok := t.m[key]; ok && cur == entry {
			delete(t.m, key)
		}
		t.mu.Unlock()

		cancel(nil)
	}

	return ctx, release
}
