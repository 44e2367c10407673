package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bagenigilbert77664/mizizzi-go-client/apierrors"
)

func TestInflight_NewerCallCancelsOlder(t *testing.T) {
	t.Parallel()

	tbl := newInflightTable()

	ctx1, release1 := tbl.begin(context.Background(), "catalog.search")
	defer release1()

	ctx2, release2 := tbl.begin(context.Background(), "catalog.search")
	defer release2()

	require.ErrorIs(t, context.Cause(ctx1), apierrors.ErrSuperseded)
	require.NoError(t, ctx2.Err())
}

func TestInflight_DistinctKeysIndependent(t *testing.T) {
	t.Parallel()

	tbl := newInflightTable()

	ctx1, release1 := tbl.begin(context.Background(), "catalog.search")
	defer release1()

	ctx2, release2 := tbl.begin(context.Background(), "cart.get")
	defer release2()

	require.NoError(t, ctx1.Err())
	require.NoError(t, ctx2.Err())
}

func TestInflight_ReleaseRemovesOnlyOwnEntry(t *testing.T) {
	t.Parallel()

	tbl := newInflightTable()

	_, release1 := tbl.begin(context.Background(), "cart.get")
	ctx2, release2 := tbl.begin(context.Background(), "cart.get")
	defer release2()

	// Запоздавший release вытесненного вызова не снимает регистрацию
	// текущего владельца.
	release1()
	require.NoError(t, ctx2.Err())

	// Третий вызов всё ещё вытесняет второго.
	ctx3, release3 := tbl.begin(context.Background(), "cart.get")
	defer release3()
	require.ErrorIs(t, context.Cause(ctx2), apierrors.ErrSuperseded)
	require.NoError(t, ctx3.Err())
}

func TestInflight_ReleaseCancelsOwnContext(t *testing.T) {
	t.Parallel()

	tbl := newInflightTable()

	ctx, release := tbl.begin(context.Background(), "orders.list")
	release()

	require.Error(t, ctx.Err())
	// Самоотмена при release не выглядит как вытеснение.
	require.NotErrorIs(t, context.Cause(ctx), apierrors.ErrSuperseded)
}
