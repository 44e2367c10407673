package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Тесты для session: модель TokenPair (exp из JWT, окно leeway)
// и реализации Memory/File. Redis покрыт интеграционными тестами
// в redis_integration_test.go.

// signedJWT — вспомогательный JWT c заданным exp (подпись произвольная,
// клиент её не проверяет).
func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	return s
}

func TestAccessExpiry_FromJWT(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got, ok := AccessExpiry(signedJWT(t, exp))
	require.True(t, ok)
	require.WithinDuration(t, exp, got, time.Second)
}

func TestAccessExpiry_OpaqueToken(t *testing.T) {
	t.Parallel()

	_, ok := AccessExpiry("not-a-jwt")
	require.False(t, ok)
}

func TestNormalize_FillsExpiryOnlyWhenMissing(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	p := &TokenPair{AccessToken: signedJWT(t, exp), RefreshToken: "r"}
	p.Normalize()
	require.WithinDuration(t, exp, p.AccessExpiresAt, time.Second)

	// Явный срок не перезатирается.
	explicit := time.Now().Add(2 * time.Hour)
	p2 := &TokenPair{AccessToken: signedJWT(t, exp), AccessExpiresAt: explicit}
	p2.Normalize()
	require.Equal(t, explicit, p2.AccessExpiresAt)
}

func TestExpiresWithin(t *testing.T) {
	t.Parallel()

	soon := &TokenPair{AccessExpiresAt: time.Now().Add(10 * time.Second)}
	require.True(t, soon.ExpiresWithin(30*time.Second))
	require.False(t, soon.ExpiresWithin(time.Second))

	// Неизвестный срок — не истекает (решает 401).
	unknown := &TokenPair{}
	require.False(t, unknown.ExpiresWithin(time.Hour))

	// leeway<=0 отключает проактивный режим.
	require.False(t, soon.ExpiresWithin(0))
}

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := NewMemory()

	_, err := st.Tokens(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, st.Save(ctx, &TokenPair{AccessToken: "a1", RefreshToken: "r1"}))

	got, err := st.Tokens(ctx)
	require.NoError(t, err)
	require.Equal(t, "a1", got.AccessToken)
	require.Equal(t, "r1", got.RefreshToken)

	// Tokens возвращает копию: мутация снаружи не влияет на хранилище.
	got.AccessToken = "mutated"
	again, err := st.Tokens(ctx)
	require.NoError(t, err)
	require.Equal(t, "a1", again.AccessToken)

	require.NoError(t, st.Clear(ctx))
	_, err = st.Tokens(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	// Clear идемпотентен.
	require.NoError(t, st.Clear(ctx))
}

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	st := NewFile(path)

	_, err := st.Tokens(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, st.Save(ctx, &TokenPair{AccessToken: "a1", RefreshToken: "r1"}))

	// Права файла — только владелец.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := st.Tokens(ctx)
	require.NoError(t, err)
	require.Equal(t, "a1", got.AccessToken)
	require.Equal(t, "r1", got.RefreshToken)

	// Замена целиком.
	require.NoError(t, st.Save(ctx, &TokenPair{AccessToken: "a2", RefreshToken: "r2"}))
	got, err = st.Tokens(ctx)
	require.NoError(t, err)
	require.Equal(t, "a2", got.AccessToken)

	require.NoError(t, st.Clear(ctx))
	_, err = st.Tokens(ctx)
	require.ErrorIs(t, err, ErrNoSession)
	require.NoError(t, st.Clear(ctx))
}

func TestFile_CorruptedFile_Error(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	st := NewFile(path)
	_, err := st.Tokens(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoSession)
}
