package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/storage"
)

func TestStateStore_RoundTrip(t *testing.T) {
	dsn := os.Getenv("MOKYKIS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MOKYKIS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, DefaultPoolConfig())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s, err := NewStateStore(ctx, pool)
	require.NoError(t, err)

	const key = "mokykis-test"
	_, err = pool.Exec(ctx, `DELETE FROM user_state WHERE key = $1`, key)
	require.NoError(t, err)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, key, []byte(`{"version":1}`)))
	require.NoError(t, s.Put(ctx, key, []byte(`{"version":1,"xpTotal":3}`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"xpTotal":3}`, string(got))
}
