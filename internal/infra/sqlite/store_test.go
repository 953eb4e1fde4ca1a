package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/storage"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "mokykis.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "lithuanianLearner")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "lithuanianLearner", []byte(`{"version":1}`)))
	require.NoError(t, s.Put(ctx, "lithuanianLearner", []byte(`{"version":1,"xpTotal":9}`)))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, "lithuanianLearner")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"xpTotal":9}`, string(got))
}
