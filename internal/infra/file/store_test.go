package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/storage"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := NewStore(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, "lithuanianLearner")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "lithuanianLearner", []byte(`{"version":1}`)))
	require.NoError(t, s.Put(ctx, "lithuanianLearner", []byte(`{"version":1,"xpTotal":5}`)))

	got, err := s.Get(ctx, "lithuanianLearner")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"xpTotal":5}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lithuanianLearner.json", entries[0].Name())
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, s.Put(context.Background(), key, []byte("{}")), key)
	}
}
