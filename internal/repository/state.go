package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/migration"
	"github.com/aliskhannn/mokykis/internal/storage"
)

// DefaultStateKey is the key the whole state is stored under.
const DefaultStateKey = "lithuanianLearner"

// StateRepository loads and saves the single UserState blob.
type StateRepository struct {
	store    storage.BlobStore
	key      string
	migrator *migration.Migrator
}

// NewStateRepository binds store to key. An empty key uses DefaultStateKey.
func NewStateRepository(store storage.BlobStore, key string, migrator *migration.Migrator) *StateRepository {
	if key == "" {
		key = DefaultStateKey
	}
	if migrator == nil {
		migrator = migration.New(nil)
	}
	return &StateRepository{store: store, key: key, migrator: migrator}
}

func (r *StateRepository) Key() string {
	return r.key
}

// Load returns the migrated state. A missing blob yields the default state;
// only backend I/O errors are returned.
func (r *StateRepository) Load(ctx context.Context, now time.Time) (*entities.UserState, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return entities.NewUserState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", r.key, err)
	}
	return r.migrator.Migrate(raw, now), nil
}

// Save writes state verbatim.
func (r *StateRepository) Save(ctx context.Context, state *entities.UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("save state %q: %w", r.key, err)
	}
	return nil
}
