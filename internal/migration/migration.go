// Package migration turns any persisted blob into a current UserState.
// Migration is total: malformed input degrades to defaults and never errors.
package migration

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// Document is a decoded JSON object at some schema version.
type Document = map[string]any

// Step upgrades a document from version From to From+1.
type Step struct {
	From  int
	Name  string
	Apply func(doc Document, now time.Time) Document
}

// chain must hold one step per version below entities.SchemaVersion.
var chain = []Step{
	{From: 0, Name: "legacy-unversioned", Apply: legacyToV1},
}

// Migrator decodes persisted state.
type Migrator struct {
	log   *zap.Logger
	steps []Step
}

// New creates a Migrator with the built-in chain.
func New(log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{log: log, steps: chain}
}

// Migrate decodes raw with a silent logger.
func Migrate(raw []byte, now time.Time) *entities.UserState {
	return New(nil).Migrate(raw, now)
}

// DetectVersion returns the schema version stamped on doc. A missing or
// non-numeric version means the legacy unversioned shape.
func DetectVersion(doc Document) int {
	v, ok := doc["version"]
	if !ok || v == nil {
		return 0
	}
	if _, isBool := v.(bool); isBool {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Migrate returns the state encoded in raw, upgraded to the current schema.
// now supplies the user's zone for date-key conversion and the due time of
// items created during the upgrade.
func (m *Migrator) Migrate(raw []byte, now time.Time) *entities.UserState {
	if len(bytes.TrimSpace(raw)) == 0 {
		return entities.NewUserState()
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		m.log.Warn("stored state is not a JSON object, using defaults", zap.Error(err))
		return entities.NewUserState()
	}

	version := DetectVersion(doc)
	switch {
	case version == entities.SchemaVersion:
		state := entities.NewUserState()
		err := json.Unmarshal(raw, state)
		if err == nil {
			state.Normalize()
			if !itemsInRange(state.SrsItems) {
				m.log.Warn("stored review items out of range, repairing")
				state.SrsItems = decodeItems(objectOf(doc["srsItems"]), now)
			}
			return state
		}
		m.log.Warn("current state failed strict decode, recovering fields", zap.Error(err))
		return decodeLenient(doc, now)

	case version > entities.SchemaVersion:
		m.log.Warn("stored state is newer than this build, reading known fields",
			zap.Int("stored_version", version),
			zap.Int("current_version", entities.SchemaVersion),
		)
		return decodeLenient(doc, now)
	}

	for _, step := range m.steps {
		if step.From != version {
			continue
		}
		m.log.Info("migrating stored state",
			zap.String("step", step.Name),
			zap.Int("from", step.From),
			zap.Int("to", step.From+1),
		)
		doc = step.Apply(doc, now)
		version = step.From + 1
	}
	if version != entities.SchemaVersion {
		m.log.Warn("no migration path, reading known fields", zap.Int("version", version))
	}
	return decodeLenient(doc, now)
}
