// Package achievement evaluates the unlockable achievement catalog. Each
// achievement carries a CEL condition over a snapshot of the user state.
package achievement

import (
	"embed"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

//go:embed catalog.yaml
var catalogFS embed.FS

var ErrDuplicateID = errors.New("duplicate achievement id")

// Definition is one catalog entry.
type Definition struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Condition   string `yaml:"condition"`
	RewardXP    int    `yaml:"reward_xp"`
}

type catalogFile struct {
	Achievements []Definition `yaml:"achievements"`
}

// Stats is the state snapshot conditions are evaluated against.
type Stats struct {
	LessonsCompleted int
	VocabularySize   int
	Streak           int
	XPTotal          int
	PerfectLessons   int
	SentencesLearned int
	SrsItems         int
}

// StatsOf collects the condition variables from state.
func StatsOf(state *entities.UserState) Stats {
	perfect := 0
	for _, l := range state.LessonsCompleted {
		if l.Accuracy == 100 {
			perfect++
		}
	}
	return Stats{
		LessonsCompleted: len(state.LessonsCompleted),
		VocabularySize:   state.CountItems(entities.KindWord),
		Streak:           state.StreakCount,
		XPTotal:          state.XPTotal,
		PerfectLessons:   perfect,
		SentencesLearned: len(state.Sentences.Learned),
		SrsItems:         len(state.SrsItems),
	}
}

func (s Stats) activation() map[string]any {
	return map[string]any{
		"lessons_completed": int64(s.LessonsCompleted),
		"vocabulary_size":   int64(s.VocabularySize),
		"streak":            int64(s.Streak),
		"xp_total":          int64(s.XPTotal),
		"perfect_lessons":   int64(s.PerfectLessons),
		"sentences_learned": int64(s.SentencesLearned),
		"srs_items":         int64(s.SrsItems),
	}
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("lessons_completed", cel.IntType),
		cel.Variable("vocabulary_size", cel.IntType),
		cel.Variable("streak", cel.IntType),
		cel.Variable("xp_total", cel.IntType),
		cel.Variable("perfect_lessons", cel.IntType),
		cel.Variable("sentences_learned", cel.IntType),
		cel.Variable("srs_items", cel.IntType),
	)
}

type compiled struct {
	def Definition
	prg cel.Program
}

// Catalog is a compiled, ordered set of achievement definitions.
type Catalog struct {
	entries []compiled
}

// DefaultCatalog compiles the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	data, err := catalogFS.ReadFile("catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog compiles a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(file.Achievements)
}

// NewCatalog compiles defs. Conditions must be boolean CEL expressions.
func NewCatalog(defs []Definition) (*Catalog, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}

	seen := make(map[string]struct{}, len(defs))
	c := &Catalog{entries: make([]compiled, 0, len(defs))}
	for _, def := range defs {
		if _, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, def.ID)
		}
		seen[def.ID] = struct{}{}

		ast, iss := env.Compile(def.Condition)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("compile %s: %w", def.ID, iss.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("compile %s: condition must be bool, got %s", def.ID, ast.OutputType())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", def.ID, err)
		}
		c.entries = append(c.entries, compiled{def: def, prg: prg})
	}
	return c, nil
}

// Definitions returns the catalog in declaration order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.def)
	}
	return out
}

// Find returns the definition with id.
func (c *Catalog) Find(id string) (Definition, bool) {
	for _, e := range c.entries {
		if e.def.ID == id {
			return e.def, true
		}
	}
	return Definition{}, false
}

// Eligible returns, in catalog order, the definitions whose condition holds
// for stats and whose id is not in unlocked.
func (c *Catalog) Eligible(stats Stats, unlocked []string) ([]Definition, error) {
	have := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		have[id] = struct{}{}
	}

	vars := stats.activation()
	var out []Definition
	for _, e := range c.entries {
		if _, ok := have[e.def.ID]; ok {
			continue
		}

		val, _, err := e.prg.Eval(vars)
		if err != nil {
			return nil, fmt.Errorf("eval %s: %w", e.def.ID, err)
		}
		if ok, _ := val.Value().(bool); ok {
			out = append(out, e.def)
		}
	}
	return out, nil
}
