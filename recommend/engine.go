package recommend

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/harmonia/config"
	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/theory/chord"
	"github.com/RyanBlaney/harmonia/theory/key"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// Defaults used when no configuration is supplied
const (
	DefaultLimit    = 10
	DefaultMaxDepth = 3
)

// Context is the tonal state an engine answers queries against
type Context struct {
	Key     pitch.Note          `json:"key"`
	Mode    scale.ModeID        `json:"mode"`
	Current *chord.ParsedSymbol `json:"current,omitempty"` // nil when no chord is set
}

// Engine computes next-chord recommendations for one context. An Engine is
// not safe for concurrent use; give each goroutine its own.
type Engine struct {
	ctx      Context
	limit    int
	maxDepth int
	logger   logging.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithConfig applies the default key, mode, comprehensive limit and chain
// depth from configuration
func WithConfig(cfg config.EngineConfig) Option {
	return func(e *Engine) {
		if cfg.DefaultKey != "" {
			e.ctx.Key = cfg.DefaultKey
		}
		if cfg.DefaultMode != "" {
			e.ctx.Mode = cfg.DefaultMode
		}
		if cfg.ComprehensiveLimit > 0 {
			e.limit = cfg.ComprehensiveLimit
		}
		if cfg.DoubleDominantDepth > 0 {
			e.maxDepth = cfg.DoubleDominantDepth
		}
	}
}

// WithMaxDepth sets how many dominants double-dominant chains stack
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New creates an engine in C Ionian with no current chord
func New(opts ...Option) *Engine {
	e := &Engine{
		ctx: Context{
			Key:  pitch.C,
			Mode: scale.Ionian,
		},
		limit:    DefaultLimit,
		maxDepth: DefaultMaxDepth,
		logger:   &logging.NoOpLogger{},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.WithFields(logging.Fields{
		"component": "recommendation_engine",
	})

	return e
}

// SetKey replaces the key and mode. Neither is validated until the next
// query.
func (e *Engine) SetKey(key pitch.Note, mode scale.ModeID) {
	e.ctx.Key = key
	e.ctx.Mode = mode
}

// SetKeyDefault replaces the key and resets the mode to Ionian
func (e *Engine) SetKeyDefault(key pitch.Note) {
	e.SetKey(key, scale.Ionian)
}

// SetKeyFromChords estimates the key of a chord sequence and sets it. The
// last chord becomes the current chord.
func (e *Engine) SetKeyFromChords(symbols []string, profile key.Profile) (key.Estimate, error) {
	est, err := key.FromChords(symbols, profile)
	if err != nil {
		return key.Estimate{}, fmt.Errorf("key estimation: %w", err)
	}

	e.SetKey(est.Key, est.Mode)
	e.SetCurrentChord(symbols[len(symbols)-1])

	e.logger.Debug("key estimated from chords", e.fields(), logging.Fields{
		"confidence": est.Confidence,
		"chords":     len(symbols),
	})

	return est, nil
}

// SetCurrentChord parses a chord symbol into the context. Blank input
// clears the current chord.
func (e *Engine) SetCurrentChord(symbol string) {
	parsed := chord.ParseSymbol(symbol)
	if !parsed.Parsed {
		e.ctx.Current = nil
		return
	}
	e.ctx.Current = &parsed
}

// ClearCurrentChord removes the current chord
func (e *Engine) ClearCurrentChord() {
	e.ctx.Current = nil
}

// Snapshot returns a copy of the current context
func (e *Engine) Snapshot() Context {
	snapshot := e.ctx
	if e.ctx.Current != nil {
		current := *e.ctx.Current
		snapshot.Current = &current
	}
	return snapshot
}

// Limit is the default size of Comprehensive results
func (e *Engine) Limit() int {
	return e.limit
}

func (e *Engine) fields() logging.Fields {
	fields := logging.Fields{
		"key":  e.ctx.Key,
		"mode": e.ctx.Mode,
	}
	if e.ctx.Current != nil {
		fields["chord"] = e.ctx.Current.Symbol
	}
	return fields
}

// All runs every strategy. Any lookup error aborts the whole query.
func (e *Engine) All() (Set, error) {
	var (
		set Set
		err error
	)

	if set.Diatonic, err = e.Diatonic(); err != nil {
		return Set{}, err
	}
	if set.SecondaryDominant, err = e.SecondaryDominant(); err != nil {
		return Set{}, err
	}
	if set.DoubleDominant, err = e.DoubleDominant(); err != nil {
		return Set{}, err
	}
	if set.ModalInterchange, err = e.ModalInterchange(); err != nil {
		return Set{}, err
	}
	if set.ChordSubstitution, err = e.ChordSubstitution(); err != nil {
		return Set{}, err
	}

	return set, nil
}

// Comprehensive merges every strategy into one ranked list. Duplicate
// symbols keep their first occurrence in strategy order, even when a later
// strategy scored the chord higher. A negative limit uses the engine
// default.
func (e *Engine) Comprehensive(limit int) ([]Recommendation, error) {
	if limit < 0 {
		limit = e.limit
	}

	set, err := e.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	unique := make([]Recommendation, 0, set.Len())
	for _, rec := range set.Flatten() {
		if seen[rec.Symbol] {
			continue
		}
		seen[rec.Symbol] = true
		unique = append(unique, rec)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Probability > unique[j].Probability
	})

	if len(unique) > limit {
		unique = unique[:limit]
	}

	e.logger.Debug("comprehensive recommendations ranked", e.fields(), logging.Fields{
		"candidates": set.Len(),
		"returned":   len(unique),
	})

	return unique, nil
}

// Quick builds a throwaway engine for one key, mode and chord and runs
// every strategy
func Quick(key pitch.Note, symbol string, mode scale.ModeID) (Set, error) {
	e := New()
	e.SetKey(key, mode)
	e.SetCurrentChord(symbol)
	return e.All()
}
