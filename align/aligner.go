package align

import (
	"log/slog"
	"time"

	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/similarity"
)

// Aligner computes sentence similarity from word similarities.
type Aligner struct {
	engine   *similarity.Engine
	strategy similarity.Strategy
	observer Observer
	logger   *slog.Logger
}

// Option configures an Aligner.
type Option func(*Aligner) error

// WithStrategy sets the word similarity strategy.
// Default is similarity.Legacy.
func WithStrategy(strategy similarity.Strategy) Option {
	return func(a *Aligner) error {
		if !strategy.Valid() {
			return similarity.ErrUnknownStrategy
		}
		a.strategy = strategy
		return nil
	}
}

// WithObserver sets an observer notified on every Align call.
func WithObserver(observer Observer) Option {
	return func(a *Aligner) error {
		if observer == nil {
			observer = &noopObserver{}
		}
		a.observer = observer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aligner) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// New creates an Aligner.
func New(engine *similarity.Engine, opts ...Option) (*Aligner, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	a := &Aligner{
		engine:   engine,
		strategy: similarity.Legacy,
		observer: &noopObserver{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Strategy returns the configured similarity strategy.
func (a *Aligner) Strategy() similarity.Strategy {
	return a.strategy
}

// Align returns max(avg over words1 of best match in words2, avg over words2
// of best match in words1). Either sequence being empty is an error wrapping
// core.ErrEmptySequence.
func (a *Aligner) Align(words1, words2 []string) (float64, error) {
	start := time.Now()
	score, err := a.align(words1, words2)
	a.observer.ObserveAlignment(score, time.Since(start), err)
	return score, err
}

func (a *Aligner) align(words1, words2 []string) (float64, error) {
	if len(words1) == 0 || len(words2) == 0 {
		return 0, core.ErrEmptySequence
	}

	forward, err := a.direction(words1, words2)
	if err != nil {
		return 0, err
	}
	backward, err := a.direction(words2, words1)
	if err != nil {
		return 0, err
	}

	a.logger.Debug("aligned",
		"strategy", a.strategy,
		"forward", forward,
		"backward", backward)

	return max(forward, backward), nil
}

// direction averages, over from, each word's best similarity against to.
func (a *Aligner) direction(from, to []string) (float64, error) {
	sum := 0.0
	for _, w1 := range from {
		best := 0.0
		for _, w2 := range to {
			s, err := a.engine.Similarity(a.strategy, w1, w2)
			if err != nil {
				return 0, err
			}
			if s > best {
				best = s
			}
		}
		sum += best
	}
	return sum / float64(len(from)), nil
}

// Grade maps a score in [0,1] to an integer grade in [0,10], rounding half up.
func Grade(score float64) int {
	return int(score*10 + 0.5)
}
