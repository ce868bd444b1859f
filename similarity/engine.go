package similarity

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/hierarchy"
	"github.com/poiesic/cilin/thesaurus"
)

// Legacy constants.
const (
	// FloorScore is returned when either code is closed or the codes share no prefix.
	FloorScore = 0.1
	// RelatedScore is returned for two identical related-marker codes.
	RelatedScore = 0.5

	degrees = 180.0
)

// legacyCoefficients maps a truncated common-prefix length to its weight.
var legacyCoefficients = map[int]float64{
	1: 0.65,
	2: 0.8,
	4: 0.9,
	5: 0.96,
}

// Density2013 constants.
const (
	Sigma2013 = 0.3
	Alpha2013 = 0.47
	Beta2013  = 0.26
)

// levelWeights2016 holds the edge weights from the top of the tree down.
var levelWeights2016 = [...]float64{0.5, 1, 2.5, 2.5}

// rootDistance2016 is the distance between codes that share no prefix.
const rootDistance2016 = 18.0

// Engine computes word and code similarities over a hierarchy.
type Engine struct {
	hierarchy *hierarchy.Hierarchy
	index     *thesaurus.Index
	observer  Observer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithObserver sets an observer notified on every Similarity call.
// Default is a no-op observer.
func WithObserver(observer Observer) Option {
	return func(e *Engine) error {
		if observer == nil {
			observer = &noopObserver{}
		}
		e.observer = observer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// New creates an Engine.
func New(h *hierarchy.Hierarchy, opts ...Option) (*Engine, error) {
	if h == nil {
		return nil, ErrHierarchyRequired
	}

	e := &Engine{
		hierarchy: h,
		index:     h.Index(),
		observer:  &noopObserver{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Hierarchy returns the hierarchy the engine scores against.
func (e *Engine) Hierarchy() *hierarchy.Hierarchy {
	return e.hierarchy
}

// Similarity scores two words with the given strategy.
// Unknown words score 0 without error.
func (e *Engine) Similarity(strategy Strategy, w1, w2 string) (float64, error) {
	start := time.Now()
	var (
		score float64
		err   error
	)
	switch strategy {
	case Legacy:
		score = e.Legacy(w1, w2)
	case Density2013:
		score = e.Density2013(w1, w2)
	case Distance2016:
		score, err = e.Distance2016(w1, w2)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
	e.observer.ObserveSimilarity(strategy, score, time.Since(start), err)
	return score, err
}

// Legacy returns the best legacy score over all code pairs of w1 and w2.
func (e *Engine) Legacy(w1, w2 string) float64 {
	codes1, codes2 := e.index.Senses(w1), e.index.Senses(w2)
	best := 0.0
	for _, c1 := range codes1 {
		for _, c2 := range codes2 {
			if s := e.ScoreByCode(c1, c2); s > best {
				best = s
			}
		}
	}
	return best
}

// ScoreByCode returns the legacy score of a code pair.
func (e *Engine) ScoreByCode(c1, c2 core.Code) float64 {
	prefix := hierarchy.CommonPrefix(c1, c2)
	if c1.IsClosed() || c2.IsClosed() || prefix == "" {
		return FloorScore
	}
	if len(prefix) >= core.CodeLength-1 {
		return fullMatchScore(c1, c2)
	}

	coeff, ok := legacyCoefficients[len(prefix)]
	if !ok {
		return 0
	}
	n := e.hierarchy.SiblingCount(prefix)
	if n == 0 {
		e.degenerate(c1, c2, prefix)
		return FloorScore
	}
	k := hierarchy.BranchDistance(c1, c2)
	return coeff * math.Cos(float64(n)*math.Pi/degrees) * float64(n-k+1) / float64(n)
}

// Density2013 returns sigma*exp(-alpha*dist) + (1-sigma)*tanh(beta*density)
// for the words' code sets. Returns 0 when either word is unknown.
func (e *Engine) Density2013(w1, w2 string) float64 {
	codes1, codes2 := e.index.Senses(w1), e.index.Senses(w2)
	if len(codes1) == 0 || len(codes2) == 0 {
		return 0
	}
	path := math.Exp(-Alpha2013 * e.PathDistance(codes1, codes2))
	density := math.Tanh(Beta2013 * e.Density(codes1, codes2))
	return Sigma2013*path + (1-Sigma2013)*density
}

// PathDistance returns the largest tree distance 2*(5-layer) over all code
// pairs.
func (e *Engine) PathDistance(codes1, codes2 []core.Code) float64 {
	worst := 0
	for _, c1 := range codes1 {
		for _, c2 := range codes2 {
			layer, err := hierarchy.LayerOf(len(hierarchy.CommonPrefix(c1, c2)))
			if err != nil {
				continue
			}
			if d := 2 * (hierarchy.MaxLayer - layer); d > worst {
				worst = d
			}
		}
	}
	return float64(worst)
}

// Density returns the largest -ln(count/N) over all code pairs, where count
// is the number of words filed between the pair and N is the taxonomy size.
// Pairs with no words between them contribute 0.
func (e *Engine) Density(codes1, codes2 []core.Code) float64 {
	total := e.index.TotalWordCount()
	if total == 0 {
		return 0
	}
	best := 0.0
	for _, c1 := range codes1 {
		for _, c2 := range codes2 {
			count := e.hierarchy.WordCountBetween(c1, c2)
			if count == 0 {
				continue
			}
			if d := -math.Log(float64(count) / float64(total)); d > best {
				best = d
			}
		}
	}
	return best
}

// Distance2016 returns the best 2016 score over all code pairs of w1 and w2.
func (e *Engine) Distance2016(w1, w2 string) (float64, error) {
	codes1, codes2 := e.index.Senses(w1), e.index.Senses(w2)
	best := 0.0
	for _, c1 := range codes1 {
		for _, c2 := range codes2 {
			s, err := e.Score2016ByCode(c1, c2)
			if err != nil {
				return 0, err
			}
			if s > best {
				best = s
			}
		}
	}
	return best, nil
}

// Score2016ByCode returns (1.05-0.05*d)*sqrt(exp(-k/(2n))) for a code pair,
// with the same short-circuits as ScoreByCode.
func (e *Engine) Score2016ByCode(c1, c2 core.Code) (float64, error) {
	prefix := hierarchy.CommonPrefix(c1, c2)
	if c1.IsClosed() || c2.IsClosed() || prefix == "" {
		return FloorScore, nil
	}
	if len(prefix) >= core.CodeLength-1 {
		return fullMatchScore(c1, c2), nil
	}

	layer, err := hierarchy.LayerOf(len(prefix))
	if err != nil {
		return 0, err
	}
	d, err := LevelDistance(layer)
	if err != nil {
		return 0, err
	}
	n := e.hierarchy.SiblingCount(prefix)
	if n == 0 {
		e.degenerate(c1, c2, prefix)
		return FloorScore, nil
	}
	k := hierarchy.BranchDistance(c1, c2)
	return (1.05 - 0.05*d) * math.Sqrt(math.Exp(-float64(k)/(2*float64(n)))), nil
}

// LevelDistance returns the weighted distance between two codes whose
// common prefix sits at layer. Layer 0 is the root distance; layer 5 is 0.
func LevelDistance(layer int) (float64, error) {
	if layer < 0 || layer > hierarchy.MaxLayer {
		return 0, fmt.Errorf("%w: %d", core.ErrInvalidLayer, layer)
	}
	if layer == 0 {
		return rootDistance2016, nil
	}
	sum := 0.0
	for _, w := range levelWeights2016[:hierarchy.MaxLayer-layer] {
		sum += w
	}
	return 2 * sum, nil
}

func fullMatchScore(c1, c2 core.Code) float64 {
	switch {
	case c1.IsSynonym() && c2.IsSynonym():
		return 1
	case c1.IsRelated() && c2.IsRelated():
		return RelatedScore
	default:
		return 0
	}
}

func (e *Engine) degenerate(c1, c2 core.Code, prefix string) {
	e.logger.Debug("degenerate branch",
		"code1", c1,
		"code2", c2,
		"prefix", prefix,
		"err", core.ErrDegenerateBranch)
}
