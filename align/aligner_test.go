package align

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/hierarchy"
	"github.com/poiesic/cilin/similarity"
	"github.com/poiesic/cilin/thesaurus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `Aa01A01= 苹果 梨
Aa01A02= 香蕉
Ba01A01= 吃 食用
Ba01B01= 喜欢 爱
`

func newEngine(t *testing.T) *similarity.Engine {
	t.Helper()
	idx, err := thesaurus.Build(strings.NewReader(fixture))
	require.NoError(t, err)
	h, err := hierarchy.New(idx)
	require.NoError(t, err)
	e, err := similarity.New(h)
	require.NoError(t, err)
	return e
}

func newAligner(t *testing.T, opts ...Option) *Aligner {
	t.Helper()
	a, err := New(newEngine(t), opts...)
	require.NoError(t, err)
	return a
}

type recordingObserver struct {
	mu     sync.Mutex
	scores []float64
	errs   []error
}

func (r *recordingObserver) ObserveAlignment(score float64, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
	r.errs = append(r.errs, err)
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, ErrEngineRequired, err)

	_, err = New(newEngine(t), WithStrategy(similarity.Strategy(99)))
	assert.ErrorIs(t, err, similarity.ErrUnknownStrategy)

	a := newAligner(t, WithObserver(nil), WithLogger(nil))
	assert.Equal(t, similarity.Legacy, a.Strategy())
	assert.NotNil(t, a.observer)
	assert.NotNil(t, a.logger)
}

func TestAlign(t *testing.T) {
	for _, strategy := range similarity.Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			a := newAligner(t, WithStrategy(strategy))
			e := a.engine

			sim := func(w1, w2 string) float64 {
				s, err := e.Similarity(strategy, w1, w2)
				require.NoError(t, err)
				return s
			}
			appleBanana := sim("苹果", "香蕉")

			got, err := a.Align([]string{"苹果"}, []string{"梨", "香蕉"})
			require.NoError(t, err)
			assert.InDelta(t, max(sim("苹果", "梨"), appleBanana), got, 1e-12)

			got, err = a.Align([]string{"苹果", "未知词"}, []string{"香蕉"})
			require.NoError(t, err)
			assert.InDelta(t, appleBanana, got, 1e-12)

			got, err = a.Align([]string{"苹果", "吃"}, []string{"香蕉", "食用"})
			require.NoError(t, err)
			assert.InDelta(t, (appleBanana+sim("吃", "食用"))/2, got, 1e-12)
		})
	}
}

func TestAlignSymmetric(t *testing.T) {
	a := newAligner(t)
	s1 := []string{"苹果", "吃", "未知词"}
	s2 := []string{"香蕉", "爱"}

	ab, err := a.Align(s1, s2)
	require.NoError(t, err)
	ba, err := a.Align(s2, s1)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestAlignEmptySequence(t *testing.T) {
	obs := &recordingObserver{}
	a := newAligner(t, WithObserver(obs))

	_, err := a.Align(nil, []string{"苹果"})
	assert.ErrorIs(t, err, core.ErrEmptySequence)
	_, err = a.Align([]string{"苹果"}, []string{})
	assert.ErrorIs(t, err, core.ErrEmptySequence)

	require.Len(t, obs.errs, 2)
	assert.ErrorIs(t, obs.errs[0], core.ErrEmptySequence)
}

func TestAlignUnknownWordsOnly(t *testing.T) {
	a := newAligner(t)
	got, err := a.Align([]string{"甲"}, []string{"乙"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{score: 0, want: 0},
		{score: 0.04, want: 0},
		{score: 0.46, want: 5},
		{score: 0.74, want: 7},
		{score: 0.96, want: 10},
		{score: 1, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %v", tt.score)
	}
}
