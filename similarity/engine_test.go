package similarity

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/hierarchy"
	"github.com/poiesic/cilin/thesaurus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `Aa01A01= 人 士 人物
Aa01A02= 人类 生人 全人类
Aa01A05= 人手 人员
Aa01B01= 男人 男子
Aa02A01= 我 咱
Ab01A01= 男女 男女老少
Ab01A02# 老少 老幼
Ba01A01@ 万物
`

const totalWords = 17.0

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	idx, err := thesaurus.Build(strings.NewReader(fixture))
	require.NoError(t, err)
	h, err := hierarchy.New(idx, hierarchy.WithMemoization(true))
	require.NoError(t, err)
	e, err := New(h, opts...)
	require.NoError(t, err)
	return e
}

func cosDeg(n float64) float64 {
	return math.Cos(n * math.Pi / 180)
}

type recordingObserver struct {
	mu      sync.Mutex
	calls   []Strategy
	lastErr error
}

func (r *recordingObserver) ObserveSimilarity(s Strategy, _ float64, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
	r.lastErr = err
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, ErrHierarchyRequired, err)

	e := newEngine(t, WithObserver(nil), WithLogger(nil))
	assert.NotNil(t, e.observer)
	assert.NotNil(t, e.logger)
	assert.NotNil(t, e.Hierarchy())
}

func TestLegacy(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name   string
		w1, w2 string
		want   float64
	}{
		{name: "same synonym code", w1: "人", w2: "士", want: 1},
		{name: "self", w1: "人", w2: "人", want: 1},
		{name: "atom siblings", w1: "人", w2: "人类", want: 0.96 * cosDeg(3)},
		{name: "atom siblings far apart", w1: "人", w2: "人手", want: 0},
		{name: "group siblings", w1: "人", w2: "男人", want: 0.9 * cosDeg(2)},
		{name: "mid siblings", w1: "人", w2: "我", want: 0.8 * cosDeg(2)},
		{name: "major shared", w1: "人", w2: "男女", want: 0.65 * cosDeg(2)},
		{name: "no shared prefix", w1: "人", w2: "万物", want: FloorScore},
		{name: "related marker", w1: "老少", w2: "老幼", want: RelatedScore},
		{name: "closed marker", w1: "万物", w2: "万物", want: FloorScore},
		{name: "related vs synonym", w1: "老少", w2: "男女", want: 0.96 * cosDeg(2)},
		{name: "unknown", w1: "人", w2: "外星人", want: 0},
		{name: "both unknown", w1: "甲", w2: "乙", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.Legacy(tt.w1, tt.w2), 1e-9)
		})
	}
}

func TestScoreByCodeFullMatch(t *testing.T) {
	e := newEngine(t)
	// Differ only in the marker.
	assert.Equal(t, 0.0, e.ScoreByCode("Ab01A02=", "Ab01A02#"))
	assert.Equal(t, FloorScore, e.ScoreByCode("Ab01A02@", "Ab01A02@"))
}

func TestScoreByCodeDegenerate(t *testing.T) {
	e := newEngine(t)
	// Neither code is in the index so the shared prefix has no children.
	assert.Equal(t, FloorScore, e.ScoreByCode("Zz01A01=", "Zz01A02="))
	s, err := e.Score2016ByCode("Zz01A01=", "Zz01A02=")
	require.NoError(t, err)
	assert.Equal(t, FloorScore, s)
}

func TestLevelDistance(t *testing.T) {
	tests := []struct {
		layer   int
		want    float64
		wantErr bool
	}{
		{layer: 0, want: 18},
		{layer: 1, want: 13},
		{layer: 2, want: 8},
		{layer: 3, want: 3},
		{layer: 4, want: 1},
		{layer: 5, want: 0},
		{layer: 6, wantErr: true},
		{layer: -1, wantErr: true},
	}

	for _, tt := range tests {
		got, err := LevelDistance(tt.layer)
		if tt.wantErr {
			assert.ErrorIs(t, err, core.ErrInvalidLayer)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "layer %d", tt.layer)
	}
}

func TestDistance2016(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name   string
		w1, w2 string
		want   float64
	}{
		{name: "same synonym code", w1: "人", w2: "人物", want: 1},
		{name: "atom siblings", w1: "人", w2: "人类", want: math.Sqrt(math.Exp(-1.0 / 6))},
		{name: "group siblings", w1: "人", w2: "男人", want: 0.9 * math.Sqrt(math.Exp(-1.0/4))},
		{name: "mid siblings", w1: "人", w2: "我", want: 0.65 * math.Sqrt(math.Exp(-1.0/4))},
		{name: "major shared", w1: "人", w2: "男女", want: 0.4 * math.Sqrt(math.Exp(-1.0/4))},
		{name: "no shared prefix", w1: "人", w2: "万物", want: FloorScore},
		{name: "related marker", w1: "老少", w2: "老幼", want: RelatedScore},
		{name: "unknown", w1: "人", w2: "外星人", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Distance2016(tt.w1, tt.w2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDensity2013(t *testing.T) {
	e := newEngine(t)

	blend := func(dist float64, count float64) float64 {
		density := 0.0
		if count > 0 {
			density = -math.Log(count / totalWords)
		}
		return Sigma2013*math.Exp(-Alpha2013*dist) + (1-Sigma2013)*math.Tanh(Beta2013*density)
	}

	tests := []struct {
		name   string
		w1, w2 string
		want   float64
	}{
		{name: "same code", w1: "人", w2: "士", want: blend(10, 3)},
		{name: "same word", w1: "人", w2: "人", want: blend(10, 3)},
		{name: "atom siblings", w1: "人", w2: "人类", want: blend(2, 6)},
		{name: "group siblings", w1: "人", w2: "男人", want: blend(4, 10)},
		{name: "no shared prefix", w1: "人", w2: "万物", want: blend(10, totalWords)},
		{name: "unknown", w1: "人", w2: "外星人", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.Density2013(tt.w1, tt.w2), 1e-9)
		})
	}
}

func TestPathDistanceTakesWorstPair(t *testing.T) {
	e := newEngine(t)
	d := e.PathDistance(
		[]core.Code{"Aa01A01="},
		[]core.Code{"Aa01A02=", "Ba01A01@"},
	)
	assert.Equal(t, 10.0, d)
}

func TestPathDistanceIdenticalCodes(t *testing.T) {
	e := newEngine(t)
	d := e.PathDistance([]core.Code{"Aa01A01="}, []core.Code{"Aa01A01="})
	assert.Equal(t, 10.0, d)

	// A word sharing its own code with a synonym scores the same as itself.
	assert.InDelta(t, e.Density2013("人", "人"), e.Density2013("人", "士"), 1e-12)
}

func TestSimilarityProperties(t *testing.T) {
	e := newEngine(t)
	vocab := make([]string, 0, e.index.VocabularySize())
	for w := range e.index.Vocabulary() {
		vocab = append(vocab, w)
	}
	vocab = append(vocab, "外星人")

	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			for _, w1 := range vocab {
				for _, w2 := range vocab {
					ab, err := e.Similarity(s, w1, w2)
					require.NoError(t, err)
					ba, err := e.Similarity(s, w2, w1)
					require.NoError(t, err)
					assert.Equal(t, ab, ba, "%s/%s", w1, w2)
					assert.GreaterOrEqual(t, ab, 0.0)
					assert.LessOrEqual(t, ab, 1.0)
				}
			}
		})
	}
}

func TestLegacyMonotoneAlongBranch(t *testing.T) {
	e := newEngine(t)
	// Each successive code shares a shorter prefix with the anchor.
	anchor := core.Code("Aa01A01=")
	chain := []core.Code{"Aa01A01=", "Aa01A02=", "Aa01B01=", "Aa02A01=", "Ab01A01=", "Ba01A01@"}

	for _, score := range []func(a, b core.Code) float64{
		e.ScoreByCode,
		func(a, b core.Code) float64 {
			s, err := e.Score2016ByCode(a, b)
			require.NoError(t, err)
			return s
		},
	} {
		prev := math.Inf(1)
		for _, c := range chain {
			s := score(anchor, c)
			assert.Less(t, s, prev, "code %s", c)
			prev = s
		}
	}
}

func TestSimilarityObserver(t *testing.T) {
	obs := &recordingObserver{}
	e := newEngine(t, WithObserver(obs))

	_, err := e.Similarity(Legacy, "人", "士")
	require.NoError(t, err)
	_, err = e.Similarity(Strategy(9), "人", "士")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	assert.Equal(t, []Strategy{Legacy, Strategy(9)}, obs.calls)
	assert.ErrorIs(t, obs.lastErr, ErrUnknownStrategy)
}

func TestConcurrentSimilarity(t *testing.T) {
	e := newEngine(t)
	want, err := e.Similarity(Density2013, "人", "男人")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Similarity(Density2013, "人", "男人")
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
