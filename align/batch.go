package align

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// releaseTimeout bounds how long Release waits for pool workers to exit.
const releaseTimeout = 5 * time.Second

// Pair is a pair of texts to align.
type Pair struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
}

// Result is the outcome of aligning one Pair. Index is the pair's position
// in the input.
type Result struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Grade int     `json:"grade"`
	Err   error   `json:"-"`
}

// BatchAligner aligns many text pairs concurrently.
type BatchAligner struct {
	text   *TextAligner
	pool   *ants.Pool
	logger *slog.Logger
}

// BatchOption configures a BatchAligner.
type BatchOption func(*BatchAligner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) BatchOption {
	return func(b *BatchAligner) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.releasePool()
		b.pool = pool
		return nil
	}
}

// WithBatchLogger sets a custom logger.
// Default is slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchAligner) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatchAligner creates a BatchAligner over a TextAligner.
// Call Release when done.
func NewBatchAligner(text *TextAligner, opts ...BatchOption) (*BatchAligner, error) {
	if text == nil {
		return nil, ErrAlignerRequired
	}

	poolSize := max(runtime.NumCPU(), 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &BatchAligner{
		text:   text,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// AlignAll aligns every pair and returns results in input order.
// Per-pair failures are reported in Result.Err. If ctx is cancelled, no
// further pairs are submitted; pairs never started carry ctx.Err() and the
// same error is returned.
func (b *BatchAligner) AlignAll(ctx context.Context, pairs []Pair) ([]Result, error) {
	results := make([]Result, len(pairs))
	for i := range results {
		results[i].Index = i
	}
	var wg sync.WaitGroup

	var submitErr error
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			submitErr = err
			markUnstarted(results[i:], err)
			break
		}

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			score, err := b.text.AlignText(pair.Text1, pair.Text2)
			results[i].Score = score
			results[i].Grade = Grade(score)
			results[i].Err = err
		})
		if err != nil {
			wg.Done()
			b.logger.Error("error submitting pair", "index", i, "err", err)
			results[i].Err = err
		}
	}

	wg.Wait()

	if submitErr != nil {
		return results, submitErr
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Release releases the worker pool. The BatchAligner must not be used after.
func (b *BatchAligner) Release() {
	b.releasePool()
}

func (b *BatchAligner) releasePool() {
	if b.pool == nil {
		return
	}
	if err := b.pool.ReleaseTimeout(releaseTimeout); err != nil {
		b.logger.Warn("worker pool did not drain", "err", err)
	}
	b.pool = nil
}

func markUnstarted(results []Result, err error) {
	for i := range results {
		results[i].Err = err
	}
}
