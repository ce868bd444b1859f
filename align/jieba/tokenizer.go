package jieba

import (
	"errors"
	"iter"
	"log/slog"
	"strings"

	"github.com/poiesic/cilin/align"
	"github.com/wangbin/jiebago/posseg"
)

// ErrDictionaryRequired is returned when no dictionary path is given.
var ErrDictionaryRequired = errors.New("jieba dictionary required")

// Tokenizer segments Chinese text into POS-tagged words.
type Tokenizer struct {
	seg    posseg.Segmenter
	hmm    bool
	logger *slog.Logger
}

var _ align.Tokenizer = (*Tokenizer)(nil)

// Option configures a Tokenizer.
type Option func(*Tokenizer) error

// WithHMM toggles HMM discovery of out-of-dictionary words.
// Default is enabled.
func WithHMM(enabled bool) Option {
	return func(t *Tokenizer) error {
		t.hmm = enabled
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tokenizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// New loads the jieba dictionary at path (the "dict.txt" format with word,
// frequency and tag columns) and returns a Tokenizer.
func New(path string, opts ...Option) (*Tokenizer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrDictionaryRequired
	}

	t := &Tokenizer{
		hmm:    true,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	if err := t.seg.LoadDictionary(path); err != nil {
		return nil, err
	}
	t.logger.Info("segmenter dictionary loaded", "path", path)

	return t, nil
}

// Cut segments text. The returned sequence may be abandoned early.
func (t *Tokenizer) Cut(text string) iter.Seq[align.Token] {
	return func(yield func(align.Token) bool) {
		segments := t.seg.Cut(text, t.hmm)
		for seg := range segments {
			if !yield(align.Token{Word: seg.Text(), Category: seg.Pos()}) {
				// Unblock the producer goroutine.
				for range segments {
				}
				return
			}
		}
	}
}
