package hierarchy

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/thesaurus"
)

// Hierarchy answers index-backed structural queries over the code tree.
type Hierarchy struct {
	index  *thesaurus.Index
	memo   *cache.Cache
	logger *slog.Logger
}

// Option configures a Hierarchy.
type Option func(*Hierarchy) error

// WithMemoization caches SiblingCount and CodesBetween results.
// Default is disabled; every call scans the index.
func WithMemoization(enabled bool) Option {
	return func(h *Hierarchy) error {
		if enabled {
			// No expiration and no janitor goroutine: the index never changes.
			h.memo = cache.New(cache.NoExpiration, 0)
		} else {
			h.memo = nil
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hierarchy) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
		return nil
	}
}

// New creates a Hierarchy over an index.
func New(index *thesaurus.Index, opts ...Option) (*Hierarchy, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	h := &Hierarchy{
		index:  index,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Index returns the underlying index.
func (h *Hierarchy) Index() *thesaurus.Index {
	return h.index
}

// Memoized reports whether results are cached.
func (h *Hierarchy) Memoized() bool {
	return h.memo != nil
}

// SiblingCount returns the number of distinct values, at the level just
// below prefix, among all codes that start with prefix. Returns 0 for an
// empty prefix or a prefix length that is not a level boundary.
func (h *Hierarchy) SiblingCount(prefix string) int {
	if prefix == "" {
		return 0
	}
	key := "n\x00" + prefix
	if n, ok := h.lookup(key); ok {
		return n.(int)
	}

	layer, err := LayerOf(len(prefix))
	if err != nil {
		h.logger.Debug("sibling count for invalid prefix", "prefix", prefix, "err", err)
		return 0
	}

	siblings := make(map[string]struct{})
	for _, code := range h.withPrefix(prefix) {
		siblings[code.Levels()[layer]] = struct{}{}
	}
	n := len(siblings)

	h.store(key, n)
	return n
}

// CodesBetween returns, in ascending order, every code sharing the common
// prefix of c1 and c2 whose value at the next level lies within the closed
// range spanned by c1 and c2 at that level. Identical codes yield {c1}.
// The returned slice belongs to the caller.
func (h *Hierarchy) CodesBetween(c1, c2 core.Code) []core.Code {
	return slices.Clone(h.codesBetween(c1, c2))
}

// codesBetween may return a memoized slice that must not be modified.
func (h *Hierarchy) codesBetween(c1, c2 core.Code) []core.Code {
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	prefix := CommonPrefix(c1, c2)
	if len(prefix) == core.CodeLength {
		return []core.Code{c1}
	}

	key := "b\x00" + string(c1) + string(c2)
	if v, ok := h.lookup(key); ok {
		return v.([]core.Code)
	}

	layer, err := LayerOf(len(prefix))
	if err != nil {
		h.logger.Debug("codes between for invalid prefix", "prefix", prefix, "err", err)
		return nil
	}

	lo, hi := c1.Levels()[layer], c2.Levels()[layer]
	if hi < lo {
		lo, hi = hi, lo
	}

	var out []core.Code
	for _, code := range h.withPrefix(prefix) {
		v := code.Levels()[layer]
		if v >= lo && v <= hi {
			out = append(out, code)
		}
	}

	h.store(key, out)
	return out
}

// WordCountBetween sums the word group sizes of CodesBetween(c1, c2).
func (h *Hierarchy) WordCountBetween(c1, c2 core.Code) int {
	count := 0
	for _, code := range h.codesBetween(c1, c2) {
		count += h.index.WordCount(code)
	}
	return count
}

// withPrefix returns the contiguous run of sorted codes starting with prefix.
func (h *Hierarchy) withPrefix(prefix string) []core.Code {
	codes := h.index.Codes()
	start := sort.Search(len(codes), func(i int) bool {
		return string(codes[i]) >= prefix
	})
	end := start
	for end < len(codes) && strings.HasPrefix(string(codes[end]), prefix) {
		end++
	}
	return codes[start:end]
}

func (h *Hierarchy) lookup(key string) (any, bool) {
	if h.memo == nil {
		return nil, false
	}
	return h.memo.Get(key)
}

func (h *Hierarchy) store(key string, v any) {
	if h.memo != nil {
		h.memo.Set(key, v, cache.NoExpiration)
	}
}
