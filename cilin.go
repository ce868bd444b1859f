// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cilin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/poiesic/cilin/align"
	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/hierarchy"
	"github.com/poiesic/cilin/importer"
	"github.com/poiesic/cilin/similarity"
	"github.com/poiesic/cilin/storage/badger"
	"github.com/poiesic/cilin/thesaurus"
)

// Thesaurus bundles a loaded taxonomy with its hierarchy and similarity
// engine.
type Thesaurus struct {
	index     *thesaurus.Index
	hierarchy *hierarchy.Hierarchy
	engine    *similarity.Engine
	logger    *slog.Logger
}

// Option configures LoadThesaurus and OpenThesaurus.
type Option func(*options)

type options struct {
	encoding thesaurus.Encoding
	memoize  bool
	observer similarity.Observer
	logger   *slog.Logger
}

// WithEncoding sets the taxonomy file encoding. Default is UTF-8.
func WithEncoding(enc thesaurus.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithMemoization caches hierarchy scans. Default is enabled.
func WithMemoization(enabled bool) Option {
	return func(o *options) {
		o.memoize = enabled
	}
}

// WithSimilarityObserver sets the observer passed to the engine.
func WithSimilarityObserver(observer similarity.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		encoding: thesaurus.EncodingUTF8,
		memoize:  true,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// LoadThesaurus reads a taxonomy file.
func LoadThesaurus(path string, opts ...Option) (*Thesaurus, error) {
	o := applyOptions(opts)
	idx, err := thesaurus.LoadFile(path, o.encoding)
	if err != nil {
		return nil, err
	}
	return newThesaurus(idx, o)
}

// OpenThesaurus rebuilds a taxonomy from a store written by Persist.
func OpenThesaurus(ctx context.Context, storePath string, opts ...Option) (*Thesaurus, error) {
	o := applyOptions(opts)

	if _, err := os.Stat(storePath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading store %s: %w", storePath, importer.ErrEmptyStore)
	}

	backend, err := badger.OpenBackend(storePath, badger.WithBackendLogger(o.logger))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			o.logger.Error("error closing backend storage", "err", err)
		}
	}()

	repo, err := badger.NewThesaurusRepository(backend)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	idx, err := importer.Load(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("loading store %s: %w", storePath, err)
	}
	return newThesaurus(idx, o)
}

// NewThesaurus wraps an already built index.
func NewThesaurus(idx *thesaurus.Index, opts ...Option) (*Thesaurus, error) {
	if idx == nil {
		return nil, hierarchy.ErrIndexRequired
	}
	return newThesaurus(idx, applyOptions(opts))
}

func newThesaurus(idx *thesaurus.Index, o *options) (*Thesaurus, error) {
	h, err := hierarchy.New(idx,
		hierarchy.WithMemoization(o.memoize),
		hierarchy.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	engine, err := similarity.New(h,
		similarity.WithObserver(o.observer),
		similarity.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	return &Thesaurus{
		index:     idx,
		hierarchy: h,
		engine:    engine,
		logger:    o.logger,
	}, nil
}

// Persist writes the taxonomy to the store at storePath.
func (t *Thesaurus) Persist(ctx context.Context, storePath string, opts ...importer.Option) (importer.Result, error) {
	backend, err := badger.OpenBackend(storePath, badger.WithBackendLogger(t.logger))
	if err != nil {
		return importer.Result{}, err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			t.logger.Error("error closing backend storage", "err", err)
		}
	}()

	repo, err := badger.NewThesaurusRepository(backend)
	if err != nil {
		return importer.Result{}, err
	}
	defer repo.Close()

	im, err := importer.New(repo, append([]importer.Option{importer.WithLogger(t.logger)}, opts...)...)
	if err != nil {
		return importer.Result{}, err
	}
	return im.Import(ctx, t.index)
}

// Index returns the taxonomy index.
func (t *Thesaurus) Index() *thesaurus.Index {
	return t.index
}

// Hierarchy returns the code hierarchy.
func (t *Thesaurus) Hierarchy() *hierarchy.Hierarchy {
	return t.hierarchy
}

// Engine returns the similarity engine.
func (t *Thesaurus) Engine() *similarity.Engine {
	return t.engine
}

// Similarity scores two words. Unknown words score 0.
func (t *Thesaurus) Similarity(strategy similarity.Strategy, w1, w2 string) (float64, error) {
	return t.engine.Similarity(strategy, w1, w2)
}

// CodesOf returns the codes listing word, or an error wrapping
// core.ErrUnknownWord.
func (t *Thesaurus) CodesOf(word string) ([]core.Code, error) {
	return t.index.CodesOf(word)
}

// Vocabulary returns the set of all words.
func (t *Thesaurus) Vocabulary() map[string]struct{} {
	return t.index.Vocabulary()
}

// Align scores two word sequences with the given strategy.
func (t *Thesaurus) Align(strategy similarity.Strategy, words1, words2 []string) (float64, error) {
	a, err := t.NewAligner(align.WithStrategy(strategy))
	if err != nil {
		return 0, err
	}
	return a.Align(words1, words2)
}

// NewAligner creates a sentence aligner over this thesaurus.
func (t *Thesaurus) NewAligner(opts ...align.Option) (*align.Aligner, error) {
	return align.New(t.engine, append([]align.Option{align.WithLogger(t.logger)}, opts...)...)
}
