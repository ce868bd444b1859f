package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/cilin"
	"github.com/poiesic/cilin/align"
	"github.com/poiesic/cilin/align/jieba"
	"github.com/poiesic/cilin/config"
	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/importer"
	"github.com/poiesic/cilin/logger"
	"github.com/poiesic/cilin/similarity"
	"github.com/poiesic/cilin/thesaurus"
	"github.com/urfave/cli/v2"
)

func importCommand(c *cli.Context) error {
	cfg, err := configFrom(c)
	if err != nil {
		return err
	}
	if cfg.Taxonomy.Path == "" || cfg.Store.Path == "" {
		return fmt.Errorf("import needs both --taxonomy and --store")
	}
	enc, err := thesaurus.ParseEncoding(cfg.Taxonomy.Encoding)
	if err != nil {
		return err
	}

	th, err := cilin.LoadThesaurus(cfg.Taxonomy.Path,
		cilin.WithEncoding(enc),
		cilin.WithLogger(logger.WithComponent("import")))
	if err != nil {
		return err
	}

	opts := []importer.Option{
		importer.WithForce(c.Bool("force")),
		importer.WithBatchSize(c.Int("batch-size")),
		importer.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	}
	if !c.Bool("quiet") {
		opts = append(opts, importer.WithProgress(c.App.ErrWriter))
	}

	result, err := th.Persist(c.Context, cfg.Store.Path, opts...)
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintf(c.App.Writer, "unchanged: %s already holds fingerprint %016x\n", cfg.Store.Path, uint64(result.Fingerprint))
		return nil
	}
	fmt.Fprintf(c.App.Writer, "imported %d entries (%d words) in %s\n",
		result.Entries, result.Words, result.Elapsed.Round(time.Millisecond))
	return nil
}

func codesCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("codes needs at least one word")
	}
	th, _, err := openThesaurus(c, nil)
	if err != nil {
		return err
	}

	for _, word := range c.Args().Slice() {
		codes, err := th.CodesOf(word)
		if errors.Is(err, core.ErrUnknownWord) {
			fmt.Fprintf(c.App.Writer, "%s\t(unknown)%s\n", word, didYouMean(th, word))
			continue
		}
		if err != nil {
			return err
		}
		parts := make([]string, len(codes))
		for i, code := range codes {
			parts[i] = code.String()
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", word, strings.Join(parts, " "))
	}
	return nil
}

func simCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("sim needs exactly two words")
	}
	th, cfg, err := openThesaurus(c, nil)
	if err != nil {
		return err
	}
	w1, w2 := c.Args().Get(0), c.Args().Get(1)

	if c.Bool("all") {
		for _, s := range similarity.Strategies() {
			score, err := th.Similarity(s, w1, w2)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s\t%.4f\n", s, score)
		}
		return nil
	}

	strategy, err := similarity.ParseStrategy(cfg.Similarity.Strategy)
	if err != nil {
		return err
	}
	score, err := th.Similarity(strategy, w1, w2)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%.4f\n", score)
	return nil
}

func alignCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("align needs exactly two texts")
	}
	th, cfg, err := openThesaurus(c, nil)
	if err != nil {
		return err
	}
	text, err := newTextAligner(cfg, th, nil)
	if err != nil {
		return err
	}

	score, err := text.AlignText(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%.4f\t%d\n", score, align.Grade(score))
	return nil
}

func gradeCommand(c *cli.Context) error {
	input := c.App.Reader
	if c.NArg() > 0 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}
	pairs, err := readPairs(input)
	if err != nil {
		return err
	}

	th, cfg, err := openThesaurus(c, nil)
	if err != nil {
		return err
	}
	text, err := newTextAligner(cfg, th, nil)
	if err != nil {
		return err
	}
	batch, err := align.NewBatchAligner(text, align.WithPoolSize(cfg.Align.PoolSize))
	if err != nil {
		return err
	}
	defer batch.Release()

	results, err := batch.AlignAll(c.Context, pairs)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(c.App.Writer, "%d\terror: %v\n", r.Index+1, r.Err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%d\t%.4f\t%d\n", r.Index+1, r.Score, r.Grade)
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("suggest needs exactly one word")
	}
	th, _, err := openThesaurus(c, nil)
	if err != nil {
		return err
	}
	for _, s := range th.Index().Suggest(c.Args().First(), c.Int("limit"), float32(c.Float64("threshold"))) {
		fmt.Fprintf(c.App.Writer, "%s\t%.3f\n", s.Word, s.Score)
	}
	return nil
}

// readPairs parses "text1<TAB>text2" lines. Blank lines are skipped.
func readPairs(r io.Reader) ([]align.Pair, error) {
	var pairs []align.Pair
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		text1, text2, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected two tab-separated texts", lineNo)
		}
		pairs = append(pairs, align.Pair{Text1: text1, Text2: text2})
	}
	return pairs, scanner.Err()
}

// openThesaurus loads from the store when one is configured and populated,
// falling back to the taxonomy file.
func openThesaurus(c *cli.Context, observer similarity.Observer) (*cilin.Thesaurus, *config.Config, error) {
	cfg, err := configFrom(c)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	th, err := loadThesaurus(c.Context, cfg, observer)
	return th, cfg, err
}

func loadThesaurus(ctx context.Context, cfg *config.Config, observer similarity.Observer) (*cilin.Thesaurus, error) {
	enc, err := thesaurus.ParseEncoding(cfg.Taxonomy.Encoding)
	if err != nil {
		return nil, err
	}
	opts := []cilin.Option{
		cilin.WithEncoding(enc),
		cilin.WithMemoization(cfg.Similarity.Memoize),
		cilin.WithSimilarityObserver(observer),
	}

	if cfg.Store.Path != "" {
		th, err := cilin.OpenThesaurus(ctx, cfg.Store.Path, opts...)
		if err == nil {
			return th, nil
		}
		if !errors.Is(err, importer.ErrEmptyStore) || cfg.Taxonomy.Path == "" {
			return nil, err
		}
		slog.Warn("store holds no taxonomy, reading file", "store", cfg.Store.Path, "taxonomy", cfg.Taxonomy.Path)
	}
	return cilin.LoadThesaurus(cfg.Taxonomy.Path, opts...)
}

func newTextAligner(cfg *config.Config, th *cilin.Thesaurus, observer align.Observer) (*align.TextAligner, error) {
	strategy, err := similarity.ParseStrategy(cfg.Similarity.Strategy)
	if err != nil {
		return nil, err
	}
	aligner, err := th.NewAligner(align.WithStrategy(strategy), align.WithObserver(observer))
	if err != nil {
		return nil, err
	}

	var tokenizer align.Tokenizer = align.Fields{}
	if cfg.Align.Dictionary != "" {
		tokenizer, err = jieba.New(cfg.Align.Dictionary)
		if err != nil {
			return nil, err
		}
	}
	return align.NewTextAligner(aligner, tokenizer, cfg.Align.ExcludedCategories...)
}

func didYouMean(th *cilin.Thesaurus, word string) string {
	suggestions := th.Index().Suggest(word, 3, thesaurus.DefaultSuggestThreshold)
	if len(suggestions) == 0 {
		return ""
	}
	words := make([]string, len(suggestions))
	for i, s := range suggestions {
		words[i] = s.Word
	}
	return " did you mean: " + strings.Join(words, ", ")
}
