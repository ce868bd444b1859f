package cilin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/importer"
	"github.com/poiesic/cilin/similarity"
	"github.com/poiesic/cilin/thesaurus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const fixture = `Aa01A01= 苹果 梨
Aa01A02= 香蕉
Ba01A01= 吃 食用
`

func writeTaxonomy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cilin.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadThesaurus(t *testing.T) {
	th, err := LoadThesaurus(writeTaxonomy(t, fixture), WithLogger(nil))
	require.NoError(t, err)

	assert.Len(t, th.Vocabulary(), 5)
	assert.NotNil(t, th.Hierarchy())
	assert.True(t, th.Hierarchy().Memoized())
	assert.NotNil(t, th.Engine())

	codes, err := th.CodesOf("吃")
	require.NoError(t, err)
	assert.Equal(t, []core.Code{"Ba01A01="}, codes)

	_, err = th.CodesOf("未知词")
	assert.ErrorIs(t, err, core.ErrUnknownWord)

	_, err = LoadThesaurus(writeTaxonomy(t, "Aa01 苹果\n"))
	assert.ErrorIs(t, err, core.ErrMalformedEntry)
}

func TestLoadThesaurusGBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(fixture)
	require.NoError(t, err)

	th, err := LoadThesaurus(writeTaxonomy(t, encoded), WithEncoding(thesaurus.EncodingGBK), WithMemoization(false))
	require.NoError(t, err)
	assert.True(t, th.Index().Contains("香蕉"))
	assert.False(t, th.Hierarchy().Memoized())
}

func TestSimilarityEndToEnd(t *testing.T) {
	th, err := LoadThesaurus(writeTaxonomy(t, fixture))
	require.NoError(t, err)

	for _, s := range similarity.Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			unknown, err := th.Similarity(s, "苹果", "未知词")
			require.NoError(t, err)
			assert.Equal(t, 0.0, unknown)

			if s == similarity.Density2013 {
				return
			}
			same, err := th.Similarity(s, "苹果", "梨")
			require.NoError(t, err)
			assert.Equal(t, 1.0, same)

			near, err := th.Similarity(s, "苹果", "香蕉")
			require.NoError(t, err)
			assert.Greater(t, near, similarity.FloorScore)
			assert.Less(t, near, 1.0)
		})
	}
}

func TestAlign(t *testing.T) {
	th, err := LoadThesaurus(writeTaxonomy(t, fixture))
	require.NoError(t, err)

	pear, err := th.Similarity(similarity.Legacy, "苹果", "梨")
	require.NoError(t, err)
	banana, err := th.Similarity(similarity.Legacy, "苹果", "香蕉")
	require.NoError(t, err)

	got, err := th.Align(similarity.Legacy, []string{"苹果"}, []string{"梨", "香蕉"})
	require.NoError(t, err)
	assert.Equal(t, max(pear, banana), got)

	_, err = th.Align(similarity.Legacy, nil, []string{"梨"})
	assert.ErrorIs(t, err, core.ErrEmptySequence)

	_, err = th.Align(similarity.Strategy(0), []string{"梨"}, []string{"梨"})
	assert.ErrorIs(t, err, similarity.ErrUnknownStrategy)
}

func TestPersistAndOpen(t *testing.T) {
	ctx := context.Background()
	storePath := filepath.Join(t.TempDir(), "store")

	th, err := LoadThesaurus(writeTaxonomy(t, fixture))
	require.NoError(t, err)

	result, err := th.Persist(ctx, storePath)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Entries)

	again, err := th.Persist(ctx, storePath)
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	opened, err := OpenThesaurus(ctx, storePath)
	require.NoError(t, err)
	assert.Equal(t, th.Index().Fingerprint(), opened.Index().Fingerprint())

	want, err := th.Similarity(similarity.Distance2016, "苹果", "香蕉")
	require.NoError(t, err)
	got, err := opened.Similarity(similarity.Distance2016, "苹果", "香蕉")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenThesaurusEmptyStore(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing")
		_, err := OpenThesaurus(context.Background(), path)
		assert.True(t, errors.Is(err, importer.ErrEmptyStore))

		_, statErr := os.Stat(path)
		assert.True(t, errors.Is(statErr, os.ErrNotExist), "open must not create the store")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := OpenThesaurus(context.Background(), t.TempDir())
		assert.True(t, errors.Is(err, importer.ErrEmptyStore))
	})
}

func TestNewThesaurus(t *testing.T) {
	_, err := NewThesaurus(nil)
	assert.Error(t, err)
}
