package jieba

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/cilin/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dictionary = `我 1000 r
喜欢 800 v
吃 900 v
苹果 500 n
了 1200 ul
`

func writeDictionary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(dictionary), 0o644))
	return path
}

func TestNew(t *testing.T) {
	_, err := New("  ")
	assert.Equal(t, ErrDictionaryRequired, err)

	_, err = New(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	tok, err := New(writeDictionary(t), WithHMM(false), WithLogger(nil))
	require.NoError(t, err)
	assert.False(t, tok.hmm)
}

func TestCut(t *testing.T) {
	tok, err := New(writeDictionary(t), WithHMM(false))
	require.NoError(t, err)

	var got []align.Token
	for token := range tok.Cut("我喜欢吃苹果了") {
		got = append(got, token)
	}

	assert.Equal(t, []align.Token{
		{Word: "我", Category: "r"},
		{Word: "喜欢", Category: "v"},
		{Word: "吃", Category: "v"},
		{Word: "苹果", Category: "n"},
		{Word: "了", Category: "ul"},
	}, got)

	assert.Equal(t, []string{"我", "喜欢", "吃", "苹果"},
		align.FilterWords(tok.Cut("我喜欢吃苹果了"), align.DefaultExcludedCategories))
}

func TestCutEarlyStop(t *testing.T) {
	tok, err := New(writeDictionary(t))
	require.NoError(t, err)

	for token := range tok.Cut("我喜欢吃苹果了") {
		assert.Equal(t, "我", token.Word)
		break
	}
}
