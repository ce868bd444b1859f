package align

import (
	"slices"
	"testing"

	"github.com/poiesic/cilin/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWords(t *testing.T) {
	tokens := Fields{}.Cut("我/r 喜欢/v 吃/v 苹果/n 了/ul ，/x 。/w")

	assert.Equal(t, []string{"我", "喜欢", "吃", "苹果"}, FilterWords(tokens, DefaultExcludedCategories))
	assert.Equal(t, []string{"喜欢", "吃", "苹果", "了", "，", "。"}, FilterWords(tokens, []string{"r"}))
	assert.Len(t, FilterWords(tokens, nil), 7)
}

func TestFilterWordsSkipsBlank(t *testing.T) {
	words := FilterWords(slices.Values([]Token{{Word: " ", Category: "n"}, {Word: "梨", Category: "n"}}), nil)
	assert.Equal(t, []string{"梨"}, words)
}

func TestNewTextAligner(t *testing.T) {
	_, err := NewTextAligner(nil, Fields{})
	assert.Equal(t, ErrAlignerRequired, err)

	_, err = NewTextAligner(newAligner(t), nil)
	assert.Equal(t, ErrTokenizerRequired, err)

	ta, err := NewTextAligner(newAligner(t), Fields{})
	require.NoError(t, err)
	assert.Equal(t, DefaultExcludedCategories, ta.excluded)
	assert.NotNil(t, ta.Aligner())
}

func TestAlignText(t *testing.T) {
	a := newAligner(t)
	ta, err := NewTextAligner(a, Fields{})
	require.NoError(t, err)

	direct, err := a.Align([]string{"喜欢", "吃", "苹果"}, []string{"爱", "食用", "香蕉"})
	require.NoError(t, err)

	got, err := ta.AlignText("喜欢/v 吃/v 苹果/n 。/w", "爱/v 食用/v 香蕉/n 了/ul")
	require.NoError(t, err)
	assert.Equal(t, direct, got)

	_, err = ta.AlignText("。/w ，/x", "苹果/n")
	assert.ErrorIs(t, err, core.ErrEmptySequence)
}

func TestFieldsTokenizer(t *testing.T) {
	tokens := slices.Collect(Fields{}.Cut(" 苹果  梨/n /x\t吃/v"))
	assert.Equal(t, []Token{
		{Word: "苹果"},
		{Word: "梨", Category: "n"},
		{Word: "吃", Category: "v"},
	}, tokens)

	for tok := range (Fields{}).Cut("苹果 梨") {
		assert.Equal(t, "苹果", tok.Word)
		break
	}
}
