package knowledge

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectExcerptEmptyDocuments(t *testing.T) {
	for _, query := range []string{"", "civic education week 1", "   "} {
		res := SelectExcerpt(nil, query, DefaultMaxChars)
		assert.Equal(t, "", res.Combined)
		assert.Empty(t, res.Sources)
		assert.NotNil(t, res.Sources)
	}
}

func TestSelectExcerptRanksByTokenPresence(t *testing.T) {
	docs := []LoadedDocument{
		{Filename: "biology.docx", Text: "Cells and tissues"},
		{Filename: "civic.docx", Text: "Civic Education: citizenship and values"},
		{Filename: "maths.docx", Text: "Algebra and values of x"},
	}

	res := SelectExcerpt(docs, "Civic VALUES", 1000)

	require.Len(t, res.Sources, 3)
	assert.Equal(t, []string{"civic.docx", "maths.docx", "biology.docx"}, res.Sources)
	assert.True(t, strings.HasPrefix(res.Combined, "# Source: civic.docx\n\nCivic Education"))
	assert.Contains(t, res.Combined, "\n\n---\n\n# Source: maths.docx")
}

func TestSelectExcerptTiesKeepOriginalOrder(t *testing.T) {
	docs := []LoadedDocument{
		{Filename: "a.docx", Text: "alpha"},
		{Filename: "b.docx", Text: "beta"},
		{Filename: "c.docx", Text: "gamma"},
	}

	res := SelectExcerpt(docs, "nothing matches", 1000)
	assert.Equal(t, []string{"a.docx", "b.docx", "c.docx"}, res.Sources)
}

func TestSelectExcerptRepeatedTokensCountEachTime(t *testing.T) {
	docs := []LoadedDocument{
		{Filename: "one.docx", Text: "history history"},
		{Filename: "two.docx", Text: "geography and trade"},
	}

	// "trade" and "geography" give two.docx a score of 2; three repeats of
	// "history" give one.docx a score of 3.
	res := SelectExcerpt(docs, "history history history geography trade", 1000)
	assert.Equal(t, []string{"one.docx", "two.docx"}, res.Sources)

	res = SelectExcerpt(docs, "history geography trade", 1000)
	assert.Equal(t, []string{"two.docx", "one.docx"}, res.Sources)
}

func TestSelectExcerptRespectsBudget(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 500)
	docs := []LoadedDocument{
		{Filename: "first.docx", Text: long},
		{Filename: "second.docx", Text: long},
		{Filename: "third.docx", Text: "short"},
		{Filename: "ünïcödé.docx", Text: strings.Repeat("ẞß€", 300)},
	}

	for _, max := range []int{1, 10, 25, 100, 999, 3000, 8000, 20000} {
		t.Run(fmt.Sprintf("max=%d", max), func(t *testing.T) {
			res := SelectExcerpt(docs, "lorem", max)
			assert.LessOrEqual(t, utf8.RuneCountInString(res.Combined), max)

			seen := map[string]bool{}
			for _, s := range res.Sources {
				assert.False(t, seen[s], "duplicate source %s", s)
				seen[s] = true
				assert.Contains(t, res.Combined, "# Source: "+s)
			}
			assert.Equal(t, len(res.Sources), strings.Count(res.Combined, "# Source: "))
		})
	}
}

func TestSelectExcerptSkipsEmptyDocuments(t *testing.T) {
	docs := []LoadedDocument{
		{Filename: "empty.docx", Text: ""},
		{Filename: "full.docx", Text: "content"},
	}

	res := SelectExcerpt(docs, "", 100)
	assert.Equal(t, []string{"full.docx"}, res.Sources)
	assert.Equal(t, "# Source: full.docx\n\ncontent", res.Combined)
}

func TestSelectExcerptTruncatesLastSlice(t *testing.T) {
	docs := []LoadedDocument{{Filename: "x.docx", Text: strings.Repeat("a", 100)}}

	res := SelectExcerpt(docs, "a", 30)
	header := "# Source: x.docx\n\n"
	require.Equal(t, []string{"x.docx"}, res.Sources)
	assert.Equal(t, header+strings.Repeat("a", 30-len(header)), res.Combined)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a\n\nb\nc", NormalizeText("\r\n  a\r\n\r\n\r\n\r\nb\nc \n\n"))
}
