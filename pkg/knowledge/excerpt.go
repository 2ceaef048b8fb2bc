package knowledge

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the excerpt budget used for chat prompts.
const DefaultMaxChars = 8000

const excerptSeparator = "\n\n---\n\n"

// ExcerptResult is the bounded reference text handed to the prompt builder.
type ExcerptResult struct {
	Combined string   `json:"combined"`
	Sources  []string `json:"sources"`
}

type scoredDocument struct {
	doc   LoadedDocument
	score int
}

// SelectExcerpt ranks documents by how many query tokens occur in them and
// concatenates the best ones until maxChars is spent. Lengths are counted
// in characters and include the per-source headers and separators, so the
// combined text never exceeds maxChars.
//
// Repeated query tokens are counted once per occurrence in the query.
func SelectExcerpt(docs []LoadedDocument, query string, maxChars int) ExcerptResult {
	result := ExcerptResult{Sources: []string{}}
	if len(docs) == 0 || maxChars <= 0 {
		return result
	}

	ranked := rankDocuments(docs, tokenize(query))

	var b strings.Builder
	total := 0
	for _, sd := range ranked {
		if total >= maxChars {
			break
		}

		header := "# Source: " + sd.doc.Filename + "\n\n"
		overhead := utf8.RuneCountInString(header)
		if len(result.Sources) > 0 {
			overhead += utf8.RuneCountInString(excerptSeparator)
		}

		remaining := maxChars - total - overhead
		if remaining <= 0 {
			break
		}

		slice := truncateRunes(sd.doc.Text, remaining)
		if slice == "" {
			continue
		}

		if len(result.Sources) > 0 {
			b.WriteString(excerptSeparator)
		}
		b.WriteString(header)
		b.WriteString(slice)

		result.Sources = append(result.Sources, sd.doc.Filename)
		total += overhead + utf8.RuneCountInString(slice)
	}

	result.Combined = b.String()
	return result
}

func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// rankDocuments sorts by descending score; ties keep their original order.
func rankDocuments(docs []LoadedDocument, tokens []string) []scoredDocument {
	scored := make([]scoredDocument, len(docs))
	for i, d := range docs {
		scored[i] = scoredDocument{doc: d, score: scoreDocument(d.Text, tokens)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

func scoreDocument(text string, tokens []string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			score++
		}
	}
	return score
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	i := 0
	for pos := range s {
		if i == limit {
			return s[:pos]
		}
		i++
	}
	return s
}
