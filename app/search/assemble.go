package search

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bereanware/berean/app/canon"
	"github.com/bereanware/berean/app/verses"
)

// Metadata describes one completed search. UniqueCount is set only when
// unique-verse filtering ran.
type Metadata struct {
	TotalCount          int  `json:"total_count"`
	UniqueCount         *int `json:"unique_count,omitempty"`
	UniqueVersesEnabled bool `json:"unique_verses_enabled"`
}

// AssembleOptions are the post-processing switches of a search request.
type AssembleOptions struct {
	UniqueVerses bool
	Abbreviate   bool
}

// Assemble orders, optionally deduplicates and optionally abbreviates raw
// hits. The final ordering is applied unconditionally after dedup and
// abbreviation: canon book ordinal (unknown books last), chapter, verse,
// then translation sort order.
func Assemble(hits []verses.SearchResult, translations []verses.Translation, idx *canon.Index, opts AssembleOptions) ([]verses.SearchResult, Metadata) {
	translationOrder := make(map[string]int, len(translations))
	for _, t := range translations {
		translationOrder[t.Abbreviation] = t.SortOrder
	}
	orderOf := func(abbrev string) int {
		if o, ok := translationOrder[abbrev]; ok {
			return o
		}
		return 999
	}

	meta := Metadata{TotalCount: len(hits)}
	results := hits

	if opts.UniqueVerses {
		results = filterUniqueVerses(hits, orderOf)
		unique := len(results)
		meta.UniqueCount = &unique
		meta.UniqueVersesEnabled = true
	}

	if opts.Abbreviate {
		for i := range results {
			results[i].Text = AbbreviateText(results[i].Text)
			results[i].HighlightedText = AbbreviateText(results[i].HighlightedText)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if oa, ob := idx.OrderOf(a.Book), idx.OrderOf(b.Book); oa != ob {
			return oa < ob
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		if a.Verse != b.Verse {
			return a.Verse < b.Verse
		}
		return orderOf(a.Translation) < orderOf(b.Translation)
	})

	return results, meta
}

// filterUniqueVerses keeps one hit per (book, chapter, verse): the one
// whose translation has the lowest sort order.
func filterUniqueVerses(hits []verses.SearchResult, orderOf func(string) int) []verses.SearchResult {
	type verseKey struct {
		book           string
		chapter, verse int
	}
	best := make(map[verseKey]int)
	var keys []verseKey

	for i, hit := range hits {
		key := verseKey{hit.Book, hit.Chapter, hit.Verse}
		existing, seen := best[key]
		if !seen {
			best[key] = i
			keys = append(keys, key)
			continue
		}
		if orderOf(hit.Translation) < orderOf(hits[existing].Translation) {
			best[key] = i
		}
	}

	unique := make([]verses.SearchResult, 0, len(keys))
	for _, key := range keys {
		unique = append(unique, hits[best[key]])
	}
	return unique
}

// Stop words replaced by the abbreviation marker. Closed set; matched
// case-insensitively on the word with punctuation stripped.
var stopWords = map[string]bool{
	"and": true, "the": true, "that": true, "unto": true, "upon": true,
	"which": true, "shall": true, "with": true, "from": true, "they": true,
	"them": true, "their": true, "there": true, "where": true, "when": true,
	"what": true, "will": true, "said": true, "came": true, "come": true,
	"went": true, "were": true, "been": true, "have": true, "has": true,
	"had": true,
}

var nonWordRe = regexp.MustCompile(`[^\w]`)

// AbbreviateText replaces common stop words with a two-character ellipsis
// marker, with no surrounding spaces, and tightens ", " to ",". Lossy;
// applied independently to text and highlighted text.
func AbbreviateText(text string) string {
	words := strings.Fields(text)
	out := make([]string, len(words))
	for i, word := range words {
		clean := nonWordRe.ReplaceAllString(strings.ToLower(word), "")
		if stopWords[clean] {
			out[i] = ".."
		} else {
			out[i] = word
		}
	}

	result := strings.Join(out, " ")
	result = strings.ReplaceAll(result, " ..", "..")
	result = strings.ReplaceAll(result, ".. ", "..")
	result = strings.ReplaceAll(result, ", ", ",")
	return result
}

// FormatReference renders a result's display reference like "Gen 1:1".
func FormatReference(r verses.SearchResult) string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}
