package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Highlight markers. Stripping them from the highlighted text reproduces
// the original text character for character.
const (
	MarkerOpen  = "["
	MarkerClose = "]"
)

// StripMarkers removes highlight markers, recovering the original text.
func StripMarkers(s string) string {
	s = strings.ReplaceAll(s, MarkerOpen, "")
	return strings.ReplaceAll(s, MarkerClose, "")
}

type span struct {
	start, end int
}

// Highlight re-renders text with every matched span wrapped in markers.
// Matches are re-derived per operator family because highlighting needs
// all occurrences, not just one satisfying the verifier.
func Highlight(text string, q Query) string {
	var spans []span
	switch q := q.(type) {
	case *SimpleQuery:
		spans = simpleSpans(text, q)
	case *ProximityQuery:
		spans = allOccurrences(text, q.CaseSensitive, q.Left, q.Right)
	case *OrderedQuery:
		spans = allOccurrences(text, q.CaseSensitive, q.Terms...)
	case *PlaceholderQuery:
		spans = placeholderSpans(text, q)
	}
	return applySpans(text, spans)
}

func simpleSpans(text string, q *SimpleQuery) []span {
	var spans []span
	for _, term := range q.Terms {
		// A negated term matched by absence; there is nothing to mark.
		if term.Negated || term.Text == "" {
			continue
		}
		switch {
		case term.IsPhrase:
			spans = append(spans, findSpans(text, `\b`+regexp.QuoteMeta(term.Text)+`\b`, q.CaseSensitive)...)
		case term.HasWildcard:
			spans = append(spans, findSpans(text, boundedPattern(term.Text), q.CaseSensitive)...)
		default:
			if utf8.RuneCountInString(term.Text) <= 2 {
				// Short bare terms mark only the literal span at a word
				// boundary, so "I" never lights up "Israel".
				spans = append(spans, findSpans(text, `\b`+regexp.QuoteMeta(term.Text)+`\b`, q.CaseSensitive)...)
			} else {
				// Bare terms mark the entire containing word: searching
				// "sent" highlights all of "presents".
				pattern := `\b\w*` + regexp.QuoteMeta(term.Text) + `\w*\b`
				spans = append(spans, findSpans(text, pattern, q.CaseSensitive)...)
			}
		}
	}
	return spans
}

// allOccurrences marks every occurrence of every participating term. The
// proximity highlighter does not try to mark only the winning pair.
func allOccurrences(text string, caseSensitive bool, terms ...string) []span {
	var spans []span
	for _, term := range terms {
		spans = append(spans, findSpans(text, boundedPattern(term), caseSensitive)...)
	}
	return spans
}

func placeholderSpans(text string, q *PlaceholderQuery) []span {
	parts := make([]string, len(q.Tokens))
	for i, tok := range q.Tokens {
		if tok == PlaceholderToken {
			parts[i] = `(\w+)`
		} else {
			parts[i] = `(` + wordPattern(tok) + `)`
		}
	}
	re := compiled(`\b`+strings.Join(parts, `\s+`)+`\b`, q.CaseSensitive)
	if re == nil {
		return nil
	}

	// Every token of every chain occurrence gets its own span.
	var spans []span
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		for g := 1; g <= len(q.Tokens); g++ {
			start, end := m[2*g], m[2*g+1]
			if start >= 0 {
				spans = append(spans, span{start, end})
			}
		}
	}
	return spans
}

func findSpans(text, pattern string, caseSensitive bool) []span {
	re := compiled(pattern, caseSensitive)
	if re == nil {
		return nil
	}
	var spans []span
	for _, m := range re.FindAllStringIndex(text, -1) {
		spans = append(spans, span{m[0], m[1]})
	}
	return spans
}

// applySpans resolves overlaps and inserts markers. Spans are processed in
// descending start order and the first span kept at a position wins; later
// overlapping spans are dropped. Replacements run from the highest offset
// down so earlier insertions never invalidate pending offsets.
func applySpans(text string, spans []span) string {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start > spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var kept []span
	for _, s := range spans {
		overlaps := false
		for _, k := range kept {
			if s.start < k.end && k.start < s.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, s)
		}
	}

	highlighted := text
	for _, s := range kept {
		highlighted = highlighted[:s.start] + MarkerOpen + highlighted[s.start:s.end] + MarkerClose + highlighted[s.end:]
	}
	return highlighted
}
