package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bereanware/berean/app/verses"
)

// Verify re-checks a storage-filtered candidate against the precise
// operator semantics. The storage filter is substring-based and admits
// false positives; a record failing verification is dropped silently.
func Verify(text string, q Query) bool {
	switch q := q.(type) {
	case *SimpleQuery:
		return verifySimple(text, q)
	case *ProximityQuery:
		return verifyProximity(text, q)
	case *OrderedQuery:
		return verifyOrdered(text, q)
	case *PlaceholderQuery:
		return verifyPlaceholder(text, q)
	}
	return false
}

func verifySimple(text string, q *SimpleQuery) bool {
	if len(q.Terms) == 0 {
		return false
	}

	result := false
	for i, term := range q.Terms {
		matched := matchTerm(text, term, q.CaseSensitive)
		if term.Negated {
			matched = !matched
		}
		if i == 0 {
			result = matched
			continue
		}
		// Strictly left-associative reduction, no precedence:
		// "A OR B AND C" evaluates as "(A OR B) AND C". Missing joiners
		// default to AND.
		joiner := verses.JoinAnd
		if i-1 < len(q.Joiners) {
			joiner = q.Joiners[i-1]
		}
		if joiner == verses.JoinOr {
			result = result || matched
		} else {
			result = result && matched
		}
	}
	return result
}

func matchTerm(text string, term Term, caseSensitive bool) bool {
	switch {
	case term.IsPhrase:
		return matchesPattern(text, `\b`+regexp.QuoteMeta(term.Text)+`\b`, caseSensitive)
	case term.HasWildcard:
		return matchesPattern(text, boundedPattern(term.Text), caseSensitive)
	default:
		// Bare terms need no regex beyond the substring filter, except
		// short ones: a bare "I" must not match inside "Israel".
		if utf8.RuneCountInString(term.Text) <= 2 {
			return matchesPattern(text, `\b`+regexp.QuoteMeta(term.Text)+`\b`, caseSensitive)
		}
		if caseSensitive {
			return strings.Contains(text, term.Text)
		}
		return strings.Contains(strings.ToLower(text), strings.ToLower(term.Text))
	}
}

func matchesPattern(text, pattern string, caseSensitive bool) bool {
	re := compiled(pattern, caseSensitive)
	return re != nil && re.MatchString(text)
}

var tokenRe = regexp.MustCompile(`\w+`)

func verifyProximity(text string, q *ProximityQuery) bool {
	leftRe := compiled(boundedPattern(q.Left), q.CaseSensitive)
	rightRe := compiled(boundedPattern(q.Right), q.CaseSensitive)
	if leftRe == nil || rightRe == nil {
		return false
	}

	leftMatches := leftRe.FindAllStringIndex(text, -1)
	rightMatches := rightRe.FindAllStringIndex(text, -1)
	if len(leftMatches) == 0 || len(rightMatches) == 0 {
		return false
	}

	tokens := tokenRe.FindAllStringIndex(text, -1)

	// Any pair of occurrences within range is a hit, not just the first.
	// MaxDistance counts the words strictly between the pair, so ~0 means
	// adjacent.
	for _, lm := range leftMatches {
		li := tokenIndexAt(tokens, lm[0])
		if li < 0 {
			continue
		}
		for _, rm := range rightMatches {
			ri := tokenIndexAt(tokens, rm[0])
			if ri < 0 {
				continue
			}
			distance := li - ri
			if distance < 0 {
				distance = -distance
			}
			if distance-1 <= q.MaxDistance {
				return true
			}
		}
	}
	return false
}

// tokenIndexAt returns the index of the word token containing the given
// character offset, or -1.
func tokenIndexAt(tokens [][]int, offset int) int {
	for i, tok := range tokens {
		if tok[0] <= offset && offset < tok[1] {
			return i
		}
	}
	return -1
}

func verifyOrdered(text string, q *OrderedQuery) bool {
	if len(q.Terms) == 0 {
		return false
	}
	parts := make([]string, len(q.Terms))
	for i, term := range q.Terms {
		parts[i] = boundedPattern(term)
	}
	// Non-greedy gaps enforce sequence but not adjacency.
	return matchesPattern(text, strings.Join(parts, `.*?`), q.CaseSensitive)
}

func verifyPlaceholder(text string, q *PlaceholderQuery) bool {
	if len(q.Tokens) == 0 {
		return false
	}
	return matchesPattern(text, placeholderChain(q.Tokens), q.CaseSensitive)
}

// placeholderChain builds \btok1\s+tok2\s+...\s+tokN\b where each "&"
// stands for exactly one word.
func placeholderChain(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok == PlaceholderToken {
			parts[i] = `\w+`
		} else {
			parts[i] = wordPattern(tok)
		}
	}
	return `\b` + strings.Join(parts, `\s+`) + `\b`
}
