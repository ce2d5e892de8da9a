package search

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Wildcard lexicon: '*' and '%' both mean "zero or more word characters",
// '?' means exactly one word character. Matches stay word-bounded, so
// "sent*" cannot run into the next word.

var regexCache = cache.New(2*time.Minute, 5*time.Minute)

// compiled returns the compiled regex for pattern, case-folded unless
// caseSensitive, caching compilations. Patterns are built from quoted
// literals so compilation failures are not expected; they are logged and
// treated as "matches nothing" because verification must never fail a
// whole search over one term.
func compiled(pattern string, caseSensitive bool) *regexp.Regexp {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	if re, found := regexCache.Get(pattern); found {
		return re.(*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		slog.Warn("failed to compile match pattern", "pattern", pattern, "err", err)
		return nil
	}
	regexCache.Set(pattern, re, cache.DefaultExpiration)
	return re
}

// wordPattern converts a wildcard-capable term to a regex fragment without
// boundary assertions: */% -> \w*, ? -> \w, other characters literal.
func wordPattern(term string) string {
	var sb strings.Builder
	for _, r := range term {
		switch r {
		case '*', '%':
			sb.WriteString(`\w*`)
		case '?':
			sb.WriteString(`\w`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}

// boundedPattern is wordPattern with the boundary rule for wildcard terms:
// a leading wildcard suppresses the leading boundary assertion, but the
// trailing boundary is always required. "sent*" compiles to \bsent\w*\b;
// "*sent" compiles to \w*sent\b and so matches "resent" but never the
// interior of "sentence".
func boundedPattern(term string) string {
	startsWithWildcard := strings.HasPrefix(term, "*") || strings.HasPrefix(term, "%")
	pattern := wordPattern(term)
	if !startsWithWildcard {
		pattern = `\b` + pattern
	}
	return pattern + `\b`
}

// likeWildcard converts a wildcard term to a SQL LIKE body: */% -> %,
// ? -> _, with literal LIKE metacharacters backslash-escaped.
func likeWildcard(term string) string {
	var sb strings.Builder
	for _, r := range term {
		switch r {
		case '*', '%':
			sb.WriteByte('%')
		case '?':
			sb.WriteByte('_')
		case '_':
			sb.WriteString(`\_`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// likeLiteral escapes a term so every character, including * % ? _, is
// matched literally by LIKE. Unquoted terms do not interpret wildcards.
func likeLiteral(term string) string {
	var sb strings.Builder
	for _, r := range term {
		switch r {
		case '%':
			sb.WriteString(`\%`)
		case '_':
			sb.WriteString(`\_`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func containsWildcard(s string) bool {
	return strings.ContainsAny(s, "*%?")
}
