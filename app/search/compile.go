package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bereanware/berean/app/verses"
)

var (
	// Detection and splitting of the proximity operator. Only the first
	// " ~N " occurrence is honored; anything after it belongs to the
	// right-hand term. Queries with two proximity tokens are unsupported.
	proximityDetectRe = regexp.MustCompile(` ~(\d+) `)
	proximitySplitRe  = regexp.MustCompile(`^(.*?) ~(\d+) (.*)$`)

	// Tokenizer for Simple queries: quoted phrases stay single tokens.
	termTokenRe = regexp.MustCompile(`"[^"]*"|\S+`)
)

// Compile turns a word-query string into a Query value. Detection
// order is fixed and mutually exclusive: leading '!', proximity " ~N ",
// ordered words " > ", space-bounded '&' placeholders, otherwise Simple.
func Compile(query string, caseSensitive bool) Query {
	query = strings.TrimSpace(query)

	negated := false
	if strings.HasPrefix(query, "!") {
		query = strings.TrimSpace(strings.TrimPrefix(query, "!"))
		negated = true
	}

	if proximityDetectRe.MatchString(query) {
		if m := proximitySplitRe.FindStringSubmatch(query); m != nil {
			distance, _ := strconv.Atoi(m[2])
			return &ProximityQuery{
				Left:          strings.TrimSpace(m[1]),
				Right:         strings.TrimSpace(m[3]),
				MaxDistance:   distance,
				Negated:       negated,
				CaseSensitive: caseSensitive,
			}
		}
	}

	if strings.Contains(query, " > ") {
		var terms []string
		for _, part := range strings.Split(query, " > ") {
			if part = strings.TrimSpace(part); part != "" {
				terms = append(terms, part)
			}
		}
		return &OrderedQuery{
			Terms:         terms,
			Negated:       negated,
			CaseSensitive: caseSensitive,
		}
	}

	// A bare '&' embedded inside a word is not a placeholder; the operator
	// must be space-bounded.
	if strings.Contains(query, " & ") {
		return &PlaceholderQuery{
			Tokens:        strings.Fields(query),
			Negated:       negated,
			CaseSensitive: caseSensitive,
		}
	}

	return compileSimple(query, negated, caseSensitive)
}

func compileSimple(query string, negated, caseSensitive bool) *SimpleQuery {
	q := &SimpleQuery{CaseSensitive: caseSensitive}

	for _, token := range termTokenRe.FindAllString(query, -1) {
		upper := strings.ToUpper(token)
		if upper == "AND" || upper == "OR" {
			q.Joiners = append(q.Joiners, verses.Joiner(upper))
			continue
		}

		term := Term{Text: token}
		if strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) && len(token) >= 2 {
			term.Text = token[1 : len(token)-1]
			if containsWildcard(term.Text) {
				term.HasWildcard = true
			} else {
				term.IsPhrase = true
			}
		}
		// Unquoted terms keep *, % and ? as literal characters.
		q.Terms = append(q.Terms, term)
	}

	// The leading ! negates the first term only.
	if negated && len(q.Terms) > 0 {
		q.Terms[0].Negated = true
	}
	return q
}

// Filter derivation. Every term becomes a permissive substring clause;
// operator families additionally require all their literal terms with no
// ordering or adjacency constraint, which only the in-memory matcher
// enforces.

func (q *SimpleQuery) Filter() verses.Filter {
	f := verses.Filter{CaseSensitive: q.CaseSensitive, Joiners: q.Joiners}
	for _, t := range q.Terms {
		body := likeLiteral(t.Text)
		if t.HasWildcard {
			body = likeWildcard(t.Text)
		}
		f.Clauses = append(f.Clauses, verses.FilterClause{
			Like:    "%" + body + "%",
			Negated: t.Negated,
		})
	}
	return f
}

func (q *ProximityQuery) Filter() verses.Filter {
	return termFilter([]string{q.Left, q.Right}, q.Negated, q.CaseSensitive)
}

func (q *OrderedQuery) Filter() verses.Filter {
	return termFilter(q.Terms, q.Negated, q.CaseSensitive)
}

func (q *PlaceholderQuery) Filter() verses.Filter {
	var literals []string
	for _, tok := range q.Tokens {
		if tok != PlaceholderToken {
			literals = append(literals, tok)
		}
	}
	return termFilter(literals, q.Negated, q.CaseSensitive)
}

func termFilter(terms []string, negated, caseSensitive bool) verses.Filter {
	f := verses.Filter{CaseSensitive: caseSensitive}
	for _, term := range terms {
		f.Clauses = append(f.Clauses, verses.FilterClause{
			Like:    "%" + likeWildcard(term) + "%",
			Negated: negated,
		})
	}
	return f
}
