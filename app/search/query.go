package search

import (
	"github.com/bereanware/berean/app/verses"
)

// Query is a compiled word query, one of four operator families: Simple
// (AND/OR/phrase/negation), Proximity (~N), OrderedWords (>) and
// WordPlaceholder (&). A Query carries everything needed to derive both
// the coarse storage filter and the precise in-memory matcher; it is
// created fresh per search call and never persisted.
type Query interface {
	// Filter derives the permissive storage-level predicate. The filter is
	// a superset of the true match set; it only reduces rows fetched from
	// storage and is never trusted to be precise.
	Filter() verses.Filter

	isQuery()
}

// Term is one token of a Simple query.
type Term struct {
	// Text with any surrounding quotes stripped.
	Text string
	// IsPhrase marks a quoted term without wildcards: it must match as a
	// whole word or phrase bounded by non-word characters.
	IsPhrase bool
	// HasWildcard marks a quoted term containing *, % or ?. Wildcards in
	// unquoted terms are literal characters.
	HasWildcard bool
	// Negated inverts this term's match. Only the first term of a query
	// can be negated (leading !).
	Negated bool
}

// SimpleQuery is the default family: bare words, quoted phrases and
// quoted wildcard terms chained with AND/OR joiners. Reduction is strictly
// left-associative with no precedence.
type SimpleQuery struct {
	Terms         []Term
	Joiners       []verses.Joiner
	CaseSensitive bool
}

// ProximityQuery matches verses where Left and Right occur within
// MaxDistance words of each other, in either order. MaxDistance 0 means
// strictly adjacent.
type ProximityQuery struct {
	Left          string
	Right         string
	MaxDistance   int
	Negated       bool
	CaseSensitive bool
}

// OrderedQuery matches verses containing every term in the given sequence,
// with any text in between.
type OrderedQuery struct {
	Terms         []string
	Negated       bool
	CaseSensitive bool
}

// PlaceholderToken is the token value representing a single-word gap in a
// PlaceholderQuery.
const PlaceholderToken = "&"

// PlaceholderQuery matches a run of whitespace-separated tokens where each
// "&" token stands for exactly one word. Consecutive placeholders are
// independent gaps.
type PlaceholderQuery struct {
	Tokens        []string
	Negated       bool
	CaseSensitive bool
}

func (*SimpleQuery) isQuery()      {}
func (*ProximityQuery) isQuery()   {}
func (*OrderedQuery) isQuery()     {}
func (*PlaceholderQuery) isQuery() {}
