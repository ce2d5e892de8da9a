package canon

import (
	"regexp"
	"strconv"
	"strings"
)

// Reference is a parsed verse reference like "Gen 1:1" or "1 Samuel 2:3-9".
// EndVerse equals StartVerse when the input gave no range.
type Reference struct {
	Book       string `json:"book"`
	Chapter    int    `json:"chapter"`
	StartVerse int    `json:"start_verse"`
	EndVerse   int    `json:"end_verse"`
}

// Reference shapes: "Gen 1:1", "Genesis 1:1-9" and the numbered-book form
// "1 Samuel 2:3". The shape test is cheap and runs before book resolution.
var (
	referenceRe         = regexp.MustCompile(`^([a-zA-Z]+)\s*(\d+):(\d+)(?:-(\d+))?$`)
	numberedReferenceRe = regexp.MustCompile(`^(\d+\s*[a-zA-Z]+)\s*(\d+):(\d+)(?:-(\d+))?$`)
)

// LooksLikeReference reports whether the query has the shape of a verse
// reference. A true result does not mean the book resolves.
func LooksLikeReference(query string) bool {
	query = strings.TrimSpace(query)
	return referenceRe.MatchString(query) || numberedReferenceRe.MatchString(query)
}

// ParseReference parses a verse reference and resolves its book against the
// index. Returns false when the input is not reference-shaped or the book
// does not resolve; the caller then treats the input as a word query.
func (idx *Index) ParseReference(query string) (Reference, bool) {
	query = strings.TrimSpace(query)

	for _, re := range []*regexp.Regexp{referenceRe, numberedReferenceRe} {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		book, ok := idx.NormalizeBookName(m[1])
		if !ok {
			continue
		}
		chapter, _ := strconv.Atoi(m[2])
		startVerse, _ := strconv.Atoi(m[3])
		endVerse := startVerse
		if m[4] != "" {
			endVerse, _ = strconv.Atoi(m[4])
		}
		return Reference{
			Book:       book,
			Chapter:    chapter,
			StartVerse: startVerse,
			EndVerse:   endVerse,
		}, true
	}

	return Reference{}, false
}

// QueryKind distinguishes verse-reference queries from word queries.
type QueryKind int

const (
	KindWords QueryKind = iota
	KindReference
)

// Classify decides whether a query is a verse reference or a word search.
// Any failure to resolve the book falls through to a word search, which is
// also how free text that merely looks reference-shaped is handled.
func (idx *Index) Classify(query string) QueryKind {
	if !LooksLikeReference(query) {
		return KindWords
	}
	if _, ok := idx.ParseReference(query); ok {
		return KindReference
	}
	return KindWords
}
