package verses

// Translation describes one Bible translation in storage. SortOrder is the
// display tie-break between translations of the same verse.
type Translation struct {
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
	Enabled      bool   `json:"enabled"`
	SortOrder    int    `json:"sort_order"`
}

// VerseRecord is one verse text as fetched from storage. Book carries the
// display abbreviation; identity is (Translation, Book, Chapter, Verse).
// Records are never mutated by the engine.
type VerseRecord struct {
	Translation string `json:"translation"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Text        string `json:"text"`
}

// SearchResult is a verse hit with its highlighted rendering. Stripping the
// highlight markers from HighlightedText reproduces Text exactly.
type SearchResult struct {
	Translation     string `json:"translation"`
	Book            string `json:"book"`
	Chapter         int    `json:"chapter"`
	Verse           int    `json:"verse"`
	Text            string `json:"text"`
	HighlightedText string `json:"highlighted_text"`
}

// Joiner is a boolean connective between storage filter clauses.
type Joiner string

const (
	JoinAnd Joiner = "AND"
	JoinOr  Joiner = "OR"
)

// FilterClause is one permissive substring predicate. Like is a SQL LIKE
// pattern with literal '%' and '_' backslash-escaped; stores must apply it
// with ESCAPE '\'.
type FilterClause struct {
	Like    string
	Negated bool
}

// Filter is the coarse storage-level predicate derived from a compiled
// query. It is intentionally overinclusive: it only shrinks the candidate
// set, and every candidate is re-checked in memory by the verifier.
// Joiners, when present, connect clause i to clause i+1; an empty slice
// means every clause is required.
type Filter struct {
	Clauses       []FilterClause
	Joiners       []Joiner
	CaseSensitive bool
}
