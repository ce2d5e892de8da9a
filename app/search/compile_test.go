package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bereanware/berean/app/verses"
)

func TestCompile_FamilyDetection(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		check func(t *testing.T, q Query)
	}{
		{
			name:  "Proximity",
			query: "love ~4 God",
			check: func(t *testing.T, q Query) {
				p, ok := q.(*ProximityQuery)
				require.True(t, ok)
				assert.Equal(t, "love", p.Left)
				assert.Equal(t, "God", p.Right)
				assert.Equal(t, 4, p.MaxDistance)
			},
		},
		{
			name:  "Proximity takes first token only",
			query: "a ~1 b ~2 c",
			check: func(t *testing.T, q Query) {
				p, ok := q.(*ProximityQuery)
				require.True(t, ok)
				assert.Equal(t, "a", p.Left)
				assert.Equal(t, 1, p.MaxDistance)
				assert.Equal(t, "b ~2 c", p.Right)
			},
		},
		{
			name:  "Ordered words",
			query: "love > neighbor > yourself",
			check: func(t *testing.T, q Query) {
				o, ok := q.(*OrderedQuery)
				require.True(t, ok)
				assert.Equal(t, []string{"love", "neighbor", "yourself"}, o.Terms)
			},
		},
		{
			name:  "Ordered words drops empty terms",
			query: "love >  > neighbor",
			check: func(t *testing.T, q Query) {
				o, ok := q.(*OrderedQuery)
				require.True(t, ok)
				assert.Equal(t, []string{"love", "neighbor"}, o.Terms)
			},
		},
		{
			name:  "Word placeholder",
			query: "who & send",
			check: func(t *testing.T, q Query) {
				p, ok := q.(*PlaceholderQuery)
				require.True(t, ok)
				assert.Equal(t, []string{"who", "&", "send"}, p.Tokens)
			},
		},
		{
			name:  "Embedded ampersand is not a placeholder",
			query: "Barnes&Noble",
			check: func(t *testing.T, q Query) {
				s, ok := q.(*SimpleQuery)
				require.True(t, ok)
				require.Len(t, s.Terms, 1)
				assert.Equal(t, "Barnes&Noble", s.Terms[0].Text)
			},
		},
		{
			name:  "Simple",
			query: "love God",
			check: func(t *testing.T, q Query) {
				s, ok := q.(*SimpleQuery)
				require.True(t, ok)
				assert.Len(t, s.Terms, 2)
				assert.Empty(t, s.Joiners)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, Compile(tc.query, false))
		})
	}
}

func TestCompile_SimpleTerms(t *testing.T) {
	q := Compile(`"in the beginning" AND "sent*" OR faith`, false)
	s, ok := q.(*SimpleQuery)
	require.True(t, ok)
	require.Len(t, s.Terms, 3)

	assert.Equal(t, Term{Text: "in the beginning", IsPhrase: true}, s.Terms[0])
	assert.Equal(t, Term{Text: "sent*", HasWildcard: true}, s.Terms[1])
	assert.Equal(t, Term{Text: "faith"}, s.Terms[2])
	assert.Equal(t, []verses.Joiner{verses.JoinAnd, verses.JoinOr}, s.Joiners)
}

func TestCompile_JoinersCaseInsensitive(t *testing.T) {
	q := Compile("love or grace", false)
	s, ok := q.(*SimpleQuery)
	require.True(t, ok)
	require.Len(t, s.Terms, 2)
	assert.Equal(t, []verses.Joiner{verses.JoinOr}, s.Joiners)
}

func TestCompile_LeadingNegation(t *testing.T) {
	q := Compile("!love grace", false)
	s, ok := q.(*SimpleQuery)
	require.True(t, ok)
	require.Len(t, s.Terms, 2)
	assert.True(t, s.Terms[0].Negated)
	assert.False(t, s.Terms[1].Negated)
	assert.Equal(t, "love", s.Terms[0].Text)
}

func TestFilter_Simple(t *testing.T) {
	q := Compile(`believe "sent*" "in the beginning"`, false)
	f := q.Filter()

	require.Len(t, f.Clauses, 3)
	assert.Equal(t, "%believe%", f.Clauses[0].Like)
	assert.Equal(t, "%sent%%", f.Clauses[1].Like)
	assert.Equal(t, "%in the beginning%", f.Clauses[2].Like)
	assert.False(t, f.CaseSensitive)
}

func TestFilter_UnquotedWildcardsAreLiteral(t *testing.T) {
	q := Compile("sing*", false)
	f := q.Filter()

	require.Len(t, f.Clauses, 1)
	// The star stays a literal character; only the outer wrapping percent
	// signs are LIKE wildcards.
	assert.Equal(t, "%sing*%", f.Clauses[0].Like)

	q = Compile("100%", false)
	f = q.Filter()
	require.Len(t, f.Clauses, 1)
	assert.Equal(t, `%100\%%`, f.Clauses[0].Like)
}

func TestFilter_NegatedFirstClause(t *testing.T) {
	q := Compile("!love", false)
	f := q.Filter()

	require.Len(t, f.Clauses, 1)
	assert.True(t, f.Clauses[0].Negated)
}

func TestFilter_OperatorFamiliesRequireAllTerms(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{"Proximity", "love ~2 God", []string{"%love%", "%God%"}},
		{"Ordered", "love > neighbor", []string{"%love%", "%neighbor%"}},
		{"Placeholder skips gaps", "who & & send", []string{"%who%", "%send%"}},
		{"Wildcards converted", "believ% ~3 Jesus", []string{"%believ%%", "%Jesus%"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := Compile(tc.query, false).Filter()
			var likes []string
			for _, clause := range f.Clauses {
				likes = append(likes, clause.Like)
			}
			assert.Equal(t, tc.expected, likes)
			assert.Empty(t, f.Joiners)
		})
	}
}
