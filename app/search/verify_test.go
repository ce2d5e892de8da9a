package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func verifyQuery(t *testing.T, query, text string, caseSensitive bool) bool {
	t.Helper()
	return Verify(text, Compile(query, caseSensitive))
}

func TestVerify_QuotedExactPhrase(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		text    string
		matches bool
	}{
		{"Phrase present", `"in the beginning"`, "In the beginning God created the heaven and the earth.", true},
		{"Phrase bounded", `"sent"`, "he was sent away", true},
		{"Phrase inside word rejected", `"sent"`, "bearing presents always", false},
		{"Phrase absent", `"in the beginning"`, "And God said, Let there be light", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, tc.text, false))
		})
	}
}

func TestVerify_QuotedWildcardBoundaries(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		text    string
		matches bool
	}{
		{"Trailing star matches stem", `"sent*"`, "he sent his word", true},
		{"Trailing star matches longer word", `"sent*"`, "every sentence was read", true},
		{"Trailing star needs left boundary", `"sent*"`, "bearing presents always", false},
		{"Leading star matches word end", `"*sent"`, "he was sent away", true},
		{"Leading star matches resent", `"*sent"`, "they resent the message", true},
		{"Leading star never matches word interior", `"*sent"`, "every sentence was read", false},
		{"Percent equals star", `"believ%"`, "they believed him", true},
		{"Stem excludes different ending", `"believ%"`, "their belief was strong", false},
		{"Question mark is one word character", `"s?nt"`, "he sent his word", true},
		{"Question mark requires the character", `"s?nt"`, "he snt his word", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, tc.text, false))
		})
	}
}

func TestVerify_UnquotedTerms(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		text          string
		caseSensitive bool
		matches       bool
	}{
		{"Substring match inside word", "sent", "bearing presents always", false, true},
		{"Literal star unquoted", "sing*", "they kept sing* in the margin", false, true},
		{"Literal star does not expand", "sing*", "they were singing loudly", false, false},
		{"Short term needs boundary", "I", "Israel went up", false, false},
		{"Short term at boundary", "I", "and I will bless thee", false, true},
		{"Case insensitive by default", "LOVE", "thou shalt love the Lord", false, true},
		{"Case sensitive rejects", "LOVE", "thou shalt love the Lord", true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, tc.text, tc.caseSensitive))
		})
	}
}

func TestVerify_BooleanJoiners(t *testing.T) {
	text := "By grace are ye saved through faith"

	testCases := []struct {
		name    string
		query   string
		matches bool
	}{
		{"Default AND", "grace faith", true},
		{"Default AND fails", "grace works", false},
		{"OR succeeds on one side", "grace OR works", true},
		{"OR fails on both sides", "law OR works", false},
		// Left-associative, no precedence: (A OR B) AND C.
		{"OR then AND", "law OR grace AND faith", true},
		{"OR then AND fails on right", "law OR grace AND works", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, text, false))
		})
	}
}

func TestVerify_Negation(t *testing.T) {
	assert.False(t, verifyQuery(t, "!love", "thou shalt love the Lord", false))
	assert.True(t, verifyQuery(t, "!love", "fear God and keep his commandments", false))
}

func TestVerify_Proximity(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		text    string
		matches bool
	}{
		{"Adjacent with ~0", "love ~0 God", "they love God greatly", true},
		{"One word between fails ~0", "love ~0 God", "they love the God of hosts", false},
		{"One word between passes ~1", "love ~1 God", "they love the God of hosts", true},
		{"Adjacent passes ~1", "love ~1 God", "they love God greatly", true},
		{"Two words between fail ~1", "love ~1 God", "the love of the God of hosts", false},
		{"Order does not matter", "God ~0 love", "they love God greatly", true},
		{"Any pair of occurrences counts", "love ~0 God", "love endures; God is love and God loves love God", true},
		{"Missing word", "love ~5 Baal", "they love God greatly", false},
		{"Wildcard sub-term", "believ% ~1 Jesus", "they believed on Jesus there", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, tc.text, false))
		})
	}
}

func TestVerify_OrderedWords(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		text    string
		matches bool
	}{
		{"In order", "love > neighbor", "love thy neighbor as thyself", true},
		{"Reversed input order fails", "neighbor > love", "love thy neighbor as thyself", false},
		{"Adjacency not required", "love > God", "love the Lord thy God", true},
		{"Three terms in order", "seek > find > knock", "seek and ye shall find, then knock", true},
		{"Three terms out of order", "knock > seek > find", "seek and ye shall find, then knock", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, tc.text, false))
		})
	}
}

func TestVerify_WordPlaceholder(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		text    string
		matches bool
	}{
		{"One gap", "who & send", "who will send him", true},
		{"One gap requires exactly one word", "who & send", "who send him", false},
		{"One gap rejects two words", "who & send", "who will then send him", false},
		{"Two gaps", "who & & send", "who will then send him", true},
		{"Two gaps reject one word", "who & & send", "who will send him", false},
		{"Wildcard literal token", "who & s?nd", "who will send him", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, verifyQuery(t, tc.query, tc.text, false))
		})
	}
}
