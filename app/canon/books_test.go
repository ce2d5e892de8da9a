package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_NormalizeBookName(t *testing.T) {
	idx := DefaultIndex()

	testCases := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"Abbreviation", "Gen", "Genesis", true},
		{"Abbreviation lower", "gen", "Genesis", true},
		{"Full name", "Genesis", "Genesis", true},
		{"Full name lower", "genesis", "Genesis", true},
		{"Partial name", "Genes", "Genesis", true},
		{"Numbered compact", "1samuel", "1 Samuel", true},
		{"Numbered spaced", "1 samuel", "1 Samuel", true},
		{"Numbered abbreviation", "1Sa", "1 Samuel", true},
		{"Substring resolves in canon order", "john", "John", true},
		{"Whitespace trimmed", "  rev  ", "Revelation", true},
		{"Unknown book", "Narnia", "", false},
		{"Empty", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, ok := idx.NormalizeBookName(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestIndex_OrderOf(t *testing.T) {
	idx := DefaultIndex()

	assert.Equal(t, 1, idx.OrderOf("Genesis"))
	assert.Equal(t, 1, idx.OrderOf("Gen"))
	assert.Equal(t, 66, idx.OrderOf("Revelation"))
	assert.Equal(t, unknownOrder, idx.OrderOf("Narnia"))

	// Canon order must be strictly increasing over the table.
	books := Books()
	for i := 1; i < len(books); i++ {
		assert.Less(t, books[i-1].OrderIndex, books[i].OrderIndex)
	}
}

func TestIndex_Abbreviation(t *testing.T) {
	idx := DefaultIndex()

	assert.Equal(t, "Gen", idx.Abbreviation("Genesis"))
	assert.Equal(t, "1Sa", idx.Abbreviation("1 Samuel"))
	assert.Equal(t, "Unknown", idx.Abbreviation("Unknown"))
}
