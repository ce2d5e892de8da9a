package canon

import (
	"regexp"
	"strings"
)

// Book is one entry of the biblical canon table. OrderIndex is the
// traditional canon position, used as the primary sort key for results.
type Book struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	OrderIndex   int    `json:"order_index"`
}

// Books returns the canonical 66-book table in canon order.
func Books() []Book {
	books := make([]Book, len(canonBooks))
	copy(books, canonBooks)
	return books
}

var canonBooks = []Book{
	{"Genesis", "Gen", 1}, {"Exodus", "Exo", 2}, {"Leviticus", "Lev", 3},
	{"Numbers", "Num", 4}, {"Deuteronomy", "Deu", 5}, {"Joshua", "Jos", 6},
	{"Judges", "Jdg", 7}, {"Ruth", "Rut", 8}, {"1 Samuel", "1Sa", 9},
	{"2 Samuel", "2Sa", 10}, {"1 Kings", "1Ki", 11}, {"2 Kings", "2Ki", 12},
	{"1 Chronicles", "1Ch", 13}, {"2 Chronicles", "2Ch", 14}, {"Ezra", "Ezr", 15},
	{"Nehemiah", "Neh", 16}, {"Esther", "Est", 17}, {"Job", "Job", 18},
	{"Psalms", "Psa", 19}, {"Proverbs", "Pro", 20}, {"Ecclesiastes", "Ecc", 21},
	{"Song of Solomon", "Son", 22}, {"Isaiah", "Isa", 23}, {"Jeremiah", "Jer", 24},
	{"Lamentations", "Lam", 25}, {"Ezekiel", "Eze", 26}, {"Daniel", "Dan", 27},
	{"Hosea", "Hos", 28}, {"Joel", "Joe", 29}, {"Amos", "Amo", 30},
	{"Obadiah", "Oba", 31}, {"Jonah", "Jon", 32}, {"Micah", "Mic", 33},
	{"Nahum", "Nah", 34}, {"Habakkuk", "Hab", 35}, {"Zephaniah", "Zep", 36},
	{"Haggai", "Hag", 37}, {"Zechariah", "Zec", 38}, {"Malachi", "Mal", 39},
	{"Matthew", "Mat", 40}, {"Mark", "Mar", 41}, {"Luke", "Luk", 42},
	{"John", "Joh", 43}, {"Acts", "Act", 44}, {"Romans", "Rom", 45},
	{"1 Corinthians", "1Co", 46}, {"2 Corinthians", "2Co", 47},
	{"Galatians", "Gal", 48}, {"Ephesians", "Eph", 49}, {"Philippians", "Phi", 50},
	{"Colossians", "Col", 51}, {"1 Thessalonians", "1Th", 52},
	{"2 Thessalonians", "2Th", 53}, {"1 Timothy", "1Ti", 54},
	{"2 Timothy", "2Ti", 55}, {"Titus", "Tit", 56}, {"Philemon", "Phm", 57},
	{"Hebrews", "Heb", 58}, {"James", "Jam", 59}, {"1 Peter", "1Pe", 60},
	{"2 Peter", "2Pe", 61}, {"1 John", "1Jo", 62}, {"2 John", "2Jo", 63},
	{"3 John", "3Jo", 64}, {"Jude", "Jud", 65}, {"Revelation", "Rev", 66},
}

// unknownOrder sorts books missing from the table after every known book.
const unknownOrder = 999

// Index is the bidirectional book-name lookup built once at startup and
// read-only afterwards. Lookup keys are lower-cased; the books slice keeps
// canon order so partial-name resolution is deterministic.
type Index struct {
	books        []Book
	abbrevToName map[string]string
	nameToAbbrev map[string]string
	order        map[string]int
}

// NewIndex builds an Index from book rows, normally the rows of the books
// table in storage. Numbered books also get a compact alias ("1 Samuel" ->
// "1samuel") like the abbreviations users actually type.
func NewIndex(books []Book) *Index {
	idx := &Index{
		books:        books,
		abbrevToName: make(map[string]string),
		nameToAbbrev: make(map[string]string),
		order:        make(map[string]int),
	}
	for _, b := range books {
		idx.abbrevToName[strings.ToLower(b.Abbreviation)] = b.Name
		idx.nameToAbbrev[strings.ToLower(b.Name)] = b.Abbreviation
		idx.order[b.Name] = b.OrderIndex
		idx.order[b.Abbreviation] = b.OrderIndex
		if strings.HasPrefix(b.Name, "1 ") || strings.HasPrefix(b.Name, "2 ") ||
			strings.HasPrefix(b.Name, "3 ") {
			compact := strings.ToLower(strings.ReplaceAll(b.Name, " ", ""))
			idx.abbrevToName[compact] = b.Name
			idx.order[compact] = b.OrderIndex
		}
	}
	return idx
}

// DefaultIndex returns an Index over the built-in canon table.
func DefaultIndex() *Index {
	return NewIndex(canonBooks)
}

var numberedBookRe = regexp.MustCompile(`^(\d+)\s*(.+)$`)

// NormalizeBookName resolves a book name, abbreviation or partial name to
// the canonical full name. Resolution order: exact abbreviation-table hit,
// numbered-book compaction, then the first book (in canon order) whose full
// name contains or starts with the input.
func (idx *Index) NormalizeBookName(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}

	if name, ok := idx.abbrevToName[input]; ok {
		return name, true
	}

	if m := numberedBookRe.FindStringSubmatch(input); m != nil {
		compact := m[1] + strings.ReplaceAll(m[2], " ", "")
		if name, ok := idx.abbrevToName[compact]; ok {
			return name, true
		}
	}

	for _, b := range idx.books {
		lower := strings.ToLower(b.Name)
		if strings.Contains(lower, input) || strings.HasPrefix(lower, input) {
			return b.Name, true
		}
	}

	return "", false
}

// Abbreviation returns the display abbreviation for a full book name, or
// the name itself when unknown.
func (idx *Index) Abbreviation(name string) string {
	if abbrev, ok := idx.nameToAbbrev[strings.ToLower(name)]; ok {
		return abbrev
	}
	return name
}

// OrderOf returns the canon ordinal for a book name or abbreviation.
// Unknown books sort last.
func (idx *Index) OrderOf(book string) int {
	if o, ok := idx.order[book]; ok {
		return o
	}
	return unknownOrder
}

// Books returns the indexed books in canon order.
func (idx *Index) Books() []Book {
	return idx.books
}
