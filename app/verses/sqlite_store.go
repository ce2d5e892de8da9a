package verses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bereanware/berean/app/canon"
)

// SQLiteStore implements VerseStore over the normalized bibles database
// (translations, books, verses, verse_texts).
type SQLiteStore struct {
	db *sql.DB
}

var _ VerseStore = &SQLiteStore{}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenDB opens the SQLite bibles database at dbPath.
func OpenDB(dbPath string, readonly bool) (*sql.DB, error) {
	if readonly {
		dbPath = dbPath + "?mode=ro&immutable=1&_journal_mode=OFF"
	}
	slog.Info("opening SQLite DB", "dbPath", dbPath)
	db, err := sql.Open(SQLiteDriverName, dbPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Init creates the schema when missing.
func (s *SQLiteStore) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS translations (
			id INTEGER PRIMARY KEY,
			abbreviation TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			abbreviation TEXT NOT NULL,
			order_index INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS verses (
			id INTEGER PRIMARY KEY,
			book_id INTEGER NOT NULL REFERENCES books(id),
			chapter INTEGER NOT NULL,
			verse_number INTEGER NOT NULL,
			UNIQUE (book_id, chapter, verse_number)
		);
		CREATE TABLE IF NOT EXISTS verse_texts (
			id INTEGER PRIMARY KEY,
			verse_id INTEGER NOT NULL REFERENCES verses(id),
			translation_id INTEGER NOT NULL REFERENCES translations(id),
			text TEXT NOT NULL,
			UNIQUE (verse_id, translation_id)
		);
		CREATE INDEX IF NOT EXISTS idx_verses_book ON verses(book_id, chapter, verse_number);
		CREATE INDEX IF NOT EXISTS idx_verse_texts_verse ON verse_texts(verse_id, translation_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create bibles schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Translations(ctx context.Context) ([]Translation, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT abbreviation, name FROM translations ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	defer rows.Close()

	var translations []Translation
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.Abbreviation, &t.FullName); err != nil {
			return nil, err
		}
		t.Enabled = true
		t.SortOrder = len(translations) + 1
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

func (s *SQLiteStore) Books(ctx context.Context) ([]canon.Book, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, abbreviation, order_index FROM books ORDER BY order_index")
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	defer rows.Close()

	var books []canon.Book
	for rows.Next() {
		var b canon.Book
		if err := rows.Scan(&b.Name, &b.Abbreviation, &b.OrderIndex); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// whereForFilter renders the filter clauses as a SQL predicate over
// vt.text. Literal '%' and '_' in the patterns are backslash-escaped by the
// compiler, hence the ESCAPE clause.
func whereForFilter(filter Filter) (string, []any) {
	if len(filter.Clauses) == 0 {
		return "1=1", nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(filter.Clauses))
	for i, clause := range filter.Clauses {
		if i > 0 {
			joiner := JoinAnd
			if i-1 < len(filter.Joiners) {
				joiner = filter.Joiners[i-1]
			}
			sb.WriteString(" " + string(joiner) + " ")
		}
		cond := `vt.text LIKE ? ESCAPE '\'`
		if !filter.CaseSensitive {
			cond = `LOWER(vt.text) LIKE LOWER(?) ESCAPE '\'`
		}
		if clause.Negated {
			cond = "NOT (" + cond + ")"
		}
		sb.WriteString(cond)
		args = append(args, clause.Like)
	}
	return sb.String(), args
}

func (s *SQLiteStore) FilterVerses(ctx context.Context, translation string, filter Filter, bookFilter []string) ([]VerseRecord, error) {
	where, args := whereForFilter(filter)

	query := `
		SELECT b.abbreviation, v.chapter, v.verse_number, vt.text
		FROM books b
		JOIN verses v ON b.id = v.book_id
		JOIN verse_texts vt ON v.id = vt.verse_id
		JOIN translations t ON vt.translation_id = t.id
		WHERE t.abbreviation = ? AND (` + where + `)`
	params := append([]any{translation}, args...)

	if len(bookFilter) > 0 {
		query += " AND b.name IN (?" + strings.Repeat(",?", len(bookFilter)-1) + ")"
		for _, name := range bookFilter {
			params = append(params, name)
		}
	}
	query += " ORDER BY b.order_index, v.chapter, v.verse_number"

	return s.queryVerses(ctx, translation, query, params...)
}

func (s *SQLiteStore) VersesByReference(ctx context.Context, translation string, ref canon.Reference) ([]VerseRecord, error) {
	query := `
		SELECT b.abbreviation, v.chapter, v.verse_number, vt.text
		FROM books b
		JOIN verses v ON b.id = v.book_id
		JOIN verse_texts vt ON v.id = vt.verse_id
		JOIN translations t ON vt.translation_id = t.id
		WHERE LOWER(b.name) = LOWER(?)
		AND t.abbreviation = ?
		AND v.chapter = ?
		AND v.verse_number BETWEEN ? AND ?
		ORDER BY v.verse_number`
	return s.queryVerses(ctx, translation, query,
		ref.Book, translation, ref.Chapter, ref.StartVerse, ref.EndVerse)
}

func (s *SQLiteStore) Chapter(ctx context.Context, translation, book string, chapter int) ([]VerseRecord, error) {
	query := `
		SELECT b.abbreviation, v.chapter, v.verse_number, vt.text
		FROM books b
		JOIN verses v ON b.id = v.book_id
		JOIN verse_texts vt ON v.id = vt.verse_id
		JOIN translations t ON vt.translation_id = t.id
		WHERE t.abbreviation = ?
		AND (LOWER(b.abbreviation) = LOWER(?) OR LOWER(b.name) = LOWER(?))
		AND v.chapter = ?
		ORDER BY v.verse_number`
	return s.queryVerses(ctx, translation, query, translation, book, book, chapter)
}

func (s *SQLiteStore) VerseRun(ctx context.Context, translation, book string, chapter, startVerse, limit int) ([]VerseRecord, error) {
	query := `
		SELECT b.abbreviation, v.chapter, v.verse_number, vt.text
		FROM books b
		JOIN verses v ON b.id = v.book_id
		JOIN verse_texts vt ON v.id = vt.verse_id
		JOIN translations t ON vt.translation_id = t.id
		WHERE t.abbreviation = ?
		AND (LOWER(b.abbreviation) = LOWER(?) OR LOWER(b.name) = LOWER(?))
		AND v.chapter = ?
		AND v.verse_number >= ?
		ORDER BY v.verse_number
		LIMIT ?`
	return s.queryVerses(ctx, translation, query,
		translation, book, book, chapter, startVerse, limit)
}

func (s *SQLiteStore) CrossChapterRun(ctx context.Context, translation, book string, chapter, startVerse, limit int) ([]VerseRecord, error) {
	query := `
		SELECT b.abbreviation, v.chapter, v.verse_number, vt.text
		FROM books b
		JOIN verses v ON b.id = v.book_id
		JOIN verse_texts vt ON v.id = vt.verse_id
		JOIN translations t ON vt.translation_id = t.id
		WHERE t.abbreviation = ?
		AND (LOWER(b.abbreviation) = LOWER(?) OR LOWER(b.name) = LOWER(?))
		AND (v.chapter > ? OR (v.chapter = ? AND v.verse_number >= ?))
		ORDER BY v.chapter, v.verse_number
		LIMIT ?`
	return s.queryVerses(ctx, translation, query,
		translation, book, book, chapter, chapter, startVerse, limit)
}

func (s *SQLiteStore) queryVerses(ctx context.Context, translation, query string, args ...any) ([]VerseRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("verse query failed: %w", err)
	}
	defer rows.Close()

	var records []VerseRecord
	for rows.Next() {
		r := VerseRecord{Translation: translation}
		if err := rows.Scan(&r.Book, &r.Chapter, &r.Verse, &r.Text); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
