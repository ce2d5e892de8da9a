package verses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/bereanware/berean/app/canon"
)

// translationJSON is the corpus interchange format: book -> chapter ->
// verse number -> text. Chapter and verse keys are decimal strings.
type translationJSON map[string]map[string]map[string]string

// SeedBooks inserts the canonical book table when missing. Safe to call on
// every import.
func (s *SQLiteStore) SeedBooks(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO books (name, abbreviation, order_index) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range canon.Books() {
		if _, err := stmt.ExecContext(ctx, b.Name, b.Abbreviation, b.OrderIndex); err != nil {
			return fmt.Errorf("failed to seed book %q: %w", b.Name, err)
		}
	}
	return tx.Commit()
}

// ImportTranslation loads one translation from its JSON corpus into the
// database. The whole import runs in a single transaction and is
// idempotent: re-importing replaces the verse texts.
func (s *SQLiteStore) ImportTranslation(ctx context.Context, abbreviation, name string, r io.Reader) error {
	var corpus translationJSON
	if err := json.NewDecoder(r).Decode(&corpus); err != nil {
		return fmt.Errorf("failed to decode translation JSON: %w", err)
	}

	idx := canon.DefaultIndex()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO translations (abbreviation, name) VALUES (?, ?)",
		abbreviation, name); err != nil {
		return fmt.Errorf("failed to insert translation %q: %w", abbreviation, err)
	}

	var translationID int64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM translations WHERE abbreviation = ?", abbreviation).
		Scan(&translationID); err != nil {
		return err
	}

	verseStmt, err := tx.Prepare("INSERT OR IGNORE INTO verses (book_id, chapter, verse_number) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer verseStmt.Close()

	textStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO verse_texts (verse_id, translation_id, text)
		SELECT v.id, ?, ? FROM verses v WHERE v.book_id = ? AND v.chapter = ? AND v.verse_number = ?`)
	if err != nil {
		return err
	}
	defer textStmt.Close()

	imported := 0
	for _, bookKey := range sortedKeys(corpus) {
		bookName, ok := idx.NormalizeBookName(bookKey)
		if !ok {
			slog.Warn("skipping unknown book in corpus", "book", bookKey)
			continue
		}

		var bookID int64
		if err := tx.QueryRowContext(ctx,
			"SELECT id FROM books WHERE name = ?", bookName).Scan(&bookID); err != nil {
			return fmt.Errorf("book %q not seeded: %w", bookName, err)
		}

		chapters := corpus[bookKey]
		for _, chapterKey := range sortedNumericKeys(chapters) {
			chapter, _ := strconv.Atoi(chapterKey)
			versesInChapter := chapters[chapterKey]
			for _, verseKey := range sortedNumericKeys(versesInChapter) {
				verseNum, _ := strconv.Atoi(verseKey)
				text := versesInChapter[verseKey]

				if _, err := verseStmt.ExecContext(ctx, bookID, chapter, verseNum); err != nil {
					return err
				}
				if _, err := textStmt.ExecContext(ctx,
					translationID, text, bookID, chapter, verseNum); err != nil {
					return err
				}
				imported++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("imported translation", "abbreviation", abbreviation, "verses", imported)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedNumericKeys[V any](m map[string]V) []string {
	keys := sortedKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}
