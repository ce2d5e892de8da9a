package verses

import (
	"context"

	"github.com/bereanware/berean/app/canon"
)

// VerseStore is the storage collaborator of the search engine. It exposes
// read-only, parameterized queries over the translations / books / verses /
// verse_texts record sets and is never mutated by the engine.
type VerseStore interface {
	// Translations returns all translations in storage order.
	Translations(ctx context.Context) ([]Translation, error)

	// Books returns the book table in canon order.
	Books(ctx context.Context) ([]canon.Book, error)

	// FilterVerses returns candidate verses of one translation matching the
	// coarse filter, optionally restricted to the named books. Candidates
	// may include false positives; precise operator semantics are enforced
	// by the caller.
	FilterVerses(ctx context.Context, translation string, filter Filter, bookFilter []string) ([]VerseRecord, error)

	// VersesByReference returns the verses of a parsed reference for one
	// translation, ordered by verse number.
	VersesByReference(ctx context.Context, translation string, ref canon.Reference) ([]VerseRecord, error)

	// Chapter returns a whole chapter for continuous reading.
	Chapter(ctx context.Context, translation, book string, chapter int) ([]VerseRecord, error)

	// VerseRun returns up to limit verses of one chapter starting at
	// startVerse.
	VerseRun(ctx context.Context, translation, book string, chapter, startVerse, limit int) ([]VerseRecord, error)

	// CrossChapterRun returns up to limit verses starting at
	// (chapter, startVerse), continuing into following chapters.
	CrossChapterRun(ctx context.Context, translation, book string, chapter, startVerse, limit int) ([]VerseRecord, error)
}
