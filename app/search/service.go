package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/bereanware/berean/app/canon"
	"github.com/bereanware/berean/app/common"
	"github.com/bereanware/berean/app/verses"
)

const maxHistory = 50

// Request is the single query surface exposed to the host. An empty
// Translations slice means all enabled translations; an empty BookFilter
// means all books.
type Request struct {
	Query             string   `json:"query"`
	Translations      []string `json:"translations,omitempty"`
	CaseSensitive     bool     `json:"case_sensitive"`
	UniqueVerses      bool     `json:"unique_verses"`
	AbbreviateResults bool     `json:"abbreviate_results"`
	BookFilter        []string `json:"book_filter,omitempty"`
}

// Response is one fully materialized result set with its metadata.
type Response struct {
	Results  []verses.SearchResult `json:"results"`
	Metadata Metadata              `json:"metadata"`
}

// ReadRequest asks for a continuous run of verses for the reading window.
// NumVerses 0 loads the whole chapter; CrossChapter lets the run continue
// into following chapters.
type ReadRequest struct {
	Translation  string `json:"translation"`
	Book         string `json:"book"`
	Chapter      int    `json:"chapter"`
	StartVerse   int    `json:"start_verse"`
	NumVerses    int    `json:"num_verses"`
	CrossChapter bool   `json:"cross_chapter"`
}

// Service is the verse search engine. The translation and book tables are
// loaded once at construction and read-only afterwards; each Search call is
// synchronous and self-contained, with no cross-call state beyond the
// query history.
type Service struct {
	store        verses.VerseStore
	idx          *canon.Index
	translations []verses.Translation

	mu      sync.Mutex
	history []string
}

// NewService loads the translation and book tables and builds the book
// index. It fails only when storage is unusable outright; a missing book
// table falls back to the built-in canon.
func NewService(ctx context.Context, store verses.VerseStore) (*Service, error) {
	translations, err := store.Translations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	books, err := store.Books(ctx)
	if err != nil || len(books) == 0 {
		if err != nil {
			slog.Warn("failed to load books, using built-in canon", "err", err)
		}
		books = canon.Books()
	}

	return &Service{
		store:        store,
		idx:          canon.NewIndex(books),
		translations: translations,
	}, nil
}

// Translations returns the loaded translation table.
func (s *Service) Translations() []verses.Translation {
	return s.translations
}

// Books returns the book table in canon order.
func (s *Service) Books() []canon.Book {
	return s.idx.Books()
}

// Search classifies the query, runs it against every enabled translation
// and assembles the ordered result list. Query-content problems are never
// errors: an unresolvable reference is re-classified as a word query and
// zero matches yields an empty list. Storage failures are isolated per
// translation; the search returns whatever the other translations produced.
func (s *Service) Search(ctx context.Context, req Request) (Response, error) {
	if s.store == nil {
		return Response{}, common.NewUserVisibleError(http.StatusServiceUnavailable, "verse storage is not available")
	}

	s.recordHistory(req.Query)

	enabled := req.Translations
	if len(enabled) == 0 {
		for _, t := range s.translations {
			if t.Enabled {
				enabled = append(enabled, t.Abbreviation)
			}
		}
	}

	var hits []verses.SearchResult
	if s.idx.Classify(req.Query) == canon.KindReference {
		hits = s.searchReference(ctx, req, enabled)
	} else {
		hits = s.searchWords(ctx, req, enabled)
	}

	results, meta := Assemble(hits, s.translations, s.idx, AssembleOptions{
		UniqueVerses: req.UniqueVerses,
		Abbreviate:   req.AbbreviateResults,
	})
	if meta.UniqueVersesEnabled {
		slog.Info("unique verses filtered", "total", meta.TotalCount, "unique", *meta.UniqueCount)
	}

	return Response{Results: results, Metadata: meta}, nil
}

func (s *Service) searchReference(ctx context.Context, req Request, enabled []string) []verses.SearchResult {
	ref, ok := s.idx.ParseReference(req.Query)
	if !ok {
		return nil
	}

	// A reference whose book falls outside the filter yields zero results,
	// not an error.
	if len(req.BookFilter) > 0 && !slices.Contains(req.BookFilter, ref.Book) {
		slog.Info("reference book not in filter", "book", ref.Book)
		return nil
	}

	var hits []verses.SearchResult
	for _, t := range s.translations {
		if !slices.Contains(enabled, t.Abbreviation) {
			continue
		}
		records, err := s.store.VersesByReference(ctx, t.Abbreviation, ref)
		if err != nil {
			slog.Warn("reference search failed for translation", "translation", t.Abbreviation, "err", err)
			continue
		}
		for _, r := range records {
			hits = append(hits, verses.SearchResult{
				Translation:     r.Translation,
				Book:            r.Book,
				Chapter:         r.Chapter,
				Verse:           r.Verse,
				Text:            r.Text,
				HighlightedText: r.Text,
			})
		}
	}
	return hits
}

func (s *Service) searchWords(ctx context.Context, req Request, enabled []string) []verses.SearchResult {
	compiledQuery := Compile(req.Query, req.CaseSensitive)
	filter := compiledQuery.Filter()

	// One storage query per enabled translation; hits are concatenated and
	// ordering is established only by the assembler's global sort.
	var hits []verses.SearchResult
	for _, t := range s.translations {
		if !slices.Contains(enabled, t.Abbreviation) {
			continue
		}
		records, err := s.store.FilterVerses(ctx, t.Abbreviation, filter, req.BookFilter)
		if err != nil {
			slog.Warn("word search failed for translation", "translation", t.Abbreviation, "err", err)
			continue
		}
		for _, r := range records {
			if !Verify(r.Text, compiledQuery) {
				continue
			}
			hits = append(hits, verses.SearchResult{
				Translation:     r.Translation,
				Book:            r.Book,
				Chapter:         r.Chapter,
				Verse:           r.Verse,
				Text:            r.Text,
				HighlightedText: Highlight(r.Text, compiledQuery),
			})
		}
	}
	return hits
}

// Read fetches a continuous run of verses for the reading window.
func (s *Service) Read(ctx context.Context, req ReadRequest) ([]verses.VerseRecord, error) {
	switch {
	case req.CrossChapter:
		return s.store.CrossChapterRun(ctx, req.Translation, req.Book, req.Chapter, req.StartVerse, req.NumVerses)
	case req.NumVerses > 0:
		return s.store.VerseRun(ctx, req.Translation, req.Book, req.Chapter, req.StartVerse, req.NumVerses)
	default:
		return s.store.Chapter(ctx, req.Translation, req.Book, req.Chapter)
	}
}

// History returns the most recent distinct queries, newest first.
func (s *Service) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]string, len(s.history))
	copy(history, s.history)
	return history
}

func (s *Service) recordHistory(query string) {
	if query == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.history, query); i >= 0 {
		s.history = slices.Delete(s.history, i, i+1)
	}
	s.history = slices.Insert(s.history, 0, query)
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
}
