package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/bereanware/berean/app/common"
	"github.com/bereanware/berean/app/config"
	"github.com/bereanware/berean/app/search"
	"github.com/bereanware/berean/app/verses"
)

// BereanController serves the JSON API. Recently materialized result sets
// are kept in a short-lived cache so load-more paging does not re-run the
// whole search per batch.
type BereanController struct {
	svc     *search.Service
	conf    *config.BereanConfig
	results *cache.Cache
}

func NewBereanController(svc *search.Service, conf *config.BereanConfig) *BereanController {
	return &BereanController{
		svc:     svc,
		conf:    conf,
		results: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// SearchPage is one batch of a materialized result list.
type SearchPage struct {
	Results  []verses.SearchResult `json:"results"`
	Metadata search.Metadata       `json:"metadata"`
	Total    int                   `json:"total"`
	Offset   int                   `json:"offset"`
	HasMore  bool                  `json:"has_more"`
}

func (bc *BereanController) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return common.NewUserVisibleError(http.StatusBadRequest, "missing query parameter 'q'")
	}

	req := search.Request{
		Query:             query,
		Translations:      splitParam(c.QueryParam("translations")),
		CaseSensitive:     boolParam(c, "case_sensitive"),
		UniqueVerses:      boolParam(c, "unique_verses"),
		AbbreviateResults: boolParam(c, "abbreviate"),
		BookFilter:        splitParam(c.QueryParam("books")),
	}
	if len(req.Translations) == 0 {
		req.Translations = bc.conf.EnabledTranslations
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	resp, err := bc.lookupOrSearch(c, req)
	if err != nil {
		return common.WrapErrorForResponse(err, "search failed")
	}

	batch := bc.conf.BatchSize
	total := len(resp.Results)
	if offset > total {
		offset = total
	}
	end := offset + batch
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, SearchPage{
		Results:  resp.Results[offset:end],
		Metadata: resp.Metadata,
		Total:    total,
		Offset:   offset,
		HasMore:  end < total,
	})
}

// lookupOrSearch serves a cached materialized result set when the exact
// same request was run recently, otherwise runs the search and caches it.
func (bc *BereanController) lookupOrSearch(c echo.Context, req search.Request) (search.Response, error) {
	key, err := json.Marshal(req)
	if err != nil {
		return search.Response{}, err
	}

	if cached, found := bc.results.Get(string(key)); found {
		return cached.(search.Response), nil
	}

	resp, err := bc.svc.Search(c.Request().Context(), req)
	if err != nil {
		return search.Response{}, err
	}
	bc.results.Set(string(key), resp, cache.DefaultExpiration)
	return resp, nil
}

func (bc *BereanController) Read(c echo.Context) error {
	chapter, err := strconv.Atoi(c.QueryParam("chapter"))
	if err != nil {
		return common.NewUserVisibleError(http.StatusBadRequest, "missing or invalid 'chapter'")
	}
	startVerse, _ := strconv.Atoi(c.QueryParam("start_verse"))
	numVerses, _ := strconv.Atoi(c.QueryParam("num_verses"))

	req := search.ReadRequest{
		Translation:  c.QueryParam("translation"),
		Book:         c.QueryParam("book"),
		Chapter:      chapter,
		StartVerse:   startVerse,
		NumVerses:    numVerses,
		CrossChapter: boolParam(c, "cross_chapter"),
	}
	if req.Translation == "" || req.Book == "" {
		return common.NewUserVisibleError(http.StatusBadRequest, "missing 'translation' or 'book'")
	}

	records, err := bc.svc.Read(c.Request().Context(), req)
	if err != nil {
		return common.WrapErrorForResponse(err, "read failed")
	}
	return c.JSON(http.StatusOK, records)
}

func (bc *BereanController) Translations(c echo.Context) error {
	return c.JSON(http.StatusOK, bc.svc.Translations())
}

func (bc *BereanController) Books(c echo.Context) error {
	return c.JSON(http.StatusOK, bc.svc.Books())
}

func (bc *BereanController) History(c echo.Context) error {
	return c.JSON(http.StatusOK, bc.svc.History())
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func boolParam(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}
