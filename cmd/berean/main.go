package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bereanware/berean/app/config"
	"github.com/bereanware/berean/app/search"
	"github.com/bereanware/berean/app/server"
	"github.com/bereanware/berean/app/verses"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "import":
		runImport()
	case "server":
		runServer()
	case "search":
		runSearch()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: berean <command> [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  import        Import a translation JSON into the bibles database")
	fmt.Fprintln(os.Stderr, "  server        Start the berean API server")
	fmt.Fprintln(os.Stderr, "  search        Run a search from the command line")
}

func runImport() {
	flags := pflag.NewFlagSet("import", pflag.ExitOnError)
	var database, abbreviation, name, input string
	flags.StringVarP(&database, "database", "d", "bibles.db", "Path of the SQLite bibles database")
	flags.StringVarP(&abbreviation, "abbreviation", "a", "", "Translation abbreviation, e.g. KJV (required)")
	flags.StringVarP(&name, "name", "n", "", "Translation full name (required)")
	flags.StringVarP(&input, "input", "i", "", "Translation JSON file (required)")

	flags.Parse(os.Args[2:])

	if abbreviation == "" || name == "" || input == "" {
		fmt.Fprintln(os.Stderr, "Error: --abbreviation, --name and --input are required")
		os.Exit(1)
	}

	db, err := verses.OpenDB(database, false)
	if err != nil {
		slog.Error("error while opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	store := verses.NewSQLiteStore(db)
	if err := store.Init(); err != nil {
		slog.Error("error while initializing schema", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := store.SeedBooks(ctx); err != nil {
		slog.Error("error while seeding books", "err", err)
		os.Exit(1)
	}

	f, err := os.Open(input)
	if err != nil {
		slog.Error("error while opening translation JSON", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := store.ImportTranslation(ctx, abbreviation, name, f); err != nil {
		slog.Error("error while importing translation", "err", err)
		os.Exit(1)
	}
}

func runServer() {
	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	var configPath string
	flags.StringVarP(&configPath, "config", "c", "config.json", "Path of config.json")

	flags.Parse(os.Args[2:])

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("error while reading config", "err", err)
		os.Exit(1)
	}

	db, err := verses.OpenDB(conf.DatabasePath, true)
	if err != nil {
		slog.Error("error while opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	svc, err := search.NewService(context.Background(), verses.NewSQLiteStore(db))
	if err != nil {
		slog.Error("error while initializing search service", "err", err)
		os.Exit(1)
	}

	fmt.Printf("Starting server on %s:%d\n", conf.Server.Address, conf.Server.Port)
	server.StartServer(server.NewBereanController(svc, conf), conf)
}

func runSearch() {
	flags := pflag.NewFlagSet("search", pflag.ExitOnError)
	var database, translations, books string
	var caseSensitive, uniqueVerses, abbreviate bool
	flags.StringVarP(&database, "database", "d", "bibles.db", "Path of the SQLite bibles database")
	flags.StringVarP(&translations, "translations", "t", "", "Comma-separated translation abbreviations")
	flags.StringVarP(&books, "books", "b", "", "Comma-separated book names to restrict the search")
	flags.BoolVar(&caseSensitive, "case-sensitive", false, "Match case exactly")
	flags.BoolVar(&uniqueVerses, "unique", false, "Keep one result per verse")
	flags.BoolVar(&abbreviate, "abbreviate", false, "Abbreviate common words in output")

	flags.Parse(os.Args[2:])

	if flags.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a query is required")
		os.Exit(1)
	}
	query := strings.Join(flags.Args(), " ")

	db, err := verses.OpenDB(database, true)
	if err != nil {
		slog.Error("error while opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	svc, err := search.NewService(ctx, verses.NewSQLiteStore(db))
	if err != nil {
		slog.Error("error while initializing search service", "err", err)
		os.Exit(1)
	}

	resp, err := svc.Search(ctx, search.Request{
		Query:             query,
		Translations:      splitList(translations),
		CaseSensitive:     caseSensitive,
		UniqueVerses:      uniqueVerses,
		AbbreviateResults: abbreviate,
		BookFilter:        splitList(books),
	})
	if err != nil {
		slog.Error("search failed", "err", err)
		os.Exit(1)
	}

	for _, r := range resp.Results {
		fmt.Printf("%s [%s] %s\n", search.FormatReference(r), r.Translation, r.HighlightedText)
	}
	fmt.Printf("%d results\n", resp.Metadata.TotalCount)
	if resp.Metadata.UniqueVersesEnabled && resp.Metadata.UniqueCount != nil {
		fmt.Printf("%d unique verses\n", *resp.Metadata.UniqueCount)
	}
}

func splitList(value string) []string {
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
