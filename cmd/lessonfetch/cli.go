package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/importer"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Sites    lessonfetch.SiteService
	History  lessonfetch.HistoryService
	Importer *importer.Importer
	Audio    *importer.AudioImporter
	Picker   lessonfetch.Picker

	// DefaultToken is the app-level LingQ API key from the environment
	// or the config file. An explicit --token flag still wins, and
	// per-site keys win over this.
	DefaultToken string

	// DefaultLanguage is the lesson language used when neither the
	// flags nor the site configure one.
	DefaultLanguage string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Import  ImportCmd  `cmd:"" help:"Import a web page as a LingQ lesson"`
	Pick    PickCmd    `cmd:"" help:"Pick content selectors for a site in a browser"`
	Sites   SitesCmd   `cmd:"" help:"Manage saved site configurations"`
	History HistoryCmd `cmd:"" help:"Show the import ledger"`
	Audio   AudioCmd   `cmd:"" help:"Import a directory of MP3 files as lessons"`

	DB       string `help:"History database path" placeholder:"PATH"`
	SitesDir string `help:"Directory holding site configurations" placeholder:"DIR"`
	OutDir   string `help:"Directory for lesson artifacts" placeholder:"DIR"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URL         string `arg:"" optional:"" help:"Article URL (omit with --site or --all)"`
	Site        string `help:"Import a saved site by slug"`
	All         bool   `help:"Import every saved site"`
	Upload      bool   `help:"Upload the lesson to LingQ"`
	Archive     bool   `help:"Also write a markdown archive"`
	DryRun      bool   `help:"Prepare artifacts without uploading or recording"`
	Force       bool   `short:"f" help:"Reimport even when the content is unchanged"`
	Token       string `help:"LingQ API token (default: $LINGQ_API_KEY)"`
	Engine      string `help:"Extraction engine: heuristic, readability or trafilatura"`
	Language    string `help:"Lesson language code"`
	MinWords    int    `help:"Reject extractions below this word count"`
	Collection  int64  `help:"LingQ course id"`
	Title       string `help:"Lesson title override"`
	Browser     bool   `help:"Fetch with headless Chrome even without pre-steps"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent site imports with --all"`
}

// PickCmd is the "pick" subcommand.
type PickCmd struct {
	URL        string `arg:"" optional:"" help:"Page to open (defaults to the site's URL)"`
	Site       string `help:"Site slug to save the selectors under (default: derived from the URL)"`
	Language   string `help:"Lesson language code saved with the site"`
	Collection int64  `help:"LingQ course id saved with the site"`
	MinWords   int    `help:"Extraction word floor saved with the site"`
	Title      string `help:"Lesson title override saved with the site"`
}

// SitesCmd groups the site configuration subcommands.
type SitesCmd struct {
	List   SitesListCmd   `cmd:"" help:"List saved sites"`
	Show   SitesShowCmd   `cmd:"" help:"Print one site configuration as JSON"`
	Add    SitesAddCmd    `cmd:"" help:"Create or replace a site configuration"`
	Delete SitesDeleteCmd `cmd:"" help:"Delete a site configuration"`
}

// SitesListCmd is the "sites list" subcommand.
type SitesListCmd struct{}

// SitesShowCmd is the "sites show" subcommand.
type SitesShowCmd struct {
	Slug string `arg:"" help:"Site slug"`
}

// SitesAddCmd is the "sites add" subcommand.
type SitesAddCmd struct {
	Slug            string   `arg:"" help:"Site slug"`
	URL             string   `help:"Content page URL"`
	FeedURL         string   `help:"RSS/Atom feed resolved to its newest entry"`
	Selectors       []string `help:"CSS selector for explicit extraction (repeatable)"`
	Language        string   `help:"Lesson language code"`
	Engine          string   `help:"Extraction engine override"`
	MinWords        int      `help:"Extraction word floor"`
	Collection      int64    `help:"LingQ course id"`
	Title           string   `help:"Lesson title override"`
	SourceLang      string   `help:"Value for the lang query parameter"`
	BrowserLanguage string   `help:"Browser locale emulated during fetches"`
	AcceptLanguage  string   `help:"Accept-Language header sent with fetches"`
	Token           string   `help:"Per-site LingQ API token"`
}

// SitesDeleteCmd is the "sites delete" subcommand.
type SitesDeleteCmd struct {
	Slug  string `arg:"" help:"Site slug"`
	Force bool   `help:"Confirm deletion"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Site  string `help:"Filter by site slug"`
	URL   string `help:"Filter by source URL"`
	Limit int    `default:"20" help:"Maximum number of records"`
}

// AudioCmd is the "audio" subcommand.
type AudioCmd struct {
	Dir         string `arg:"" help:"Directory of MP3 files"`
	TitlePrefix string `required:"" help:"Lesson title prefix, numbered per file"`
	Language    string `help:"Lesson language code (default: $LINGQ_LANGUAGE)"`
	Collection  int64  `help:"LingQ course id"`
	Token       string `help:"LingQ API token (default: $LINGQ_API_KEY)"`
	StartTrack  int    `default:"1" help:"Track number of the first file"`
	Transcribe  bool   `help:"Transcribe each file with Whisper for the lesson text"`
	DryRun      bool   `help:"List the files and titles without uploading"`
}
