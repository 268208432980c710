package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/fs"
	"github.com/lessonfetch/lessonfetch/goquery"
	"github.com/lessonfetch/lessonfetch/htmltomarkdown"
	lfhttp "github.com/lessonfetch/lessonfetch/http"
	"github.com/lessonfetch/lessonfetch/importer"
	"github.com/lessonfetch/lessonfetch/lingua"
	"github.com/lessonfetch/lessonfetch/openai"
	"github.com/lessonfetch/lessonfetch/readability"
	"github.com/lessonfetch/lessonfetch/rod"
	lfslog "github.com/lessonfetch/lessonfetch/slog"
	"github.com/lessonfetch/lessonfetch/sqlite"
	"github.com/lessonfetch/lessonfetch/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath is the YAML config file location. Set before calling
	// Run().
	ConfigPath string

	// Path overrides. Empty fields resolve from flags, the config file
	// and built-in defaults, in that order.
	DBPath   string
	SitesDir string
	OutDir   string

	// SQLite database backing the import ledger.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SiteService    lessonfetch.SiteService
	HistoryService lessonfetch.HistoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lessonfetch"),
		kong.Description("Turn web pages into LingQ lessons."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lessonfetch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(m.ConfigPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DBPath = firstNonEmpty(cli.DB, m.DBPath, os.Getenv("LESSONFETCH_DB"), cfg.DB, defaultDBPath())
	m.SitesDir = firstNonEmpty(cli.SitesDir, m.SitesDir, cfg.SitesDir, defaultSitesDir())
	m.OutDir = firstNonEmpty(cli.OutDir, m.OutDir, cfg.OutDir, "imports")

	deps.DefaultToken = firstNonEmpty(os.Getenv("LINGQ_API_KEY"), cfg.Token)
	deps.DefaultLanguage = firstNonEmpty(os.Getenv("LINGQ_LANGUAGE"), cfg.Language)

	m.SiteService = fs.NewSiteService(m.SitesDir)
	deps.Sites = m.SiteService

	// The ledger backs only import and history; the other commands never
	// touch the database.
	if cmd == "import" || cmd == "history" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LESSONFETCH_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.HistoryService = sqlite.NewHistoryService(m.DB)
		deps.History = m.HistoryService
	}

	// Wire command-specific dependencies based on command
	if cmd == "import" {
		browser := newLazyBrowser(func() (lessonfetch.Fetcher, error) {
			fetcher, err := rod.NewFetcher()
			if err != nil {
				return nil, fmt.Errorf("failed to start browser (is Chrome installed?): %w", err)
			}
			return lfslog.NewLoggingFetcher(fetcher, logger), nil
		})
		defer browser.Close()

		extractCfg := lessonfetch.DefaultExtractConfig()
		imp := &importer.Importer{
			Feeds:   lfhttp.NewFeedService(nil),
			Fetcher: lfslog.NewLoggingFetcher(lfhttp.NewFetcher(), logger),
			Browser: browser,
			Extractors: map[string]lessonfetch.Extractor{
				lessonfetch.EngineHeuristic:   lfslog.NewLoggingExtractor(goquery.NewExtractor(extractCfg), logger),
				lessonfetch.EngineReadability: lfslog.NewLoggingExtractor(readability.NewExtractor(extractCfg), logger),
				lessonfetch.EngineTrafilatura: lfslog.NewLoggingExtractor(trafilatura.NewExtractor(extractCfg), logger),
			},
			Detector:    lingua.NewDetector(),
			Artifacts:   fs.NewArtifactWriter(m.OutDir),
			Lessons:     lfslog.NewLoggingLessonService(lfhttp.NewLessonClient(), logger),
			History:     deps.History,
			RateLimiter: importer.NewDomainLimiter(1.0),
		}
		if cli.Import.Archive {
			imp.Converter = htmltomarkdown.NewConverter()
		}
		if cli.Import.Browser {
			// Route every fetch through Chrome when asked to.
			imp.Fetcher = browser
		}
		deps.Importer = imp
	}

	if cmd == "audio" {
		audio := &importer.AudioImporter{
			Lessons: lfslog.NewLoggingLessonService(lfhttp.NewLessonClient(), logger),
		}
		if cli.Audio.Transcribe {
			transcriber, err := openai.NewTranscriber(os.Getenv("OPENAI_API_KEY"), "")
			if err != nil {
				fmt.Fprintln(stderr, "Hint: --transcribe needs the OPENAI_API_KEY environment variable")
				return err
			}
			audio.Transcriber = transcriber
		}
		deps.Audio = audio
	}

	if cmd == "pick" {
		picker, err := rod.NewPicker(lessonfetch.DefaultExtractConfig())
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer picker.Close()
		deps.Picker = picker
	}

	return kongCtx.Run(deps)
}

func defaultConfigPath() string {
	if path := os.Getenv("LESSONFETCH_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lessonfetch.yaml"
	}
	return filepath.Join(home, ".lessonfetch", "lessonfetch.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lessonfetch.db"
	}
	dir := filepath.Join(home, ".lessonfetch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "lessonfetch.db")
}

func defaultSitesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sites"
	}
	dir := filepath.Join(home, ".lessonfetch", "sites")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
