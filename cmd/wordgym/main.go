package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wordgym/internal/catalog"
	"wordgym/internal/config"
	"wordgym/internal/game"
	"wordgym/internal/models"
	"wordgym/internal/progress"
	"wordgym/internal/service"
	"wordgym/internal/storage"
)

var errUsage = errors.New("invalid usage")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	logger := newLogger(cfg)

	if err := run(cfg, logger, os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		} else {
			logger.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		}
		os.Exit(1)
	}
}

// run executes one subcommand. Storage is closed before it returns.
func run(cfg *config.Config, logger zerolog.Logger, command string, args []string, in io.Reader, out io.Writer) error {
	// Define subcommands
	playCmd := flag.NewFlagSet("play", flag.ContinueOnError)
	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	resetCmd := flag.NewFlagSet("reset", flag.ContinueOnError)

	playMode := playCmd.String("mode", string(models.ModePickSpelling), "Game mode: listen-spell, pick-spelling, plural-forms or grammar-forms")
	exportOutput := exportCmd.String("output", "", "Output file path (default: progress_YYYYMMDD_HHMMSS.json)")
	importInput := importCmd.String("input", "", "Input file path (required)")
	resetYes := resetCmd.Bool("yes", false, "Skip the confirmation prompt")

	var flags *flag.FlagSet
	switch command {
	case "play":
		flags = playCmd
	case "export":
		flags = exportCmd
	case "import":
		flags = importCmd
	case "reset":
		flags = resetCmd
	case "show":
	default:
		return errUsage
	}
	if flags != nil {
		if err := flags.Parse(args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
	}
	if command == "import" && *importInput == "" {
		importCmd.PrintDefaults()
		return fmt.Errorf("%w: -input flag is required", errUsage)
	}

	kv, closer, err := storage.Open(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Str("type", cfg.StorageType).Msg("storage could not be opened, progress will not be saved")
		kv = storage.UnavailableStore{}
	}
	if closer != nil {
		defer closer.Close()
	}

	store := progress.NewStore(kv, cfg.ProgressKey, progress.WithLogger(logger))
	defer func() {
		if !store.StorageAvailable() {
			logger.Warn().Msg("progress was not saved")
		}
	}()

	switch command {
	case "play":
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		engine := game.NewEngine(cat, game.WithLogger(logger))
		svc := service.NewGameService(engine, store, logger)
		return play(svc, models.GameMode(*playMode), in, out)
	case "show":
		show(store, out)
		return nil
	case "export":
		return handleExport(store, logger, *exportOutput)
	case "import":
		return handleImport(store, logger, *importInput)
	default:
		return handleReset(store, logger, in, out, *resetYes)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}
	return logger
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

func handleExport(store *progress.Store, logger zerolog.Logger, outputPath string) error {
	if outputPath == "" {
		outputPath = fmt.Sprintf("progress_%s.json", time.Now().Format("20060102_150405"))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := store.Export(f); err != nil {
		return err
	}
	logger.Info().Str("path", outputPath).Msg("export complete")
	return nil
}

func handleImport(store *progress.Store, logger zerolog.Logger, inputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	if err := store.Import(f); err != nil {
		return err
	}
	logger.Info().Str("path", inputPath).Msg("import complete")
	return nil
}

func handleReset(store *progress.Store, logger zerolog.Logger, in io.Reader, out io.Writer, confirmed bool) error {
	if !confirmed {
		fmt.Fprint(out, "WARNING: This will delete all progress and badges. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Fscanln(in, &confirmation)
		if strings.TrimSpace(confirmation) != "yes" {
			logger.Info().Msg("reset cancelled")
			return nil
		}
	}
	store.Clear()
	logger.Info().Msg("progress reset")
	return nil
}

func printUsage() {
	fmt.Println("Wordgym vocabulary and grammar drills")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wordgym play [options]      Play one round in the terminal")
	fmt.Println("  wordgym show                Show progress and badges")
	fmt.Println("  wordgym export [options]    Export progress to a JSON file")
	fmt.Println("  wordgym import [options]    Replace progress from a JSON file")
	fmt.Println("  wordgym reset [options]     Delete all progress")
	fmt.Println()
	fmt.Println("Play Options:")
	fmt.Println("  -mode <mode>      listen-spell, pick-spelling, plural-forms or grammar-forms")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: progress_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println()
	fmt.Println("Reset Options:")
	fmt.Println("  -yes              Skip the confirmation prompt")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  STORAGE_TYPE     memory, file, sqlite, postgres or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./wordgym.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  DATA_DIR         Directory for the file store (default: ./data)")
	fmt.Println("  PROGRESS_KEY     Storage key of the progress record (default: spellbee_progress)")
	fmt.Println("  CATALOG_PATH     JSON catalog replacing the built-in word lists")
	fmt.Println("  LOG_LEVEL        debug, info, warn or error (default: info)")
	fmt.Println("  LOG_FORMAT       console or json (default: console)")
}
