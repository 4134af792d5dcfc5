// OttoCost is a recipe costing and inventory tracker for the terminal.
//
// Usage:
//
//	ottocost [-config ottocost.yaml] [-sample] [-verbose] [-quiet] [-metrics]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ottocost/internal/config"
	"github.com/hammamikhairi/ottocost/internal/conversation"
	"github.com/hammamikhairi/ottocost/internal/csvio"
	"github.com/hammamikhairi/ottocost/internal/display"
	"github.com/hammamikhairi/ottocost/internal/engine"
	"github.com/hammamikhairi/ottocost/internal/export"
	"github.com/hammamikhairi/ottocost/internal/ledger"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/metrics"
	"github.com/hammamikhairi/ottocost/internal/prices"
	"github.com/hammamikhairi/ottocost/internal/recipe"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "ottocost.yaml", "YAML config file (missing is fine)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	sample := flag.Bool("sample", false, "start with the built-in sample recipes and prices")
	exportTarget := flag.String("export", "", "export directory or s3://bucket/prefix")
	metricsOn := flag.Bool("metrics", false, "serve Prometheus metrics")
	metricsAddr := flag.String("metrics-addr", "", "metrics listen address")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := *configPath
	if !set["config"] {
		path = config.ConfigPath(path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment, but only when given.
	if set["log-file"] {
		cfg.Log.File = *logFile
	}
	if set["sample"] {
		cfg.Sample = *sample
	}
	if set["export"] {
		cfg.Export.Target = *exportTarget
	}
	if set["metrics"] {
		cfg.Metrics.Enabled = *metricsOn
	}
	if set["metrics-addr"] {
		cfg.Metrics.Addr = *metricsAddr
	}

	logLevel := logger.ParseLevel(cfg.Log.Level)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.Log.File != "" && cfg.Log.File != "stderr" {
		dir := filepath.Dir(cfg.Log.File)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Log.File, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libraries that use the standard log package write to
	// the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	defer log.Sync()

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	recipes := recipe.NewMemoryStore(log)
	book := prices.NewBook(log)
	records := ledger.NewMemoryLedger(log)

	var opts []engine.Option
	if cfg.Metrics.Enabled {
		rec := metrics.NewRecorder()
		opts = append(opts, engine.WithMetrics(rec))
		go func() {
			if err := rec.Serve(ctx, cfg.Metrics.Addr, cfg.Metrics.Path, log); err != nil {
				log.Error("metrics server: %v", err)
			}
		}()
	}

	sink, err := export.Open(ctx, export.Config{
		Target:          cfg.Export.Target,
		Region:          cfg.Export.Region,
		Endpoint:        cfg.Export.Endpoint,
		AccessKeyID:     cfg.Export.AccessKeyID,
		SecretAccessKey: cfg.Export.SecretAccessKey,
		PathStyle:       cfg.Export.PathStyle,
	})
	if err != nil {
		log.Warn("export disabled: %v", err)
	} else {
		opts = append(opts, engine.WithSink(sink))
	}

	eng := engine.New(recipes, book, records, log, opts...)

	if cfg.Sample {
		table, err := recipes.Seed(ctx)
		if err != nil {
			log.Error("seeding sample recipes: %v", err)
		} else {
			book.Replace(table)
		}
	}
	if err := eng.Sync(ctx); err != nil {
		log.Error("initial sync: %v", err)
	}

	ui := display.NewUI()
	app := &cliApp{
		engine:   eng,
		parser:   conversation.NewKeywordParser(log),
		notifier: conversation.NewCLINotifier(log, ui.Printf),
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	for _, line := range startupImports(ctx, eng, cfg.Import, log) {
		fmt.Println(display.BannerStyle.Render("  " + line))
	}
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

// startupImports loads the files named in the config and reports one line
// per file.
func startupImports(ctx context.Context, eng *engine.Engine, files config.ImportConfig, log *logger.Logger) []string {
	jobs := []struct {
		kind csvio.Kind
		path string
	}{
		{csvio.KindRecipes, files.Recipes},
		{csvio.KindPrices, files.Prices},
		{csvio.KindOrders, files.Orders},
		{csvio.KindSales, files.Sales},
		{csvio.KindInventory, files.Inventory},
	}

	var lines []string
	for _, job := range jobs {
		if job.path == "" {
			continue
		}
		n, err := importFile(ctx, eng, job.kind, job.path)
		if err != nil {
			log.Error("startup import %s: %v", job.path, err)
			lines = append(lines, fmt.Sprintf("could not import %s from %s: %v", job.kind, job.path, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("imported %d %s from %s", n, job.kind, job.path))
	}
	return lines
}

func importFile(ctx context.Context, eng *engine.Engine, kind csvio.Kind, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return eng.Import(ctx, kind, f)
}
