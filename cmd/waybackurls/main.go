package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/thesavant42/wayback-extractor/internal/api"
	"github.com/thesavant42/wayback-extractor/internal/config"
	"github.com/thesavant42/wayback-extractor/internal/db"
	"github.com/thesavant42/wayback-extractor/internal/export"
	"github.com/thesavant42/wayback-extractor/internal/models"
	"github.com/thesavant42/wayback-extractor/internal/stats"
	"github.com/thesavant42/wayback-extractor/internal/ui"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	// Interactive mode if no arguments at all
	if len(os.Args) == 1 {
		runInteractive()
		return
	}

	var (
		formatFlag  string
		outputFlag  string
		filterFlag  string
		fromFlag    int
		toFlag      int
		statusFlag  string
		limitFlag   int
		dbFlag      string
		verboseFlag bool
	)

	flag.StringVar(&formatFlag, "format", "csv", "Output format: csv, json or txt")
	flag.StringVar(&outputFlag, "output", "", "Output filename (default: <domain>_urls.<ext>)")
	flag.StringVar(&outputFlag, "o", "", "Output filename (shorthand)")
	flag.StringVar(&filterFlag, "filter", "", "Filter pattern matched against the original URL")
	flag.IntVar(&fromFlag, "from", 0, "Start year (e.g. 2020)")
	flag.IntVar(&toFlag, "to", 0, "End year (e.g. 2023)")
	flag.StringVar(&statusFlag, "status", "", "Filter by status codes (e.g. 200,301)")
	flag.IntVar(&limitFlag, "limit", 0, fmt.Sprintf("Max URLs (ceiling: %d)", config.DefaultFreeLimit))
	flag.StringVar(&dbFlag, "db", "", "Also store records in a SQLite database at this path")
	flag.BoolVar(&verboseFlag, "verbose", false, "Verbose (debug) logging")
	flag.BoolVar(&verboseFlag, "v", false, "Verbose logging (shorthand)")
	flag.Parse()

	if flag.NArg() < 1 {
		ui.PrintError("domain argument is required")
		flag.Usage()
		os.Exit(exitUsage)
	}
	domain := flag.Arg(0)

	if !export.IsValidFormat(formatFlag) {
		ui.PrintError(fmt.Sprintf("unknown format %q (choose csv, json or txt)", formatFlag))
		os.Exit(exitUsage)
	}

	logger := newLogger(verboseFlag)

	opts := models.QueryOptions{
		Filter:      filterFlag,
		FromYear:    fromFlag,
		ToYear:      toFlag,
		StatusCodes: statusFlag,
		Limit:       limitFlag,
	}

	os.Exit(run(logger, domain, formatFlag, outputFlag, dbFlag, opts, false))
}

// run executes one extraction end-to-end and returns the process exit code
func run(logger *log.Logger, rawDomain, format, output, dbPath string, opts models.QueryOptions, interactive bool) int {
	cfg := config.FromEnv()

	domain, err := api.NormalizeDomain(rawDomain)
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}

	client := api.NewCDXClient(cfg, logger)
	limit := client.EffectiveLimit(opts.Limit)

	if !interactive {
		ui.PrintBanner()
	}
	ui.PrintExtractStart(domain, opts, limit)

	var (
		records  []models.CDXRecord
		fetchErr error
		elapsed  time.Duration
	)
	fetch := func() {
		start := time.Now()
		records, fetchErr = client.Fetch(domain, opts)
		elapsed = time.Since(start)
	}

	if interactive {
		if err := ui.RunWithSpinner("Fetching archived URLs...", fetch); err != nil {
			ui.PrintError(err.Error())
			return exitFailure
		}
	} else {
		fetch()
	}

	if fetchErr != nil {
		if errors.Is(fetchErr, api.ErrEmptyResult) {
			ui.PrintWarning("No URLs found matching criteria")
		} else {
			ui.PrintError(fetchErr.Error())
		}
		return exitFailure
	}

	ui.PrintSuccess(fmt.Sprintf("Extraction complete in %.1fs", elapsed.Seconds()))
	fmt.Println()

	result := &models.ExtractionResult{
		Domain:      domain,
		Records:     records,
		Stats:       stats.Compute(records),
		Elapsed:     elapsed,
		LimitUsed:   limit,
		ExtractedAt: time.Now(),
	}
	result.LimitHit = result.LimitReached(cfg.FreeLimit)

	ui.PrintSummary(result)

	filename, err := export.Write(result, format, output)
	if err != nil {
		ui.PrintError(err.Error())
		if errors.Is(err, export.ErrUnknownFormat) {
			return exitUsage
		}
		return exitFailure
	}
	ui.PrintSuccess(fmt.Sprintf("Saved %s export to: %s", format, filename))

	if dbPath != "" {
		if err := storeRecords(logger, dbPath, domain, records); err != nil {
			ui.PrintError(err.Error())
			return exitFailure
		}
	}

	return exitOK
}

// storeRecords persists the fetched records into the optional SQLite sink
func storeRecords(logger *log.Logger, dbPath, domain string, records []models.CDXRecord) error {
	database, err := db.New(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	inserted, err := database.InsertRecords(domain, records)
	if err != nil {
		return err
	}

	total, err := database.RecordCount(domain)
	if err != nil {
		return err
	}

	logger.Debug("SQLite store updated", "path", dbPath, "inserted", inserted, "total", total)
	ui.PrintSuccess(fmt.Sprintf("Stored %d new records in %s (%d total for %s)", inserted, dbPath, total, domain))
	return nil
}

// runInteractive is the no-argument prompt flow
func runInteractive() {
	logger := newLogger(false)

	ui.PrintBanner()

	domain, err := ui.PromptForDomain()
	if err != nil {
		// A deliberate Ctrl-C/Esc abort exits straight away; any other
		// prompt failure keeps the keypress-before-exit behavior
		if !ui.IsAborted(err) {
			ui.PrintError(err.Error())
			ui.WaitForExit()
		}
		os.Exit(exitUsage)
	}

	// Blank or cancelled choice falls back to csv
	format, err := ui.PromptForFormat()
	if err != nil {
		format = "csv"
	}

	code := run(logger, domain, format, "", "", models.QueryOptions{}, true)

	ui.WaitForExit()
	os.Exit(code)
}

func newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
