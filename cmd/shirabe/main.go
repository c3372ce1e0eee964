// Package main is the Shirabe CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/hyperjump/shirabe/internal/charts"
	"github.com/hyperjump/shirabe/internal/cli"
	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/dataset"
	"github.com/hyperjump/shirabe/internal/export"
	"github.com/hyperjump/shirabe/internal/filter"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/server"
	"github.com/hyperjump/shirabe/internal/stats"
	"github.com/hyperjump/shirabe/internal/watcher"
	"github.com/hyperjump/shirabe/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shirabe/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); when neither
// exists the built-in defaults are used, so the tool runs with zero
// configuration. An explicitly given path must exist.
func loadConfig(path string) (*config.Config, string, error) {
	if path != defaultConfigPath {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	if cwd, cwdErr := os.Getwd(); cwdErr == nil {
		fallback := filepath.Join(cwd, "config.yaml")
		if _, statErr := os.Stat(fallback); statErr == nil {
			cfg, loadErr := config.Load(fallback)
			if loadErr != nil {
				return nil, "", loadErr
			}
			return cfg, fallback, nil
		}
	}
	if _, err := os.Stat(path); err == nil {
		cfg, loadErr := config.Load(path)
		if loadErr != nil {
			return nil, "", loadErr
		}
		return cfg, path, nil
	}
	return config.Default(), "", nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "summary":
		runSummary()
	case "export":
		runExport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("shirabe version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (data discovery, reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	loader := dataset.NewLoader(cfg.Data)
	store := dataset.NewStore(loader, dataset.WithLogger(logger))
	// First load up front so startup logs say where the data came from.
	res := store.Get()
	if res.IsFallback() {
		logger.Warn("running on demo data", zap.String("reason", res.Reason))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Data.Watch && res.Path != "" {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(res.Path, store.Invalidate, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Warn("failed to start data file watcher", zap.Error(err))
		} else {
			defer watchSvc.Stop()
		}
	}

	srv := server.NewServer(store, charts.NewBuilder(cfg.Charts), cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// filterFlags registers the shared from/to/journal flags on fs.
func filterFlags(fs *flag.FlagSet) (from, to *int, journal *string) {
	from = fs.Int("from", 0, "start of the publication year range (0 = dataset minimum)")
	to = fs.Int("to", 0, "end of the publication year range (0 = dataset maximum)")
	journal = fs.String("journal", models.AllJournals, "journal to filter by")
	return from, to, journal
}

// resolveOutputFormat maps the --output flag value to a cli format.
func resolveOutputFormat(s string) (cli.OutputFormat, error) {
	switch s {
	case "text":
		return cli.OutputText, nil
	case "json":
		return cli.OutputJSON, nil
	default:
		return cli.OutputText, fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// filterQuery builds the query string for the HTTP API from filter flags.
func filterQuery(from, to int, journal string) string {
	q := url.Values{}
	if from != 0 {
		q.Set("from", strconv.Itoa(from))
	}
	if to != 0 {
		q.Set("to", strconv.Itoa(to))
	}
	if journal != "" {
		q.Set("journal", journal)
	}
	return q.Encode()
}

// directView loads the dataset directly (no running server) and applies the
// filter flags, returning the load result, the clamped filter, and the subset.
func directView(configPath string, from, to int, journal string) (*models.LoadResult, models.Filter, *models.Dataset, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, models.Filter{}, nil, err
	}
	store := dataset.NewStore(dataset.NewLoader(cfg.Data))
	res := store.Get()
	bounds := filter.Bounds(res.Dataset)
	f := filter.Clamp(models.Filter{FromYear: from, ToYear: to, Journal: journal}, bounds)
	return res, f, filter.Apply(res.Dataset, f), nil
}

func runSummary() {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = load the data file directly)")
	from, to, journal := filterFlags(fs)
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := resolveOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var report *cli.SummaryReport
	if *serverURL != "" {
		report, err = summaryViaHTTP(*serverURL, *from, *to, *journal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Summary failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		res, f, sub, err := directView(*configPath, *from, *to, *journal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		report = &cli.SummaryReport{
			Filter:  f,
			Bounds:  filter.Bounds(res.Dataset),
			Summary: stats.Summarize(sub),
			Source:  res.Source,
			Path:    res.Path,
		}
	}
	if err := cli.WriteSummary(os.Stdout, report, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func summaryViaHTTP(serverURL string, from, to int, journal string) (*cli.SummaryReport, error) {
	var out struct {
		Filter  models.Filter  `json:"filter"`
		Summary models.Summary `json:"summary"`
	}
	if err := getJSON(serverURL+"/api/v1/summary?"+filterQuery(from, to, journal), &out); err != nil {
		return nil, err
	}
	var status struct {
		Source  models.Source `json:"source"`
		Path    string        `json:"path"`
		MinYear int           `json:"min_year"`
		MaxYear int           `json:"max_year"`
	}
	if err := getJSON(serverURL+"/api/v1/status", &status); err != nil {
		return nil, err
	}
	return &cli.SummaryReport{
		Filter:  out.Filter,
		Bounds:  models.YearBounds{Min: status.MinYear, Max: status.MaxYear},
		Summary: out.Summary,
		Source:  status.Source,
		Path:    status.Path,
	}, nil
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	from, to, journal := filterFlags(fs)
	outputPath := fs.String("output", "", "output file (default: stdout)")
	_ = fs.Parse(os.Args[2:])

	res, _, sub, err := directView(*configPath, *from, *to, *journal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if res.IsFallback() {
		fmt.Fprintf(os.Stderr, "Warning: exporting demo data (%s)\n", res.Reason)
	}

	out := io.Writer(os.Stdout)
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := export.Write(out, sub); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if *outputPath != "" {
		fmt.Printf("Exported %d row(s) to %s\n", sub.Len(), *outputPath)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the data file directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status map[string]interface{}
	if *serverURL != "" {
		if err := getJSON(*serverURL+"/api/v1/status", &status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		res, _, _, err := directView(*configPath, 0, 0, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		bounds := filter.Bounds(res.Dataset)
		status = map[string]interface{}{
			"snapshot_id": res.SnapshotID,
			"source":      res.Source,
			"rows":        res.Dataset.Len(),
			"min_year":    bounds.Min,
			"max_year":    bounds.Max,
		}
		if res.Path != "" {
			status["path"] = res.Path
		}
		if res.Reason != "" {
			status["reason"] = res.Reason
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		for _, key := range []string{"rows", "source", "path", "reason", "min_year", "max_year", "snapshot_id"} {
			if v, ok := status[key]; ok {
				fmt.Printf("%-13s %v\n", key+":", v)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func getJSON(rawURL string, out interface{}) error {
	resp, err := http.Get(rawURL)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`shirabe - CORD-19 research paper metadata explorer

Usage:
  shirabe server [flags]     Start the HTTP dashboard and API
  shirabe summary [flags]    Print summary metrics for a filter
  shirabe export [flags]     Export the filtered subset as CSV
  shirabe status [flags]     Show dataset/snapshot status
  shirabe version            Show version
  shirabe help               Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/shirabe/config.yaml)
  --debug            Enable debug logging (data discovery, reloads, etc.)

Summary Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL (empty = load the data file directly)
  --from int         Start of the year range (0 = dataset minimum)
  --to int           End of the year range (0 = dataset maximum)
  --journal string   Journal to filter by (default: "All Journals")
  --output string    Output format: text or json (default: text)

Export Flags:
  --config string    Config file path
  --from/--to/--journal   Filter (as above)
  --output string    Output file (default: stdout)

Status Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL (default: http://localhost:8080). Use --server "" for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  shirabe server
  shirabe summary --from 2020 --to 2021 --journal "Medical Journal"
  shirabe summary --server http://localhost:8080 --output json
  shirabe export --journal "Health Review" --output filtered_cord19_data.csv
  shirabe status --output json`)
}
