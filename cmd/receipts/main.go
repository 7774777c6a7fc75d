package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
	"github.com/FACorreiaa/receipt-analyzer/internal/domain/receipts"
	"github.com/FACorreiaa/receipt-analyzer/internal/export"
	"github.com/FACorreiaa/receipt-analyzer/internal/textextract"
	"github.com/FACorreiaa/receipt-analyzer/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "error", err)
	}

	format := flag.String("format", "json", "output format: json, csv, or xlsx")
	out := flag.String("out", "", "output file (default stdout)")
	search := flag.String("search", "", "query processed receipts after extraction")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: receipts [flags] <file-or-dir>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	deps, err := InitDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	if cfg.Observability.MetricsEnabled {
		go startMetricsServer(cfg, logger)
	}

	if err := run(ctx, deps, flag.Args(), *format, *out, *search); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, deps *Dependencies, paths []string, format, out, search string) error {
	files, err := collectFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported files under %v", paths)
	}

	records := make([]extraction.ReceiptRecord, 0, len(files))
	for _, path := range files {
		record, err := processFile(ctx, deps, path)
		if err != nil {
			deps.Logger.Error("skipping file",
				slog.String("path", path),
				slog.Any("error", err),
			)
			continue
		}
		records = append(records, record)
	}

	if search != "" {
		if err := runSearch(ctx, deps, search); err != nil {
			return err
		}
	}

	return writeRecords(records, format, out)
}

func processFile(ctx context.Context, deps *Dependencies, path string) (extraction.ReceiptRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return extraction.ReceiptRecord{}, err
	}
	defer f.Close()

	return deps.ReceiptsService.ProcessFile(ctx, f, filepath.Base(path))
}

// collectFiles expands the argument list into supported receipt files,
// walking directories recursively.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && textextract.Supported(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func runSearch(ctx context.Context, deps *Dependencies, text string) error {
	hits, err := deps.ReceiptsService.Search(ctx, receipts.SearchQuery{Text: text})
	if err != nil {
		return err
	}
	for _, hit := range hits {
		deps.Logger.Info("search hit",
			slog.String("filename", hit.Filename),
			slog.String("vendor", hit.Vendor),
			slog.String("category", hit.Category),
			slog.Float64("score", hit.Score),
		)
	}
	return nil
}

func writeRecords(records []extraction.ReceiptRecord, format, out string) error {
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		return export.WriteJSON(w, records)
	case "csv":
		return export.WriteCSV(w, records)
	case "xlsx":
		return export.WriteXLSX(w, records)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// startMetricsServer exposes Prometheus metrics on a separate port.
func startMetricsServer(cfg *config.Config, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("localhost:%d", cfg.Observability.MetricsPort)
	logger.Info("metrics server started", "addr", addr)

	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server error", "error", err)
	}
}
