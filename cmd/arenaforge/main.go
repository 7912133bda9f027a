// ArenaForge — Animal-AI arena configuration toolkit
//
// Loads arena YAML files, checks item footprints for overlaps with a
// separating-axis test, and exports diagrams and reports.
//
// Build:
//   go build -o arenaforge ./cmd/arenaforge
//
// Usage:
//   arenaforge -config arena.yaml -check
//   arenaforge -config arena.yaml -pdf arenas.pdf -report arenas.xlsx
//   arenaforge -config arena.yaml -import-csv items.csv -dump merged.yaml

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tcoles/arenaforge/internal/config"
	"github.com/tcoles/arenaforge/internal/engine"
	"github.com/tcoles/arenaforge/internal/export"
	"github.com/tcoles/arenaforge/internal/importer"
	"github.com/tcoles/arenaforge/internal/model"
	"github.com/tcoles/arenaforge/internal/project"
)

func main() {
	var (
		configPath = flag.String("config", "", "arena configuration YAML file (required)")
		configDir  = flag.String("config-dir", config.DefaultConfigDir(), "application config directory")
		check      = flag.Bool("check", false, "report overlapping item pairs")
		pdfPath    = flag.String("pdf", "", "write a top-down arena diagram PDF to this path")
		reportPath = flag.String("report", "", "write an XLSX item/overlap report to this path")
		dumpPath   = flag.String("dump", "", "write the configuration back to YAML at this path")
		csvPath    = flag.String("import-csv", "", "append items from a CSV file to the first arena")
		xlsxPath   = flag.String("import-xlsx", "", "append items from an XLSX file to the first arena")
		dxfPath    = flag.String("import-dxf", "", "append wall footprints traced from a DXF floor plan to the first arena")
	)
	flag.Parse()

	cfg, err := config.Load(*configDir)
	logger := newLogger(cfg.LogLevel)
	if err != nil {
		logger.Warn().Err(err).Msg("falling back to default settings")
	}

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	arenaConfig, err := project.LoadFile(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("cannot load arena configuration")
	}
	logger.Info().
		Str("path", *configPath).
		Int("arenas", len(arenaConfig.Arenas)).
		Msg("loaded arena configuration")

	exitCode := 0

	for _, imp := range []struct {
		path string
		kind string
		run  func(string) importer.ImportResult
	}{
		{*csvPath, "csv", importer.ImportCSV},
		{*xlsxPath, "xlsx", importer.ImportExcel},
		{*dxfPath, "dxf", importer.ImportDXF},
	} {
		if imp.path == "" {
			continue
		}
		if err := importInto(logger, arenaConfig, imp.path, imp.kind, imp.run); err != nil {
			logger.Error().Err(err).Str("path", imp.path).Msg("import failed")
			exitCode = 1
		}
	}

	if *check {
		if reportOverlaps(logger, arenaConfig) {
			exitCode = 1
		}
	}

	if *pdfPath != "" {
		path := outputPath(cfg.OutputDir, *pdfPath)
		if err := export.ExportPDF(path, arenaConfig, cfg.ArenaWidth, cfg.ArenaDepth); err != nil {
			logger.Error().Err(err).Msg("PDF export failed")
			exitCode = 1
		} else {
			logger.Info().Str("path", path).Msg("wrote arena diagram")
		}
	}

	if *reportPath != "" {
		path := outputPath(cfg.OutputDir, *reportPath)
		if err := export.ExportReport(path, arenaConfig); err != nil {
			logger.Error().Err(err).Msg("report export failed")
			exitCode = 1
		} else {
			logger.Info().Str("path", path).Msg("wrote overlap report")
		}
	}

	if *dumpPath != "" {
		path := outputPath(cfg.OutputDir, *dumpPath)
		if err := project.DumpFile(path, arenaConfig); err != nil {
			logger.Error().Err(err).Msg("dump failed")
			exitCode = 1
		} else {
			logger.Info().Str("path", path).Msg("wrote arena configuration")
		}
	}

	os.Exit(exitCode)
}

// outputPath resolves a relative output file against the configured output
// directory; absolute paths are kept as given.
func outputPath(outputDir, path string) string {
	if outputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(outputDir, path)
}

// newLogger builds a console logger at the configured level.
func newLogger(level string) zerolog.Logger {
	var logLevel zerolog.Level
	switch strings.ToUpper(level) {
	case "TRACE":
		logLevel = zerolog.TraceLevel
	case "DEBUG":
		logLevel = zerolog.DebugLevel
	case "WARN":
		logLevel = zerolog.WarnLevel
	case "ERROR":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(logLevel).With().Timestamp().Logger()
}

// importInto appends imported items to the first arena, logging any
// per-row warnings and errors the importer collected.
func importInto(logger zerolog.Logger, arenaConfig *model.ArenaConfig, path, kind string, run func(string) importer.ImportResult) error {
	if len(arenaConfig.Arenas) == 0 {
		return fmt.Errorf("no arena to import into")
	}

	result := run(path)
	for _, w := range result.Warnings {
		logger.Warn().Str("format", kind).Msg(w)
	}
	for _, e := range result.Errors {
		logger.Error().Str("format", kind).Msg(e)
	}
	if len(result.Errors) > 0 && len(result.Items) == 0 {
		return fmt.Errorf("no items imported from %s", path)
	}

	arena := arenaConfig.Arenas[0]
	for _, item := range result.Items {
		item.ID = uuid.New().String()[:8]
		if arena.FindItem(item.Name) != nil {
			item.Name = fmt.Sprintf("%s %s", item.Name, item.ID)
		}
		arena.Items = append(arena.Items, item)
	}
	logger.Info().Str("path", path).Int("items", len(result.Items)).Msg("imported items")
	return nil
}

// reportOverlaps logs every overlapping pair across all arenas and returns
// true if any were found.
func reportOverlaps(logger zerolog.Logger, arenaConfig *model.ArenaConfig) bool {
	found := false
	for i, arena := range arenaConfig.Arenas {
		overlaps := engine.FindOverlaps(arena.Items)
		if len(overlaps) == 0 {
			logger.Info().Int("arena", i).Msg("no overlaps")
			continue
		}
		found = true
		for _, warning := range engine.FormatOverlapWarnings(overlaps) {
			logger.Warn().Int("arena", i).Msg(warning)
		}
	}
	return found
}
