// Command binview visualizes binary files.
//
// It renders colored hexdumps with per-line Shannon entropy, compact
// entropy maps, byte-frequency histograms, and autocorrelation-based
// periodicity reports.
//
// Usage:
//
//	binview [flags] <file|->
//	binview [flags] history [file]
//
// Examples:
//
//	# Colored hexdump with entropy column
//	binview firmware.bin
//
//	# Entropy map of a large image, 64-byte blocks
//	binview -l 64 -e disk.img
//
//	# Byte histogram from stdin
//	cat firmware.bin | binview -i -
//
//	# Periodicity report as JSON
//	binview -p -format json firmware.bin
//
//	# Re-render on every change
//	binview -watch firmware.bin
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justuswilhelm/binview/internal/analysis"
	"github.com/justuswilhelm/binview/internal/config"
	"github.com/justuswilhelm/binview/internal/logging"
	"github.com/justuswilhelm/binview/internal/render"
	"github.com/justuswilhelm/binview/internal/store"
	"github.com/justuswilhelm/binview/internal/watcher"
)

var (
	// Version information (set at build time)
	version = "dev"
)

var (
	configPath  = flag.String("config", config.DefaultPath(), "path to config file")
	blockSize   = flag.Int("l", 0, "bytes per line/block (default from config, 16)")
	maxShift    = flag.Int("max-shift", 0, "autocorrelation shifts to evaluate (default from config, 100)")
	window      = flag.Int("window", 0, "byte comparisons per shift (default from config, 10)")
	topK        = flag.Int("top-k", 0, "periodicity candidates to report (default from config, 5)")
	histogram   = flag.Bool("i", false, "show byte histogram")
	entropyOnly = flag.Bool("e", false, "show only the entropy map")
	periodicity = flag.Bool("p", false, "show periodicity report")
	format      = flag.String("format", "text", "output format: text, json, yaml")
	noColor     = flag.Bool("no-color", false, "disable ANSI color output")
	record      = flag.Bool("record", false, "record this scan in the history store")
	watch       = flag.Bool("watch", false, "re-run the analysis when the file changes")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "binview - Visualize Binary Files\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file|->\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s [flags] history [file]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Use '-' to read from stdin.\n\nFlags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (at most one):\n")
	fmt.Fprintf(os.Stderr, "  (default)  colored hexdump with per-line entropy\n")
	fmt.Fprintf(os.Stderr, "  -e         entropy map, one colored glyph per block\n")
	fmt.Fprintf(os.Stderr, "  -i         byte-frequency histogram\n")
	fmt.Fprintf(os.Stderr, "  -p         autocorrelation periodicity report\n")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("binview %s\n", version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: file argument required")
		fmt.Fprintln(os.Stderr)
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	logger := logging.New(&logging.Config{
		Level:     logging.ParseLevel(cfg.Logging.Level),
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		Component: "binview",
	})

	if flag.Arg(0) == "history" {
		target := ""
		if flag.NArg() >= 2 {
			target = flag.Arg(1)
		}
		if err := cmdHistory(cfg, target); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := &app{cfg: cfg, logger: logger, out: os.Stdout}
	if err := a.run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overlays explicitly set flags onto the configuration.
// Precedence: flags > environment > file > defaults.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "l":
			cfg.Analysis.BlockSize = *blockSize
		case "max-shift":
			cfg.Analysis.MaxShift = *maxShift
		case "window":
			cfg.Analysis.Window = *window
		case "top-k":
			cfg.Analysis.TopK = *topK
		case "no-color":
			cfg.Render.Color = !*noColor
		case "record":
			cfg.History.Enabled = *record
		}
	})
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

func (a *app) run(target string) error {
	if err := validateModes(); err != nil {
		return err
	}
	if *watch && target == "-" {
		return errors.New("cannot watch stdin")
	}

	if err := a.analyzeAndRender(target); err != nil {
		return err
	}

	if *watch {
		return a.watchLoop(target)
	}
	return nil
}

func validateModes() error {
	modes := 0
	for _, m := range []bool{*histogram, *entropyOnly, *periodicity} {
		if m {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("can only select one display mode")
	}
	return nil
}

// analyzeAndRender reads the target, runs the full analysis, renders it
// in the selected mode, and records the scan when history is enabled.
func (a *app) analyzeAndRender(target string) error {
	contents, err := readContents(target)
	if err != nil {
		return err
	}
	if len(contents) == 0 {
		return fmt.Errorf("%s: %w", displayName(target), analysis.ErrEmptyInput)
	}

	report, err := analysis.Analyze(contents, a.cfg.Analysis.Params())
	if err != nil {
		return err
	}

	a.logger.Debug("analysis complete",
		"target", displayName(target),
		"size", report.Size,
		"blocks", len(report.Blocks),
		"min_entropy", report.Distribution.Min,
		"max_entropy", report.Distribution.Max,
	)

	if err := a.render(report, contents); err != nil {
		return err
	}

	if a.cfg.History.Enabled && target != "-" {
		a.recordScan(target, contents, report)
	}
	return nil
}

func (a *app) render(report *analysis.Report, contents []byte) error {
	switch *format {
	case "json":
		return render.EncodeJSON(a.out, report)
	case "yaml":
		return render.EncodeYAML(a.out, report)
	case "text":
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	r := render.New(a.out, render.Options{
		Color:      a.cfg.Render.Color,
		GroupWidth: a.cfg.Render.GroupWidth,
	})

	switch {
	case *histogram:
		r.Histogram(report)
	case *entropyOnly:
		r.EntropyMap(report)
	case *periodicity:
		// "No periodicity" is a result, not a failure: exit 0 either way.
		r.Periodicity(report, contents)
	default:
		r.Hexdump(report)
	}
	return nil
}

// recordScan stores the scan summary. History failures are logged and
// never fail the analysis itself.
func (a *app) recordScan(target string, contents []byte, report *analysis.Report) {
	s, err := store.Open(a.cfg.History.Path)
	if err != nil {
		a.logger.Warn("history store unavailable", "error", err)
		return
	}
	defer s.Close()

	scan := &store.Scan{
		Timestamp:   time.Now(),
		Path:        target,
		Size:        report.Size,
		Digest:      store.Digest(contents),
		BlockSize:   report.Params.BlockSize,
		MinEntropy:  report.Distribution.Min,
		MaxEntropy:  report.Distribution.Max,
		MeanEntropy: report.MeanEntropy(),
	}
	if report.Periodicity.Found {
		p := report.Periodicity.Period
		scan.Period = &p
	}

	if _, err := s.RecordScan(scan); err != nil {
		a.logger.Warn("failed to record scan", "error", err)
	}
}

// watchLoop re-runs the analysis whenever the target settles after a
// change, until interrupted.
func (a *app) watchLoop(target string) error {
	w, err := watcher.New(target, watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	a.logger.Info("watching for changes", "target", target)

	for {
		select {
		case <-sigCh:
			return nil
		case err := <-w.Errors():
			a.logger.Warn("watch error", "error", err)
		case e := <-w.Events():
			fmt.Fprintln(a.out)
			if err := a.analyzeAndRender(e.Path); err != nil {
				// The file may be mid-rewrite; report and keep watching.
				a.logger.Warn("analysis failed", "error", err)
			}
		}
	}
}

func readContents(target string) ([]byte, error) {
	if target == "-" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return contents, nil
	}
	contents, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func displayName(target string) string {
	if target == "-" {
		return "stdin"
	}
	return target
}
