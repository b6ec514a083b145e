// Package parse is a subcommand of the root command. It converts a captured
// log into the series of one run directory.
package parse

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"logseries/internal/app"
	"logseries/internal/config"
	"logseries/internal/pipeline"
	"logseries/internal/progress"
	"logseries/internal/recognize"
	"logseries/internal/series"
	"logseries/internal/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const cmdName = "parse"

// WorkbookName is the file name of the xlsx export inside the run directory.
const WorkbookName = "series.xlsx"

// MetricsFileName is the file name of the pipeline counters inside the run directory.
const MetricsFileName = "parse.prom"

var examples = []string{
	fmt.Sprintf("  Parse output.txt into data/run1:          $ %s %s run1", app.Name, cmdName),
	fmt.Sprintf("  Parse a specific log:                     $ %s %s run1 --input logs/sim.txt", app.Name, cmdName),
	fmt.Sprintf("  Also write an Excel workbook:             $ %s %s run1 --format csv,xlsx", app.Name, cmdName),
	fmt.Sprintf("  Use a run config and write counters:      $ %s %s run1 --config run.yaml --metrics-file", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName + " <run-name>",
	Short:         "Convert a captured log into time-series CSV files",
	Long:          "",
	Example:       strings.Join(examples, "\n"),
	GroupID:       "primary",
	Args:          cobra.ExactArgs(1),
	PreRunE:       validateFlags,
	RunE:          runCmd,
	SilenceErrors: true,
}

var (
	flagInput       string
	flagConfig      string
	flagFormats     []string
	flagMetricsFile bool
)

const flagMetricsFileName = "metrics-file"

var flagGroups = []app.FlagGroup{
	{GroupName: "Input Options", Flags: []string{app.FlagInputName, app.FlagConfigName}},
	{GroupName: "Output Options", Flags: []string{app.FlagFormatName, flagMetricsFileName}},
}

func init() {
	Cmd.Flags().StringVar(&flagInput, app.FlagInputName, "", "captured log to read (default from config: output.txt)")
	Cmd.Flags().StringVar(&flagConfig, app.FlagConfigName, "", "YAML run configuration")
	Cmd.Flags().StringSliceVar(&flagFormats, app.FlagFormatName, nil, fmt.Sprintf("comma-separated output formats, choose from %s (csv is always written)", strings.Join(config.Formats, ", ")))
	Cmd.Flags().BoolVar(&flagMetricsFile, flagMetricsFileName, false, "write pipeline counters in prometheus text format to "+MetricsFileName)
	Cmd.SetUsageFunc(app.UsageFunc(flagGroups))
}

func validateFlags(cmd *cobra.Command, args []string) error {
	for _, f := range flagFormats {
		if !slices.Contains(config.Formats, f) {
			return app.FlagValidationError(cmd, fmt.Sprintf("format options are: %s", strings.Join(config.Formats, ", ")))
		}
	}
	if flagConfig != "" {
		exists, err := util.FileExists(flagConfig)
		if err != nil || !exists {
			return app.FlagValidationError(cmd, fmt.Sprintf("config file does not exist: %s", flagConfig))
		}
	}
	return nil
}

// Options are the resolved inputs of one parse run.
type Options struct {
	RunName     string
	Input       string
	OutputRoot  string
	StripPrefix string
	Markers     []string
	Formats     []string
	MetricsFile bool
}

// Result describes what a parse run produced.
type Result struct {
	RunDir     string
	Files      []string
	Rows       map[string]int
	Stats      pipeline.Stats
	Flamegraph string // empty if the run has no flamegraph
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := app.FromCommand(cmd)
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return app.FlagValidationError(cmd, err.Error())
	}
	opts := Options{
		RunName:     args[0],
		Input:       cfg.Input,
		OutputRoot:  cfg.OutputRoot,
		StripPrefix: cfg.Prefix(),
		Markers:     cfg.BaselineMarkers,
		Formats:     cfg.Formats,
		MetricsFile: flagMetricsFile,
	}
	if cmd.Flags().Changed(app.FlagInputName) {
		opts.Input = flagInput
	}
	if cmd.Flags().Changed(app.FlagFormatName) {
		opts.Formats = flagFormats
	}
	if appContext.OutputRoot != "" {
		opts.OutputRoot = appContext.OutputRoot
	}
	reporter := progress.NewReporter(os.Stderr, "parsing "+filepath.Base(opts.Input))
	result, err := Run(opts, reporter)
	if err != nil {
		err = fmt.Errorf("failed to parse %s: %w", opts.Input, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	return Report(cmd.OutOrStdout(), result)
}

// Run converts opts.Input into the series files of the run directory. A nil
// reporter disables progress output.
func Run(opts Options, reporter *progress.Reporter) (Result, error) {
	runName, err := util.SanitizeRunName(opts.RunName, opts.StripPrefix)
	if err != nil {
		return Result{}, err
	}
	runDir, err := util.PrepareRunDir(opts.OutputRoot, runName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create run directory: %w", err)
	}
	result := Result{RunDir: runDir, Rows: make(map[string]int)}
	input, err := os.Open(opts.Input) // #nosec G304
	if err != nil {
		return result, err
	}
	defer input.Close()

	recognizers := recognize.Defaults()
	writers := make([]*series.Writer, 0, len(recognizers))
	stages := make([]pipeline.Stage, 0, len(recognizers))
	for _, r := range recognizers {
		w, err := series.Create(filepath.Join(runDir, r.Name()+".csv"), r.Header())
		if err != nil {
			for _, created := range writers {
				_ = created.Close()
			}
			return result, err
		}
		writers = append(writers, w)
		stages = append(stages, pipeline.Stage{Recognizer: r, Sink: w})
	}

	registry := prometheus.NewRegistry()
	metrics, err := pipeline.NewMetrics(registry)
	if err != nil {
		return result, err
	}
	logger := slog.Default().With(slog.String("run", runName))
	p := pipeline.New(stages,
		pipeline.WithMarkers(opts.Markers...),
		pipeline.WithMetrics(metrics),
		pipeline.WithLogger(logger),
	)
	logger.Info("parsing log", slog.String("input", opts.Input), slog.String("runDir", runDir))

	var source io.Reader = input
	if reporter != nil {
		var size int64
		if info, err := input.Stat(); err == nil {
			size = info.Size()
		}
		source = progress.NewReader(input, size, reporter)
	}
	stats, runErr := p.Run(source)
	closeErr := p.Close()
	result.Stats = stats
	if reporter != nil {
		reporter.Done(fmt.Sprintf("%d lines", stats.Lines))
	}
	if runErr != nil {
		return result, runErr
	}
	if closeErr != nil {
		return result, closeErr
	}
	for _, w := range writers {
		result.Files = append(result.Files, w.Path())
		result.Rows[filepath.Base(w.Path())] = w.Rows()
	}
	logger.Info("parsed log", slog.Int("lines", stats.Lines), slog.Int("discarded", stats.Discarded))

	if slices.Contains(opts.Formats, config.FormatXlsx) {
		path, err := exportWorkbook(writers, runDir)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
	}
	if opts.MetricsFile {
		path := filepath.Join(runDir, MetricsFileName)
		if err := pipeline.WriteTextfile(path, registry); err != nil {
			return result, fmt.Errorf("failed to write metrics file: %w", err)
		}
		result.Files = append(result.Files, path)
	}
	flamegraph := util.FlamegraphPath(runDir, runName)
	if exists, _ := util.FileExists(flamegraph); exists {
		result.Flamegraph = flamegraph
	}
	return result, nil
}

func exportWorkbook(writers []*series.Writer, runDir string) (string, error) {
	tables := make([]*series.Table, 0, len(writers))
	for _, w := range writers {
		table, err := series.ReadFile(w.Path())
		if err != nil {
			return "", err
		}
		tables = append(tables, table)
	}
	path := filepath.Join(runDir, WorkbookName)
	if err := series.ExportWorkbook(tables, path); err != nil {
		return "", err
	}
	return path, nil
}

// Report prints the files of a parse run with their row counts.
func Report(w io.Writer, result Result) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "Series written to %s:\n", result.RunDir); err != nil {
		return err
	}
	for _, file := range result.Files {
		name := filepath.Base(file)
		if rows, ok := result.Rows[name]; ok {
			p.Fprintf(w, "  %-24s %d rows\n", name, rows)
		} else {
			p.Fprintf(w, "  %s\n", name)
		}
	}
	p.Fprintf(w, "%d lines read, %d discarded before the baseline\n", result.Stats.Lines, result.Stats.Discarded)
	for _, name := range sortedKeys(result.Stats.Skipped) {
		if n := result.Stats.Skipped[name]; n > 0 {
			p.Fprintf(w, "%d malformed %s lines skipped\n", n, name)
		}
	}
	if result.Flamegraph != "" {
		p.Fprintf(w, "Flamegraph: %s\n", result.Flamegraph)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
