// Package trim is a subcommand of the root command. It filters the series of
// a run to a time window and/or a row expression.
package trim

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"logseries/internal/app"
	"logseries/internal/config"
	"logseries/internal/series"

	"github.com/spf13/cobra"
)

const cmdName = "trim"

// WorkbookName is the xlsx export of the trimmed series.
const WorkbookName = "series_trimmed.xlsx"

// trim command flags
var (
	flagInput       string
	flagStartOffset float64
	flagEndOffset   float64
	flagFilter      string
	flagFormats     []string
)

const (
	flagStartOffsetName = "start-offset"
	flagEndOffsetName   = "end-offset"
	flagFilterName      = "filter"
)

var examples = []string{
	fmt.Sprintf("  Skip first 30 seconds:                      $ %s %s --input data/run1 --start-offset 30", app.Name, cmdName),
	fmt.Sprintf("  Skip first 10 and last 5 seconds:           $ %s %s --input data/run1 --start-offset 10 --end-offset 5", app.Name, cmdName),
	fmt.Sprintf("  Keep slow frames of one series:             $ %s %s --input data/run1/fps.csv --filter 'fps < 30'", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Filter existing series to a time range",
	Example:       strings.Join(examples, "\n"),
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	PreRunE:       validateFlags,
	RunE:          runCmd,
	SilenceErrors: true,
}

func init() {
	Cmd.Flags().StringVar(&flagInput, app.FlagInputName, "", "path to the run directory or a specific series CSV file to trim (required)")
	Cmd.Flags().Float64Var(&flagStartOffset, flagStartOffsetName, 0, "seconds to skip from the beginning of the data")
	Cmd.Flags().Float64Var(&flagEndOffset, flagEndOffsetName, 0, "seconds to exclude from the end of the data")
	Cmd.Flags().StringVar(&flagFilter, flagFilterName, "", "boolean expression over the columns, rows where it is false are dropped")
	Cmd.Flags().StringSliceVar(&flagFormats, app.FlagFormatName, []string{config.FormatCSV}, fmt.Sprintf("comma-separated output formats, choose from %s", strings.Join(config.Formats, ", ")))

	_ = Cmd.MarkFlagRequired(app.FlagInputName) // error only occurs if flag doesn't exist

	Cmd.SetUsageFunc(app.UsageFunc([]app.FlagGroup{
		{GroupName: "Input Options", Flags: []string{app.FlagInputName}},
		{GroupName: "Trim Options", Flags: []string{flagStartOffsetName, flagEndOffsetName, flagFilterName}},
		{GroupName: "Output Options", Flags: []string{app.FlagFormatName}},
	}))
}

// validateFlags checks that the trim command flags are valid and consistent
func validateFlags(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(flagInput); err != nil {
		if os.IsNotExist(err) {
			return app.FlagValidationError(cmd, fmt.Sprintf("input file or directory does not exist: %s", flagInput))
		}
		return app.FlagValidationError(cmd, fmt.Sprintf("failed to access input file or directory: %v", err))
	}
	if flagStartOffset == 0 && flagEndOffset == 0 && flagFilter == "" {
		return app.FlagValidationError(cmd, "at least one of --start-offset, --end-offset or --filter must be specified")
	}
	if flagStartOffset < 0 {
		return app.FlagValidationError(cmd, "--start-offset cannot be negative")
	}
	if flagEndOffset < 0 {
		return app.FlagValidationError(cmd, "--end-offset cannot be negative")
	}
	if len(flagFormats) == 0 {
		return app.FlagValidationError(cmd, "at least one output format must be specified")
	}
	for _, f := range flagFormats {
		if !slices.Contains(config.Formats, f) {
			return app.FlagValidationError(cmd, fmt.Sprintf("format options are: %s", strings.Join(config.Formats, ", ")))
		}
	}
	if flagFilter != "" {
		if _, err := series.NewRowFilter(flagFilter); err != nil {
			return app.FlagValidationError(cmd, err.Error())
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	files, err := Run(Options{
		Input:       flagInput,
		StartOffset: flagStartOffset,
		EndOffset:   flagEndOffset,
		Filter:      flagFilter,
		Formats:     flagFormats,
	})
	if err != nil {
		err = fmt.Errorf("failed to trim %s: %w", flagInput, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nTrimmed series successfully created:")
	for _, path := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path)
	}
	return nil
}

// Options describe one trim.
type Options struct {
	Input       string // run directory or one series CSV
	StartOffset float64
	EndOffset   float64
	Filter      string
	Formats     []string
}

// Run trims the series named by opts.Input and writes <series>_trimmed.csv
// next to each source. It returns the paths of the files created.
func Run(opts Options) ([]string, error) {
	info, err := os.Stat(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to access input path: %w", err)
	}
	var tables []*series.Table
	var dir string
	if info.IsDir() {
		dir = opts.Input
		tables, err = series.ReadRun(dir)
	} else {
		dir = filepath.Dir(opts.Input)
		var table *series.Table
		table, err = series.ReadFile(opts.Input)
		tables = []*series.Table{table}
	}
	if err != nil {
		return nil, err
	}
	var filter *series.RowFilter
	if opts.Filter != "" {
		if filter, err = series.NewRowFilter(opts.Filter); err != nil {
			return nil, err
		}
	}
	var files []string
	trimmed := make([]*series.Table, 0, len(tables))
	for _, table := range tables {
		out, err := table.Window(opts.StartOffset, opts.EndOffset)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", table.Name, err)
		}
		if filter != nil {
			if filter.Applies(out) {
				if out, err = out.Filter(filter.Keep(out)); err != nil {
					return nil, fmt.Errorf("%s: %w", table.Name, err)
				}
			} else {
				slog.Warn("filter does not apply to series, rows kept", slog.String("series", table.Name), slog.String("filter", opts.Filter))
			}
		}
		slog.Info("trimmed series", slog.String("series", table.Name), slog.Int("rowsBefore", len(table.Rows)), slog.Int("rowsAfter", len(out.Rows)))
		trimmed = append(trimmed, out)
		if slices.Contains(opts.Formats, config.FormatCSV) {
			path := filepath.Join(dir, table.Name+"_trimmed.csv")
			if err := out.WriteFile(path); err != nil {
				return nil, err
			}
			files = append(files, path)
		}
	}
	if slices.Contains(opts.Formats, config.FormatXlsx) {
		path := filepath.Join(dir, WorkbookName)
		if err := series.ExportWorkbook(trimmed, path); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}
