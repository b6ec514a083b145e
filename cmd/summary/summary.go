// Package summary is a subcommand of the root command. It computes summary
// statistics for the series of a run directory.
package summary

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"logseries/internal/app"
	"logseries/internal/series"
	"logseries/internal/summary"
	"logseries/internal/util"

	"github.com/spf13/cobra"
)

const cmdName = "summary"

// FileName is the summary CSV written into the run directory.
const FileName = "summary.csv"

var examples = []string{
	fmt.Sprintf("  Summarize a run:          $ %s %s data/run1", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName + " <run-dir>",
	Short:         "Summarize the series of a run",
	Example:       strings.Join(examples, "\n"),
	GroupID:       "primary",
	Args:          cobra.ExactArgs(1),
	PreRunE:       validateArgs,
	RunE:          runCmd,
	SilenceErrors: true,
}

func validateArgs(cmd *cobra.Command, args []string) error {
	exists, err := util.DirectoryExists(args[0])
	if err != nil || !exists {
		return app.FlagValidationError(cmd, fmt.Sprintf("run directory does not exist: %s", args[0]))
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	path, err := Run(args[0], cmd.OutOrStdout())
	if err != nil {
		err = fmt.Errorf("failed to summarize %s: %w", args[0], err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nSummary written to %s\n", path)
	return nil
}

// Run summarizes every series of runDir, writes FileName into runDir and
// prints the table to w. It returns the path of the summary file.
func Run(runDir string, w io.Writer) (string, error) {
	tables, err := series.ReadRun(runDir)
	if err != nil {
		return "", err
	}
	var rows []summary.Row
	for _, table := range tables {
		tableRows, err := summary.Summarize(table, summary.GroupColumn)
		if err != nil {
			return "", fmt.Errorf("%s: %w", table.Name, err)
		}
		slog.Debug("summarized series", slog.String("series", table.Name), slog.Int("rows", len(table.Rows)))
		rows = append(rows, tableRows...)
	}
	path := filepath.Join(runDir, FileName)
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", err
	}
	if err := summary.WriteCSV(f, rows); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, summary.Print(w, rows)
}
