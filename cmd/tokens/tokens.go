// Package tokens is a subcommand of the root command. It prints the
// whitespace tokens of each log line with their positions, which is how the
// token positions used by the recognizers are found.
package tokens

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"logseries/internal/app"
	"logseries/internal/recognize"
	"logseries/internal/timestamp"

	"github.com/spf13/cobra"
)

const cmdName = "tokens"

var examples = []string{
	fmt.Sprintf("  Tokenize every line of output.txt:          $ %s %s", app.Name, cmdName),
	fmt.Sprintf("  Only the first 5 fps lines:                 $ %s %s --match fps --limit 5", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Print log lines as numbered tokens",
	Example:       strings.Join(examples, "\n"),
	GroupID:       "other",
	Args:          cobra.NoArgs,
	PreRunE:       validateFlags,
	RunE:          runCmd,
	SilenceErrors: true,
}

var (
	flagInput     string
	flagMatch     string
	flagLimit     int
	flagStripANSI bool
)

const (
	flagMatchName     = "match"
	flagLimitName     = "limit"
	flagStripANSIName = "strip-ansi"
)

func init() {
	Cmd.Flags().StringVar(&flagInput, app.FlagInputName, "output.txt", "captured log to read")
	Cmd.Flags().StringVar(&flagMatch, flagMatchName, "", "only print lines containing this text")
	Cmd.Flags().IntVar(&flagLimit, flagLimitName, 0, "stop after this many printed lines, 0 for no limit")
	Cmd.Flags().BoolVar(&flagStripANSI, flagStripANSIName, false, "remove color escape sequences before splitting")
	Cmd.SetUsageFunc(app.UsageFunc([]app.FlagGroup{
		{GroupName: "Options", Flags: []string{app.FlagInputName, flagMatchName, flagLimitName, flagStripANSIName}},
	}))
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagLimit < 0 {
		return app.FlagValidationError(cmd, fmt.Sprintf("--%s cannot be negative", flagLimitName))
	}
	if _, err := os.Stat(flagInput); err != nil {
		return app.FlagValidationError(cmd, fmt.Sprintf("input file does not exist: %s", flagInput))
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	f, err := os.Open(flagInput) // #nosec G304
	if err != nil {
		return err
	}
	defer f.Close()
	printed, err := Dump(cmd.OutOrStdout(), f, Options{Match: flagMatch, Limit: flagLimit, StripANSI: flagStripANSI})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	slog.Debug("tokenized lines", slog.String("input", flagInput), slog.Int("printed", printed))
	return nil
}

// Options select and shape the lines Dump prints.
type Options struct {
	Match     string
	Limit     int
	StripANSI bool
}

// Dump writes one line per input line, each token prefixed with its index,
// e.g. "0:2024-01-01T00:00:01.000000Z 1:INFO". It returns the number of lines printed.
func Dump(w io.Writer, r io.Reader, opts Options) (int, error) {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	printed := 0
	for scanner.Scan() {
		if opts.Limit > 0 && printed >= opts.Limit {
			break
		}
		line := scanner.Text()
		if opts.Match != "" && !strings.Contains(line, opts.Match) {
			continue
		}
		if opts.StripANSI {
			line = timestamp.StripANSI(line)
		}
		for i, tok := range recognize.Tokens(line) {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(i))
			bw.WriteByte(':')
			bw.WriteString(tok)
		}
		bw.WriteByte('\n')
		printed++
	}
	if err := scanner.Err(); err != nil {
		return printed, err
	}
	return printed, bw.Flush()
}
