// Package app defines application-wide types, constants, and context
// that are shared across multiple commands.
package app

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Name is the name of the application executable.
var Name = filepath.Base(os.Args[0])

// Context represents the application context that can be accessed from all commands.
type Context struct {
	Timestamp   string // Timestamp is the timestamp when the application was started.
	OutputRoot  string // OutputRoot overrides the directory run directories are created in, empty if not set.
	LogFilePath string // LogFilePath is the path to the log file.
	Version     string // Version is the version of the application.
	Debug       bool   // Debug is true if the application is running in debug mode.
}

// FromCommand returns the application context stored on the root command.
func FromCommand(cmd *cobra.Command) Context {
	root := cmd.Root()
	if root.Context() == nil {
		return Context{}
	}
	if appContext, ok := root.Context().Value(Context{}).(Context); ok {
		return appContext
	}
	return Context{}
}

// Flag names for flags defined in the root command, but sometimes used in other commands.
const (
	FlagDebugName     = "debug"
	FlagSyslogName    = "syslog"
	FlagLogStdOutName = "log-stdout"
	FlagOutputDirName = "output"
)

// Flag names shared by the commands that read a captured log or write series.
const (
	FlagInputName  = "input"
	FlagFormatName = "format"
	FlagConfigName = "config"
)

// FlagGroup represents a group of related flags with a group name.
type FlagGroup struct {
	GroupName string
	Flags     []string
}

// UsageFunc prints a command's flags organized into groups.
func UsageFunc(groups []FlagGroup) func(cmd *cobra.Command) error {
	return func(cmd *cobra.Command) error {
		cmd.Printf("Usage: %s\n\n", cmd.UseLine())
		if cmd.HasExample() {
			cmd.Printf("Examples:\n%s\n\n", cmd.Example)
		}
		cmd.Println("Flags:")
		for _, group := range groups {
			cmd.Printf("  %s:\n", group.GroupName)
			for _, name := range group.Flags {
				flag := cmd.Flags().Lookup(name)
				if flag == nil {
					continue
				}
				printFlag(cmd, flag)
			}
		}
		cmd.Println("\nGlobal Flags:")
		cmd.Root().PersistentFlags().VisitAll(func(flag *pflag.Flag) {
			printFlag(cmd, flag)
		})
		return nil
	}
}

func printFlag(cmd *cobra.Command, flag *pflag.Flag) {
	flagDefault := ""
	if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "[]" && flag.DefValue != "0" {
		flagDefault = fmt.Sprintf(" (default: %s)", flag.DefValue)
	}
	cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Usage, flagDefault)
}

// FlagValidationError is used to report an error with a flag
func FlagValidationError(cmd *cobra.Command, msg string) error {
	err := fmt.Errorf("%s", msg)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "See '%s --help' for usage details.\n", cmd.CommandPath())
	cmd.SilenceUsage = true
	return err
}
