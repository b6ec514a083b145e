package app

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCommand(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "child"}
	root.AddCommand(child)
	assert.Equal(t, Context{}, FromCommand(child))

	want := Context{Timestamp: "2024-01-01_00-00-00", OutputRoot: "/tmp/runs", Debug: true}
	root.SetContext(context.WithValue(context.Background(), Context{}, want))
	assert.Equal(t, want, FromCommand(child))
}

func TestFlagValidationError(t *testing.T) {
	cmd := &cobra.Command{Use: "parse"}
	err := FlagValidationError(cmd, "bad flag")
	require.Error(t, err)
	assert.Equal(t, "bad flag", err.Error())
	assert.True(t, cmd.SilenceUsage)
}

func TestUsageFunc(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().Bool(FlagDebugName, false, "enable debug logging")
	cmd := &cobra.Command{Use: "parse", Example: "  $ root parse run1", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().String(FlagInputName, "output.txt", "captured log")
	cmd.Flags().Bool("metrics-file", false, "write counters")
	root.AddCommand(cmd)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, UsageFunc([]FlagGroup{{GroupName: "Input", Flags: []string{FlagInputName, "not-a-flag"}}})(cmd))
	out := buf.String()
	assert.Contains(t, out, "Examples:\n  $ root parse run1")
	assert.Contains(t, out, "  Input:\n")
	assert.Contains(t, out, "--input")
	assert.Contains(t, out, "(default: output.txt)")
	assert.NotContains(t, out, "metrics-file")
	assert.Contains(t, out, "--debug")
}
