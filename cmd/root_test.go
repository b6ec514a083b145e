package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSyslogRecord(t *testing.T) {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "baseline set", 0)
	r.AddAttrs(slog.String("baseline", "2024-01-01T00:00:00Z"), slog.Int("line", 3))
	assert.Equal(t, `level=INFO msg="baseline set" baseline="2024-01-01T00:00:00Z" line="3"`, formatSyslogRecord(r, false))
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"parse", "summary", "trim", "tokens"})
}
