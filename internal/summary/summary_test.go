package summary

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"logseries/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeUngrouped(t *testing.T) {
	table := &series.Table{
		Name:   "fps",
		Header: []string{"time", "fps", "avg_fps"},
		Rows: [][]string{
			{"1.0", "2.0", "10.0"},
			{"2.0", "4.0", "10.0"},
			{"3.0", "4.0", "10.0"},
			{"4.0", "4.0", "10.0"},
			{"5.0", "5.0", "10.0"},
			{"6.0", "5.0", "10.0"},
			{"7.0", "7.0", "10.0"},
			{"8.0", "9.0", "10.0"},
		},
	}
	rows, err := Summarize(table, GroupColumn)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Series: "fps", Column: "fps", Stats: Stats{Count: 8, Mean: 5, Min: 2, Max: 9, Stddev: 2}}, rows[0])
	assert.Equal(t, "avg_fps", rows[1].Column)
	assert.Equal(t, 0.0, rows[1].Stddev)
}

func TestSummarizeGrouped(t *testing.T) {
	table := &series.Table{
		Name:   "reached_dest",
		Header: []string{"time", "dest_type", "steps", "avg_steps"},
		Rows: [][]string{
			{"1.0", "target", "4", "4.0"},
			{"2.0", "parent", "40", "40.0"},
			{"3.0", "target", "6", "5.0"},
		},
	}
	rows, err := Summarize(table, GroupColumn)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "steps", rows[0].Column)
	assert.Equal(t, "parent", rows[0].Group)
	assert.Equal(t, 40.0, rows[0].Mean)
	assert.Equal(t, "target", rows[1].Group)
	assert.Equal(t, Stats{Count: 2, Mean: 5, Min: 4, Max: 6, Stddev: 1}, rows[1].Stats)
	assert.Equal(t, "avg_steps", rows[3].Column)
	assert.Equal(t, 4.5, rows[3].Mean)
}

func TestSummarizeEmptySeries(t *testing.T) {
	table := &series.Table{Name: "entity_count", Header: []string{"time", "num_entities", "avg_entities"}}
	rows, err := Summarize(table, GroupColumn)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Count)
	assert.True(t, math.IsNaN(rows[0].Mean))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{{Series: "reached_dest", Group: "target", Column: "steps", Stats: Stats{Count: 2, Mean: 5, Min: 4, Max: 6, Stddev: 1}}}
	require.NoError(t, WriteCSV(&buf, rows))
	assert.Equal(t, "series,group,column,count,mean,min,max,stddev\nreached_dest,target,steps,2,5.000000,4.000000,6.000000,1.000000\n", buf.String())
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{{Series: "entity_count", Column: "num_entities", Stats: Stats{Count: 1500, Mean: 12345.5, Min: 10000, Max: 15000, Stddev: 250}}}
	require.NoError(t, Print(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "SERIES"))
	assert.Contains(t, lines[1], "1,500")
	assert.Contains(t, lines[1], "12,345.50")
	assert.Contains(t, lines[1], " - ")
}
