package series

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logseries/internal/recognize"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriterHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fps.csv")
	w, err := Create(path, []string{"time", "fps", "avg_fps"})
	require.NoError(t, err)
	require.NoError(t, w.Write(recognize.FrameRate{Elapsed: 1, FPS: 60, AvgFPS: 59.5}))
	require.NoError(t, w.Write(recognize.FrameRate{Elapsed: 2.5, FPS: 58.25, AvgFPS: 59}))
	assert.Equal(t, 2, w.Rows())
	assert.Equal(t, path, w.Path())
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "time,fps,avg_fps\n1.0,60.0,59.5\n2.5,58.25,59.0\n", string(content))
}

func TestWriterHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entity_count.csv")
	w, err := Create(path, []string{"time", "num_entities", "avg_entities"})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "time,num_entities,avg_entities\n", string(content))
}

func TestWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fps.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\nstale\nstale\n"), 0644))
	w, err := Create(path, []string{"time", "fps", "avg_fps"})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "time,fps,avg_fps\n", string(content))
}

func TestCreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "fps.csv")
	_, err := Create(path, []string{"time"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
}

func TestWriterRejectsMismatchedRecord(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "fps.csv"), []string{"time", "fps"})
	require.NoError(t, err)
	defer w.Close()
	assert.Error(t, w.Write(recognize.FrameRate{}))
	assert.Equal(t, 0, w.Rows())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reached_dest.csv")
	w, err := Create(path, []string{"time", "dest_type", "steps", "avg_steps"})
	require.NoError(t, err)
	require.NoError(t, w.Write(recognize.ArrivalEvent{Elapsed: 2, Kind: "target", Steps: 10, AvgSteps: 10}))
	require.NoError(t, w.Write(recognize.ArrivalEvent{Elapsed: 3.125, Kind: "parent", Steps: 7, AvgSteps: 7}))
	require.NoError(t, w.Close())

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "reached_dest", table.Name)
	assert.Equal(t, []string{"time", "dest_type", "steps", "avg_steps"}, table.Header)
	assert.Equal(t, [][]string{{"2.0", "target", "10", "10.0"}, {"3.125", "parent", "7", "7.0"}}, table.Rows)
	times, err := table.Times()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3.125}, times)
	assert.Equal(t, 1, table.Column("dest_type"))
	assert.Equal(t, -1, table.Column("nope"))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)
	_, err = Read(strings.NewReader("time,fps\n1.0\n"))
	assert.Error(t, err)
	_, err = ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, errors.Is(err, ErrIO))
}

func sampleTable() *Table {
	return &Table{
		Name:   "fps",
		Header: []string{"time", "fps", "avg_fps"},
		Rows: [][]string{
			{"0.0", "60.0", "60.0"},
			{"10.0", "25.0", "42.5"},
			{"20.0", "55.0", "46.6"},
			{"30.0", "20.0", "40.0"},
			{"40.0", "59.0", "43.8"},
		},
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantTimes  []string
	}{
		{"no trim", 0, 0, []string{"0.0", "10.0", "20.0", "30.0", "40.0"}},
		{"skip start", 15, 0, []string{"20.0", "30.0", "40.0"}},
		{"skip end", 0, 10, []string{"0.0", "10.0", "20.0", "30.0"}},
		{"both", 10, 10, []string{"10.0", "20.0", "30.0"}},
		{"everything", 30, 30, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := sampleTable().Window(tt.start, tt.end)
			require.NoError(t, err)
			var got []string
			for _, row := range out.Rows {
				got = append(got, row[0])
			}
			assert.Equal(t, tt.wantTimes, got)
			assert.Equal(t, "fps", out.Name)
		})
	}
}

func TestWindowWithoutTimeColumn(t *testing.T) {
	table := &Table{Name: "odd", Header: []string{"x"}, Rows: [][]string{{"1"}}}
	_, err := table.Window(1, 1)
	assert.Error(t, err)
}

func TestRowFilter(t *testing.T) {
	filter, err := NewRowFilter("fps < 30")
	require.NoError(t, err)
	table := sampleTable()
	assert.True(t, filter.Applies(table))
	out, err := table.Filter(filter.Keep(table))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"10.0", "25.0", "42.5"}, {"30.0", "20.0", "40.0"}}, out.Rows)

	arrivals := &Table{Name: "reached_dest", Header: []string{"time", "dest_type", "steps", "avg_steps"}}
	assert.False(t, filter.Applies(arrivals))
}

func TestRowFilterStrings(t *testing.T) {
	filter, err := NewRowFilter("dest_type == 'target' && steps > 5")
	require.NoError(t, err)
	table := &Table{
		Name:   "reached_dest",
		Header: []string{"time", "dest_type", "steps", "avg_steps"},
		Rows: [][]string{
			{"1.0", "target", "4", "4.0"},
			{"2.0", "parent", "9", "9.0"},
			{"3.0", "target", "8", "6.0"},
		},
	}
	out, err := table.Filter(filter.Keep(table))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3.0", "target", "8", "6.0"}}, out.Rows)
}

func TestRowFilterErrors(t *testing.T) {
	_, err := NewRowFilter("(fps < 30")
	assert.Error(t, err)

	filter, err := NewRowFilter("fps + 1")
	require.NoError(t, err)
	table := sampleTable()
	_, err = table.Filter(filter.Keep(table))
	assert.Error(t, err)
}

func TestTableWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fps_trimmed.csv")
	require.NoError(t, sampleTable().WriteFile(path))
	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fps_trimmed", table.Name)
	assert.Equal(t, sampleTable().Rows, table.Rows)
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.xlsx")
	arrivals := &Table{
		Name:   "reached_dest",
		Header: []string{"time", "dest_type", "steps", "avg_steps"},
		Rows:   [][]string{{"2.0", "target", "10", "10.0"}},
	}
	require.NoError(t, ExportWorkbook([]*Table{sampleTable(), arrivals}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"fps", "reached_dest"}, f.GetSheetList())
	rows, err := f.GetRows("reached_dest")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"time", "dest_type", "steps", "avg_steps"}, rows[0])
	assert.Equal(t, "target", rows[1][1])
	value, err := f.GetCellValue("fps", "B3")
	require.NoError(t, err)
	assert.Equal(t, "25", value)
}

func TestReadRun(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadRun(dir)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "reached_dest.csv"), []byte("time,dest_type,steps,avg_steps\n2.0,target,4,4.0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fps.csv"), []byte("time,fps,avg_fps\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.csv"), []byte("a,b\n"), 0644))
	tables, err := ReadRun(dir)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "fps", tables[0].Name)
	assert.Equal(t, "reached_dest", tables[1].Name)
	assert.Len(t, tables[1].Rows, 1)
}
