package trim

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"

	"logseries/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fps.csv"), []byte("time,fps,avg_fps\n0.0,60.0,60.0\n1.0,20.0,40.0\n2.0,25.0,35.0\n3.0,60.0,41.25\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reached_dest.csv"), []byte("time,dest_type,steps,avg_steps\n0.5,target,4,4.0\n2.5,parent,10,10.0\n"), 0644))
	return dir
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRunWindow(t *testing.T) {
	dir := runDir(t)
	files, err := Run(Options{Input: dir, StartOffset: 1, EndOffset: 1, Formats: []string{config.FormatCSV}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "fps_trimmed.csv"), filepath.Join(dir, "reached_dest_trimmed.csv")}, files)
	assert.Equal(t, "time,fps,avg_fps\n1.0,20.0,40.0\n2.0,25.0,35.0\n", read(t, files[0]))
	// window is 1.5 to 1.5
	assert.Equal(t, "time,dest_type,steps,avg_steps\n", read(t, files[1]))
}

func TestRunFilterSingleFile(t *testing.T) {
	dir := runDir(t)
	files, err := Run(Options{Input: filepath.Join(dir, "fps.csv"), Filter: "fps < 30", Formats: []string{config.FormatCSV}})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "time,fps,avg_fps\n1.0,20.0,40.0\n2.0,25.0,35.0\n", read(t, files[0]))
}

func TestRunFilterNotApplicable(t *testing.T) {
	dir := runDir(t)
	files, err := Run(Options{Input: dir, Filter: "dest_type == 'target'", Formats: []string{config.FormatCSV, config.FormatXlsx}})
	require.NoError(t, err)
	require.Len(t, files, 3)
	// fps has no dest_type column and is kept whole
	assert.Equal(t, read(t, filepath.Join(dir, "fps.csv")), read(t, files[0]))
	assert.Equal(t, "time,dest_type,steps,avg_steps\n0.5,target,4,4.0\n", read(t, files[1]))
	assert.Equal(t, filepath.Join(dir, WorkbookName), files[2])
}

func TestRunErrors(t *testing.T) {
	_, err := Run(Options{Input: filepath.Join(t.TempDir(), "missing"), StartOffset: 1, Formats: []string{config.FormatCSV}})
	assert.Error(t, err)
	_, err = Run(Options{Input: t.TempDir(), StartOffset: 1, Formats: []string{config.FormatCSV}})
	assert.Error(t, err)
	_, err = Run(Options{Input: runDir(t), Filter: "(fps", Formats: []string{config.FormatCSV}})
	assert.Error(t, err)
}
