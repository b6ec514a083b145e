package summary

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fps.csv"), []byte("time,fps,avg_fps\n1.0,60.0,59.5\n2.0,50.0,55.0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reached_dest.csv"), []byte("time,dest_type,steps,avg_steps\n2.0,target,4,4.0\n3.0,parent,10,10.0\n4.0,target,6,5.0\n"), 0644))

	var buf bytes.Buffer
	path, err := Run(dir, &buf)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "series,group,column,count,mean,min,max,stddev\n")
	assert.Contains(t, string(content), "fps,,fps,2,55.000000,50.000000,60.000000,5.000000\n")
	assert.Contains(t, string(content), "reached_dest,parent,steps,1,10.000000,10.000000,10.000000,0.000000\n")
	assert.Contains(t, string(content), "reached_dest,target,steps,2,5.000000,4.000000,6.000000,1.000000\n")
	assert.Contains(t, buf.String(), "SERIES")
	assert.Contains(t, buf.String(), "target")
}

func TestRunEmptyDirectory(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(t.TempDir(), &buf)
	assert.Error(t, err)
}
