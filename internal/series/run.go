package series

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"path/filepath"

	"logseries/internal/recognize"
	"logseries/internal/util"
)

// FileName is the CSV file name of a series.
func FileName(seriesName string) string {
	return seriesName + ".csv"
}

// ReadRun reads the series CSV files present in a run directory, in
// recognizer registration order. Missing series are left out; a directory with
// none of them is an error.
func ReadRun(dir string) ([]*Table, error) {
	var tables []*Table
	for _, r := range recognize.Defaults() {
		path := filepath.Join(dir, FileName(r.Name()))
		exists, err := util.FileExists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		table, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no series files found in %s", dir)
	}
	return tables, nil
}
