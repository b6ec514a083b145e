package series

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportWorkbook writes each table to its own worksheet, named after the
// series, with a bold header row. Numeric cells are stored as numbers.
func ExportWorkbook(tables []*Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, t := range tables {
		sheetName := t.Name
		if i == 0 {
			// reuse the default sheet rather than leaving an empty one behind
			if err := f.SetSheetName("Sheet1", sheetName); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheetName, err)
		}
		header := make([]any, len(t.Header))
		for col, h := range t.Header {
			header[col] = h
		}
		if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(max(len(t.Header), 1))
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
			return err
		}
		for rowIdx, row := range t.Rows {
			cells := make([]any, len(row))
			for col, value := range row {
				if v, err := strconv.ParseFloat(value, 64); err == nil {
					cells[col] = v
				} else {
					cells[col] = value
				}
			}
			cell, err := excelize.JoinCellName("A", rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
				return err
			}
		}
	}
	if len(tables) > 0 {
		f.SetActiveSheet(0)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
