package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ldsec/platedrift/drift"
)

const (
	summarySheet = "summary"
	samplesSheet = "samples"
)

// WriteWorkbook saves an xlsx file with a summary sheet and a per-sample sheet.
func WriteWorkbook(path string, res *drift.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	rows := [][]interface{}{{"key", "value"}}
	for _, r := range summaryRows(&res.Summary) {
		rows = append(rows, []interface{}{r.key, r.value})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(samplesSheet); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	rows = [][]interface{}{{"age_myr", "distance_km", "predicted_km", "residual_km"}}
	for _, s := range Samples(res) {
		rows = append(rows, []interface{}{s.Age, s.Distance, s.Predicted, s.Residual})
	}
	if err := writeRows(f, samplesSheet, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("workbook: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("workbook %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
