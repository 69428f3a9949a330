package inventory

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX exports the report to a spreadsheet: a header row, the grand
// total, then one row per room in alphabetical order.
func WriteXLSX(report *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	order := report.ChairOrder()
	headers := make([]any, 0, len(order)+1)
	headers = append(headers, "Room")
	for _, ch := range order {
		headers = append(headers, string(ch))
	}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	if err := writeRow(f, sheet, row, tallyRow("total", report.Total, order)); err != nil {
		return err
	}
	for _, name := range report.RoomNames() {
		row++
		if err := writeRow(f, sheet, row, tallyRow(name, report.Rooms[name], order)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func tallyRow(name string, t Tally, order []rune) []any {
	values := make([]any, 0, len(order)+1)
	values = append(values, name)
	for _, ch := range order {
		values = append(values, t[ch])
	}
	return values
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
