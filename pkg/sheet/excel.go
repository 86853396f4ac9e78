package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var _ Sheet = (*ExcelSheet)(nil)

// ExcelSheet serves the grid contract from a worksheet of a local .xlsx
// workbook, for offline copies of a statistics sheet. Workbook cells are
// sparse, so dimensions are tracked logically from the used range at open
// time. Writes stay in memory until Save is called.
type ExcelSheet struct {
	file *excelize.File
	name string
	rows int
	cols int
}

func OpenExcelSheet(path, sheetName string) (*ExcelSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheetName, path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	e := &ExcelSheet{file: f, name: sheetName, rows: len(rows), cols: 1}
	for _, row := range rows {
		if len(row) > e.cols {
			e.cols = len(row)
		}
	}
	if e.rows < 1 {
		e.rows = 1
	}
	return e, nil
}

// Save writes pending changes back to the workbook file.
func (e *ExcelSheet) Save() error {
	return e.file.Save()
}

func (e *ExcelSheet) check(row, col int) error {
	if row < 1 || row > e.rows || col < 1 || col > e.cols {
		return fmt.Errorf("cell (%d, %d) outside %dx%d grid", row, col, e.rows, e.cols)
	}
	return nil
}

func (e *ExcelSheet) ReadCell(row, col int) (string, error) {
	if err := e.check(row, col); err != nil {
		return "", err
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return e.file.GetCellValue(e.name, name)
}

func (e *ExcelSheet) WriteCell(row, col int, value string) error {
	if err := e.check(row, col); err != nil {
		return err
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return e.file.SetCellStr(e.name, name, value)
}

func (e *ExcelSheet) ReadRange(topRow, leftCol, bottomRow, rightCol int) ([]string, error) {
	if err := e.check(topRow, leftCol); err != nil {
		return nil, err
	}
	if err := e.check(bottomRow, rightCol); err != nil {
		return nil, err
	}
	out := make([]string, 0, (bottomRow-topRow+1)*(rightCol-leftCol+1))
	for r := topRow; r <= bottomRow; r++ {
		for c := leftCol; c <= rightCol; c++ {
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			val, err := e.file.GetCellValue(e.name, name)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
	}
	return out, nil
}

func (e *ExcelSheet) WriteRange(cells []Cell) error {
	for _, cell := range cells {
		if err := e.WriteCell(cell.Row, cell.Col, cell.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelSheet) InsertRow(values []string, index int) error {
	if index < 1 || index > e.rows+1 {
		return fmt.Errorf("insert index %d outside %d-row grid", index, e.rows)
	}
	if err := e.file.InsertRows(e.name, index, 1); err != nil {
		return err
	}
	e.rows++
	if len(values) > e.cols {
		values = values[:e.cols]
	}
	for i, v := range values {
		if err := e.WriteCell(index, i+1, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelSheet) AppendRows(count int) error {
	e.rows += count
	return nil
}

func (e *ExcelSheet) AddColumns(count int) error {
	e.cols += count
	return nil
}

func (e *ExcelSheet) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("cannot resize to %dx%d", rows, cols)
	}
	for r := e.rows; r > rows; r-- {
		if err := e.file.RemoveRow(e.name, r); err != nil {
			return err
		}
	}
	for c := e.cols; c > cols; c-- {
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		if err := e.file.RemoveCol(e.name, name); err != nil {
			return err
		}
	}
	e.rows, e.cols = rows, cols
	return nil
}

func (e *ExcelSheet) RowCount() int { return e.rows }

func (e *ExcelSheet) ColCount() int { return e.cols }
