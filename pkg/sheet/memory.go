package sheet

import "fmt"

var _ Sheet = (*MemSheet)(nil)

// MemSheet is an in-memory grid with the same structural semantics as the
// remote backends. It backs the test suites and dry-run invocations.
type MemSheet struct {
	grid [][]string
}

func NewMemSheet(rows, cols int) *MemSheet {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	return &MemSheet{grid: grid}
}

// MemSheetFromRows builds a MemSheet seeded with rows, padded out to the
// widest row.
func MemSheetFromRows(rows [][]string) *MemSheet {
	cols := 1
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	m := NewMemSheet(len(rows), cols)
	for r, row := range rows {
		copy(m.grid[r], row)
	}
	return m
}

func (m *MemSheet) check(row, col int) error {
	if row < 1 || row > m.RowCount() || col < 1 || col > m.ColCount() {
		return fmt.Errorf("cell (%d, %d) outside %dx%d grid", row, col, m.RowCount(), m.ColCount())
	}
	return nil
}

func (m *MemSheet) ReadCell(row, col int) (string, error) {
	if err := m.check(row, col); err != nil {
		return "", err
	}
	return m.grid[row-1][col-1], nil
}

func (m *MemSheet) WriteCell(row, col int, value string) error {
	if err := m.check(row, col); err != nil {
		return err
	}
	m.grid[row-1][col-1] = value
	return nil
}

func (m *MemSheet) ReadRange(topRow, leftCol, bottomRow, rightCol int) ([]string, error) {
	if err := m.check(topRow, leftCol); err != nil {
		return nil, err
	}
	if err := m.check(bottomRow, rightCol); err != nil {
		return nil, err
	}
	out := make([]string, 0, (bottomRow-topRow+1)*(rightCol-leftCol+1))
	for r := topRow; r <= bottomRow; r++ {
		for c := leftCol; c <= rightCol; c++ {
			out = append(out, m.grid[r-1][c-1])
		}
	}
	return out, nil
}

func (m *MemSheet) WriteRange(cells []Cell) error {
	for _, cell := range cells {
		if err := m.check(cell.Row, cell.Col); err != nil {
			return err
		}
	}
	for _, cell := range cells {
		m.grid[cell.Row-1][cell.Col-1] = cell.Value
	}
	return nil
}

func (m *MemSheet) InsertRow(values []string, index int) error {
	if index < 1 || index > m.RowCount()+1 {
		return fmt.Errorf("insert index %d outside %d-row grid", index, m.RowCount())
	}
	row := make([]string, m.ColCount())
	copy(row, values)
	m.grid = append(m.grid, nil)
	copy(m.grid[index:], m.grid[index-1:])
	m.grid[index-1] = row
	return nil
}

func (m *MemSheet) AppendRows(count int) error {
	for i := 0; i < count; i++ {
		m.grid = append(m.grid, make([]string, m.ColCount()))
	}
	return nil
}

func (m *MemSheet) AddColumns(count int) error {
	for r := range m.grid {
		m.grid[r] = append(m.grid[r], make([]string, count)...)
	}
	return nil
}

func (m *MemSheet) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("cannot resize to %dx%d", rows, cols)
	}
	for m.RowCount() > rows {
		m.grid = m.grid[:len(m.grid)-1]
	}
	for m.RowCount() < rows {
		m.grid = append(m.grid, make([]string, m.ColCount()))
	}
	for r := range m.grid {
		if len(m.grid[r]) > cols {
			m.grid[r] = m.grid[r][:cols]
		}
		for len(m.grid[r]) < cols {
			m.grid[r] = append(m.grid[r], "")
		}
	}
	return nil
}

func (m *MemSheet) RowCount() int { return len(m.grid) }

func (m *MemSheet) ColCount() int {
	if len(m.grid) == 0 {
		return 0
	}
	return len(m.grid[0])
}

// Rows returns a copy of the grid contents, for assertions.
func (m *MemSheet) Rows() [][]string {
	out := make([][]string, len(m.grid))
	for r, row := range m.grid {
		out[r] = append([]string(nil), row...)
	}
	return out
}
