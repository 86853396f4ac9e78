package sheet

// Cell is a single grid position with its text value. Coordinates are
// 1-based; row 1 and column 1 are reserved for labels.
type Cell struct {
	Row   int
	Col   int
	Value string
}

// Sheet is the grid collaborator the statistics manager drives. How an
// implementation authenticates or persists is its own business; the
// manager only needs read/write/resize on a rectangle of text cells.
// Implementations are not safe for concurrent writers.
type Sheet interface {
	ReadCell(row, col int) (string, error)
	WriteCell(row, col int, value string) error
	// ReadRange returns the values of the rectangle in row-major order,
	// one entry per cell, empty cells included.
	ReadRange(topRow, leftCol, bottomRow, rightCol int) ([]string, error)
	// WriteRange writes all cells in a single batched call.
	WriteRange(cells []Cell) error
	// InsertRow places values at index, shifting that row and everything
	// below it down by one. Values beyond the grid width are dropped.
	InsertRow(values []string, index int) error
	// AppendRows grows the grid by count empty rows.
	AppendRows(count int) error
	// AddColumns grows the grid by count empty columns.
	AddColumns(count int) error
	// Resize truncates or grows the grid to exactly rows x cols.
	Resize(rows, cols int) error
	RowCount() int
	ColCount() int
}
