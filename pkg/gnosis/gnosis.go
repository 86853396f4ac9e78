// Package gnosis tracks named daily statistics in a spreadsheet grid.
// Each row after the header holds one calendar day, labeled in column 1;
// each column after the first holds one statistic, named in row 1. The
// manager keeps an in-memory index of statistic columns and the covered
// date range, extends the sheet lazily when new days are written, and can
// repair a run of corrupted date labels.
package gnosis

import (
	"errors"
	"fmt"
	"time"

	"gnosis/pkg/sheet"

	log "github.com/sirupsen/logrus"
)

// Initializer is the sentinel written into a statistic's column to mark
// that its data begins the following day.
const Initializer = "START"

const (
	labelRow     = 1
	labelCol     = 1
	dataStartRow = 2
	dataStartCol = 2

	// maxRowsToCreate caps how far one call may extend the date range,
	// guarding against runaway sheet growth from a bad input date.
	maxRowsToCreate = 1000
)

// nowFunc is swapped out by tests.
var nowFunc = time.Now

// Entry is one day's value of a statistic.
type Entry struct {
	Date  time.Time
	Value string
}

// Gnosis manages a statistics spreadsheet through an abstract Sheet.
// It assumes it is the only actor mutating the grid; the column index and
// date range are derived once (at construction or Reload) and maintained
// across its own mutations only. Concurrent external edits are undefined
// behavior until the next Reload or FixLabels.
type Gnosis struct {
	sheet     sheet.Sheet
	statToCol map[string]int
	startDate time.Time
	endDate   time.Time
}

// New builds a manager bound to s. It trims trailing empty rows and
// columns, indexes the statistic names from the header row, and caches the
// date range from the first and last row labels.
func New(s sheet.Sheet) (*Gnosis, error) {
	g := &Gnosis{sheet: s}
	if err := g.Reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reload re-derives the statistic index and date range from the live
// sheet, discarding whatever the manager thought it knew.
func (g *Gnosis) Reload() error {
	labels, headers, err := g.trim()
	if err != nil {
		return err
	}

	g.statToCol = make(map[string]int, len(headers))
	for i, name := range headers[dataStartCol-1:] {
		g.statToCol[name] = dataStartCol + i
	}

	if len(labels) < dataStartRow {
		return &DateFormatError{Err: errors.New("sheet has no data rows")}
	}
	start, err := ParseDate(labels[dataStartRow-1])
	if err != nil {
		return err
	}
	end, err := ParseDate(labels[len(labels)-1])
	if err != nil {
		return err
	}
	g.startDate, g.endDate = start, end
	return nil
}

// trim drops unused trailing rows and columns from the sheet: rows below
// the last labeled row and columns right of the last titled column. It
// returns the surviving column-1 labels and row-1 headers so construction
// needs no further reads.
func (g *Gnosis) trim() (labels, headers []string, err error) {
	labels, err = g.sheet.ReadRange(1, labelCol, g.sheet.RowCount(), labelCol)
	if err != nil {
		return nil, nil, err
	}
	headers, err = g.sheet.ReadRange(labelRow, 1, labelRow, g.sheet.ColCount())
	if err != nil {
		return nil, nil, err
	}

	rows := len(labels)
	for rows > 1 && labels[rows-1] == "" {
		rows--
	}
	cols := len(headers)
	for cols > 1 && headers[cols-1] == "" {
		cols--
	}
	if rows != g.sheet.RowCount() || cols != g.sheet.ColCount() {
		log.Debugf("trimming sheet from %dx%d to %dx%d",
			g.sheet.RowCount(), g.sheet.ColCount(), rows, cols)
		if err := g.sheet.Resize(rows, cols); err != nil {
			return nil, nil, err
		}
	}
	return labels[:rows], headers[:cols], nil
}

// StartDate returns the first day covered by the sheet.
func (g *Gnosis) StartDate() time.Time { return g.startDate }

// EndDate returns the last day covered by the sheet.
func (g *Gnosis) EndDate() time.Time { return g.endDate }

// RowForDate returns the row holding date d.
func (g *Gnosis) RowForDate(d time.Time) (int, error) {
	day := midnight(d)
	if day.Before(g.startDate) || day.After(g.endDate) {
		return 0, fmt.Errorf("%w: %s", ErrDateOutOfRange, day.Format("2006-01-02"))
	}
	return dataStartRow + daysBetween(g.startDate, day), nil
}

// ApproxDateForRow guesses the date held by row r from its offset from the
// cached start date, with no read of the grid. The guess is wrong while
// labels are corrupted and unrepaired.
func (g *Gnosis) ApproxDateForRow(r int) time.Time {
	return g.startDate.AddDate(0, 0, r-dataStartRow)
}

// getOrCreateRow returns the row for d, extending the sheet's date range
// when d falls outside it. Prepended rows are inserted one at a time below
// the header, nearest date first, so that each later insert pushes the
// earlier ones down and the block lands in chronological order. Appended
// rows are added in bulk and labeled with one batched write.
func (g *Gnosis) getOrCreateRow(d time.Time) (int, error) {
	row, err := g.RowForDate(d)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, ErrDateOutOfRange) {
		return 0, err
	}

	day := midnight(d)
	createBefore := day.Before(g.startDate)
	closest := g.endDate
	if createBefore {
		closest = g.startDate
	}
	gap := daysBetween(closest, day)
	if gap < 0 {
		gap = -gap
	}
	if gap > maxRowsToCreate {
		return 0, fmt.Errorf("%w (requested %d)", ErrRangeTooLarge, gap)
	}

	log.Debugf("extending date range by %d rows to cover %s",
		gap, day.Format("2006-01-02"))
	if createBefore {
		for i := 1; i <= gap; i++ {
			label := FormatDate(closest.AddDate(0, 0, -i))
			if err := g.sheet.InsertRow([]string{label}, dataStartRow); err != nil {
				return 0, err
			}
		}
		g.startDate = day
	} else {
		if err := g.sheet.AppendRows(gap); err != nil {
			return 0, err
		}
		base := g.sheet.RowCount() - gap
		cells := make([]sheet.Cell, gap)
		for i := 1; i <= gap; i++ {
			cells[i-1] = sheet.Cell{
				Row:   base + i,
				Col:   labelCol,
				Value: FormatDate(closest.AddDate(0, 0, i)),
			}
		}
		if err := g.sheet.WriteRange(cells); err != nil {
			return 0, err
		}
		g.endDate = day
	}

	return g.RowForDate(d)
}

func (g *Gnosis) statCol(name string) (int, error) {
	col, ok := g.statToCol[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStat, name)
	}
	return col, nil
}

// coords returns the (row, col) of the cell for statistic name on date d.
func (g *Gnosis) coords(name string, d time.Time) (int, int, error) {
	col, err := g.statCol(name)
	if err != nil {
		return 0, 0, err
	}
	row, err := g.RowForDate(d)
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// AddStatSeries appends a new statistic column titled name and writes the
// initializer marker at yesterday's row, making today the first day with a
// logical value. The date range is extended to cover yesterday if needed.
func (g *Gnosis) AddStatSeries(name string) error {
	if _, ok := g.statToCol[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStat, name)
	}
	if err := g.sheet.AddColumns(1); err != nil {
		return err
	}
	col := g.sheet.ColCount()
	if err := g.sheet.WriteCell(labelRow, col, name); err != nil {
		return err
	}
	g.statToCol[name] = col

	yesterday := nowFunc().AddDate(0, 0, -1)
	row, err := g.getOrCreateRow(yesterday)
	if err != nil {
		return err
	}
	return g.sheet.WriteCell(row, col, Initializer)
}

// UpdateStat sets the value of statistic name on date d. The date must
// already be in range; only AddStatSeries extends the sheet.
func (g *Gnosis) UpdateStat(name string, d time.Time, value string) error {
	row, col, err := g.coords(name, d)
	if err != nil {
		return err
	}
	return g.sheet.WriteCell(row, col, value)
}

// GetStat returns the value of statistic name on date d.
func (g *Gnosis) GetStat(name string, d time.Time) (string, error) {
	row, col, err := g.coords(name, d)
	if err != nil {
		return "", err
	}
	return g.sheet.ReadCell(row, col)
}

// GetStatSeries returns the ordered (date, value) entries for name, from
// the day after its initializer marker through the sheet's last day. The
// whole column is fetched in one range read; dates come from the row
// offset, not from per-row label reads.
func (g *Gnosis) GetStatSeries(name string) ([]Entry, error) {
	col, err := g.statCol(name)
	if err != nil {
		return nil, err
	}
	values, err := g.sheet.ReadRange(1, col, g.sheet.RowCount(), col)
	if err != nil {
		return nil, err
	}

	var series []Entry
	started := false
	for i, value := range values {
		if started {
			series = append(series, Entry{
				Date:  g.ApproxDateForRow(i + 1),
				Value: value,
			})
		}
		started = started || value == Initializer
	}
	return series, nil
}

// GetStatStart returns the date of the first entry of name's series.
func (g *Gnosis) GetStatStart(name string) (time.Time, error) {
	series, err := g.GetStatSeries(name)
	if err != nil {
		return time.Time{}, err
	}
	if len(series) == 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrEmptySeries, name)
	}
	return series[0].Date, nil
}
