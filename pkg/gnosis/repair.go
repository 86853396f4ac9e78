package gnosis

import (
	"time"

	"gnosis/pkg/sheet"

	log "github.com/sirupsen/logrus"
)

// labelRun is a contiguous block of data rows whose labels all parse as
// dates.
type labelRun struct {
	startRow  int
	startDate time.Time
	length    int
}

func (r labelRun) lastRow() int {
	return r.startRow + r.length - 1
}

func (r labelRun) endDate() time.Time {
	return r.startDate.AddDate(0, 0, r.length-1)
}

// FixLabels rebuilds the date labels in column 1 after external edits
// leave some of them malformed. The longest contiguous run of parseable
// labels is trusted as-is and anchors the whole sheet: every row before
// the run is relabeled by its negative offset from the run's start, every
// row after it by its positive offset from the run's end. Ties go to the
// earliest run. Returns ErrNoValidRun, without writing anything, when no
// label parses at all.
//
// Only parseability gates a run; the dates inside the winning run are not
// checked for being consecutive.
func (g *Gnosis) FixLabels() error {
	last := g.sheet.RowCount()
	if last < dataStartRow {
		return ErrNoValidRun
	}
	labels, err := g.sheet.ReadRange(dataStartRow, labelCol, last, labelCol)
	if err != nil {
		return err
	}

	var best, cur labelRun
	for i, label := range labels {
		d, err := ParseDate(label)
		if err != nil {
			if cur.length > best.length {
				best = cur
			}
			cur = labelRun{}
			continue
		}
		if cur.length == 0 {
			cur = labelRun{startRow: dataStartRow + i, startDate: d}
		}
		cur.length++
	}
	if cur.length > best.length {
		best = cur
	}
	if best.length == 0 {
		return ErrNoValidRun
	}

	log.Debugf("repairing labels around run of %d rows at row %d (%s)",
		best.length, best.startRow, FormatDate(best.startDate))

	var prefix []sheet.Cell
	for row := dataStartRow; row < best.startRow; row++ {
		prefix = append(prefix, sheet.Cell{
			Row:   row,
			Col:   labelCol,
			Value: FormatDate(best.startDate.AddDate(0, 0, row-best.startRow)),
		})
	}
	if len(prefix) > 0 {
		if err := g.sheet.WriteRange(prefix); err != nil {
			return err
		}
	}

	var suffix []sheet.Cell
	for row := best.lastRow() + 1; row <= last; row++ {
		suffix = append(suffix, sheet.Cell{
			Row:   row,
			Col:   labelCol,
			Value: FormatDate(best.endDate().AddDate(0, 0, row-best.lastRow())),
		})
	}
	if len(suffix) > 0 {
		if err := g.sheet.WriteRange(suffix); err != nil {
			return err
		}
	}

	// The previously cached range may itself be anchored on a corrupt
	// label; re-derive it from the run.
	g.startDate = best.startDate.AddDate(0, 0, dataStartRow-best.startRow)
	g.endDate = best.endDate().AddDate(0, 0, last-best.lastRow())
	return nil
}
