package gnosis

import (
	"errors"
	"fmt"
)

// ErrDateOutOfRange indicates a date outside the sheet's known
// [start, end] range on an operation that does not extend the range.
var ErrDateOutOfRange = errors.New("date out of range")

// ErrUnknownStat indicates a statistic name absent from the header row.
var ErrUnknownStat = errors.New("unknown statistic")

// ErrDuplicateStat indicates an attempt to add a statistic whose name is
// already taken.
var ErrDuplicateStat = errors.New("statistic already exists")

// ErrRangeTooLarge indicates a date-range extension beyond the safety cap.
var ErrRangeTooLarge = errors.New("unable to create more than 1000 rows")

// ErrEmptySeries indicates a statistic column with no initializer marker.
var ErrEmptySeries = errors.New("statistic has no initializer marker")

// ErrNoValidRun indicates a label repair where not a single date label
// parsed, leaving nothing to anchor the relabeling on.
var ErrNoValidRun = errors.New("no parseable run of date labels")

// DateFormatError reports a cell whose text could not be parsed as a date
// label.
type DateFormatError struct {
	Label string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("malformed date label %q: %v", e.Label, e.Err)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}
