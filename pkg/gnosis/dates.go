package gnosis

import "time"

// TimeFormat is the layout of the date labels in column 1: abbreviated
// weekday plus MM/DD/YY, e.g. "Wed, 06/14/17".
const TimeFormat = "Mon, 01/02/06"

// ParseDate converts a column-1 label into a date.
func ParseDate(label string) (time.Time, error) {
	d, err := time.ParseInLocation(TimeFormat, label, time.UTC)
	if err != nil {
		return time.Time{}, &DateFormatError{Label: label, Err: err}
	}
	return d, nil
}

// FormatDate converts a date into its column-1 label.
func FormatDate(d time.Time) string {
	return d.Format(TimeFormat)
}

// midnight truncates d to the start of its day in UTC, the canonical form
// for all date arithmetic here.
func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole days from a to b, negative when b
// precedes a.
func daysBetween(a, b time.Time) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}
