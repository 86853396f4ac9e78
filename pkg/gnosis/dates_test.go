package gnosis

import (
	"errors"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2017, 6, 14, 0, 0, 0, 0, time.UTC), "Wed, 06/14/17"},
		{time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), "Sun, 01/01/17"},
		{time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), "Sat, 02/29/20"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "Wed, 12/31/25"},
	}
	for _, tt := range tests {
		got := FormatDate(tt.date)
		if got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	// Walk a stretch of days crossing month, year and leap boundaries.
	start := time.Date(2016, 12, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		d := start.AddDate(0, 0, i)
		got, err := ParseDate(FormatDate(d))
		if err != nil {
			t.Fatalf("ParseDate(FormatDate(%v)) error: %v", d, err)
		}
		if !got.Equal(d) {
			t.Errorf("ParseDate(FormatDate(%v)) = %v", d, got)
		}
	}
}

func TestParseDateMalformed(t *testing.T) {
	tests := []string{
		"",
		"garbage",
		"06/14/17",
		"Wed 06/14/17",
		"Wed, 06-14-17",
		"Wed, 14/33/17",
	}
	for _, label := range tests {
		_, err := ParseDate(label)
		if err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", label)
			continue
		}
		var formatErr *DateFormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("ParseDate(%q) error is %T, want *DateFormatError", label, err)
		} else if formatErr.Label != label {
			t.Errorf("ParseDate(%q) error carries label %q", label, formatErr.Label)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 6, 4, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2017, 6, 4, 0, 0, 0, 0, time.UTC), time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), -3},
		{time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		// Times within the day do not affect the distance.
		{time.Date(2017, 6, 1, 23, 59, 0, 0, time.UTC), time.Date(2017, 6, 2, 0, 1, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		got := daysBetween(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("daysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
