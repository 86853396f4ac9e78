package api

import (
	"time"

	"gnosis/pkg/gnosis"
)

// StatManager is the slice of the gnosis manager the handlers drive.
type StatManager interface {
	AddStatSeries(name string) error
	UpdateStat(name string, d time.Time, value string) error
	GetStat(name string, d time.Time) (string, error)
	GetStatSeries(name string) ([]gnosis.Entry, error)
	GetStatStart(name string) (time.Time, error)
	FixLabels() error
	Reload() error
}

type statValue struct {
	Stat  string `json:"stat"`
	Date  string `json:"date"`
	Value string `json:"value"`
}

type seriesEntry struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type statSeries struct {
	Stat    string        `json:"stat"`
	Start   string        `json:"start,omitempty"`
	Entries []seriesEntry `json:"entries"`
}

type statStart struct {
	Stat  string `json:"stat"`
	Start string `json:"start"`
}

type updateRequest struct {
	Value string `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}
