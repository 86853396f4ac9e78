package api

import (
	"time"

	"gnosis/pkg/gnosis"
)

type mockManager struct {
	AddStatSeriesFunc func(name string) error
	UpdateStatFunc    func(name string, d time.Time, value string) error
	GetStatFunc       func(name string, d time.Time) (string, error)
	GetStatSeriesFunc func(name string) ([]gnosis.Entry, error)
	GetStatStartFunc  func(name string) (time.Time, error)
	FixLabelsFunc     func() error
	ReloadFunc        func() error

	FixLabelsCalled bool
	ReloadCalled    bool
}

func (m *mockManager) AddStatSeries(name string) error {
	return m.AddStatSeriesFunc(name)
}

func (m *mockManager) UpdateStat(name string, d time.Time, value string) error {
	return m.UpdateStatFunc(name, d, value)
}

func (m *mockManager) GetStat(name string, d time.Time) (string, error) {
	return m.GetStatFunc(name, d)
}

func (m *mockManager) GetStatSeries(name string) ([]gnosis.Entry, error) {
	return m.GetStatSeriesFunc(name)
}

func (m *mockManager) GetStatStart(name string) (time.Time, error) {
	return m.GetStatStartFunc(name)
}

func (m *mockManager) FixLabels() error {
	m.FixLabelsCalled = true
	if m.FixLabelsFunc != nil {
		return m.FixLabelsFunc()
	}
	return nil
}

func (m *mockManager) Reload() error {
	m.ReloadCalled = true
	if m.ReloadFunc != nil {
		return m.ReloadFunc()
	}
	return nil
}
