package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gnosis/pkg/gnosis"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, manager StatManager, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	applyRoutes(chi.NewRouter(), &handler{manager: manager}).ServeHTTP(rec, req)
	return rec
}

func TestParseDateParam(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"2017-06-14", false},
		{"2017-6-14", true},
		{"14/06/2017", true},
		{"notadate", true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("date", tt.raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		d, err := parseDateParam(req)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDateParam(%q) succeeded, want error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDateParam(%q) error: %v", tt.raw, err)
		} else if d.Format(dateParamFormat) != tt.raw {
			t.Errorf("parseDateParam(%q) = %v", tt.raw, d)
		}
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{gnosis.ErrUnknownStat, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", gnosis.ErrUnknownStat), http.StatusNotFound},
		{gnosis.ErrDuplicateStat, http.StatusConflict},
		{gnosis.ErrDateOutOfRange, http.StatusBadRequest},
		{gnosis.ErrRangeTooLarge, http.StatusBadRequest},
		{gnosis.ErrEmptySeries, http.StatusBadRequest},
		{gnosis.ErrNoValidRun, http.StatusBadRequest},
		{&gnosis.DateFormatError{Label: "x"}, http.StatusBadRequest},
		{fmt.Errorf("the backend exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		got := statusForError(tt.err)
		if got != tt.want {
			t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestGetStat(t *testing.T) {
	manager := &mockManager{
		GetStatFunc: func(name string, d time.Time) (string, error) {
			assert.Equal(t, "Steps", name)
			assert.Equal(t, time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC), d)
			return "120", nil
		},
	}
	rec := serve(t, manager, http.MethodGet, "/stats/Steps/2017-06-02", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statValue
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, statValue{Stat: "Steps", Date: "2017-06-02", Value: "120"}, resp)
}

func TestGetStatErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{"unknown stat", "/stats/Nope/2017-06-02", gnosis.ErrUnknownStat, http.StatusNotFound},
		{"out of range", "/stats/Steps/2030-01-01", gnosis.ErrDateOutOfRange, http.StatusBadRequest},
		{"bad date", "/stats/Steps/junk", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &mockManager{
				GetStatFunc: func(name string, d time.Time) (string, error) {
					return "", tt.err
				},
			}
			rec := serve(t, manager, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp errorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestUpdateStat(t *testing.T) {
	var gotName, gotValue string
	var gotDate time.Time
	manager := &mockManager{
		UpdateStatFunc: func(name string, d time.Time, value string) error {
			gotName, gotDate, gotValue = name, d, value
			return nil
		},
	}
	rec := serve(t, manager, http.MethodPut, "/stats/Steps/2017-06-02", `{"value":"8123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Steps", gotName)
	assert.Equal(t, time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC), gotDate)
	assert.Equal(t, "8123", gotValue)
}

func TestUpdateStatBadBody(t *testing.T) {
	manager := &mockManager{
		UpdateStatFunc: func(name string, d time.Time, value string) error {
			t.Error("UpdateStat called with an unparseable body")
			return nil
		},
	}
	rec := serve(t, manager, http.MethodPut, "/stats/Steps/2017-06-02", `{"value":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddStat(t *testing.T) {
	manager := &mockManager{
		AddStatSeriesFunc: func(name string) error {
			assert.Equal(t, "Sleep", name)
			return nil
		},
	}
	rec := serve(t, manager, http.MethodPost, "/stats/Sleep", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddStatDuplicate(t *testing.T) {
	manager := &mockManager{
		AddStatSeriesFunc: func(name string) error {
			return fmt.Errorf("%w: %s", gnosis.ErrDuplicateStat, name)
		},
	}
	rec := serve(t, manager, http.MethodPost, "/stats/Sleep", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetSeries(t *testing.T) {
	manager := &mockManager{
		GetStatSeriesFunc: func(name string) ([]gnosis.Entry, error) {
			return []gnosis.Entry{
				{Date: time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC), Value: "120"},
				{Date: time.Date(2017, 6, 3, 0, 0, 0, 0, time.UTC), Value: "543"},
			}, nil
		},
	}
	rec := serve(t, manager, http.MethodGet, "/stats/Steps", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statSeries
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, statSeries{
		Stat:  "Steps",
		Start: "2017-06-02",
		Entries: []seriesEntry{
			{Date: "2017-06-02", Value: "120"},
			{Date: "2017-06-03", Value: "543"},
		},
	}, resp)
}

func TestGetSeriesEmpty(t *testing.T) {
	manager := &mockManager{
		GetStatSeriesFunc: func(name string) ([]gnosis.Entry, error) {
			return nil, nil
		},
	}
	rec := serve(t, manager, http.MethodGet, "/stats/Steps", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statSeries
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Start)
	assert.Empty(t, resp.Entries)
}

func TestGetStatStart(t *testing.T) {
	manager := &mockManager{
		GetStatStartFunc: func(name string) (time.Time, error) {
			return time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC), nil
		},
	}
	rec := serve(t, manager, http.MethodGet, "/stats/Steps/start", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statStart
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, statStart{Stat: "Steps", Start: "2017-06-02"}, resp)
}

func TestRepair(t *testing.T) {
	manager := &mockManager{}
	rec := serve(t, manager, http.MethodPost, "/repair", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, manager.FixLabelsCalled)
}

func TestRepairNoValidRun(t *testing.T) {
	manager := &mockManager{
		FixLabelsFunc: func() error { return gnosis.ErrNoValidRun },
	}
	rec := serve(t, manager, http.MethodPost, "/repair", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReload(t *testing.T) {
	manager := &mockManager{}
	rec := serve(t, manager, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, manager.ReloadCalled)
}
