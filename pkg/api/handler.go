package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gnosis/pkg/gnosis"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// dateParamFormat is the wire format for dates in URLs and payloads,
// deliberately distinct from the sheet's label format.
const dateParamFormat = "2006-01-02"

type handler struct {
	manager StatManager
}

func parseDateParam(r *http.Request) (time.Time, error) {
	raw := chi.URLParam(r, "date")
	d, err := time.ParseInLocation(dateParamFormat, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return d, nil
}

func statusForError(err error) int {
	var formatErr *gnosis.DateFormatError
	switch {
	case errors.Is(err, gnosis.ErrUnknownStat):
		return http.StatusNotFound
	case errors.Is(err, gnosis.ErrDuplicateStat):
		return http.StatusConflict
	case errors.Is(err, gnosis.ErrDateOutOfRange),
		errors.Is(err, gnosis.ErrRangeTooLarge),
		errors.Is(err, gnosis.ErrEmptySeries),
		errors.Is(err, gnosis.ErrNoValidRun),
		errors.As(err, &formatErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	sendResponse(w, status, body)
}

func sendError(w http.ResponseWriter, err error) {
	log.Debugf("Request failed: %v", err)
	sendJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

func sendBadRequest(w http.ResponseWriter, err error) {
	sendJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (h *handler) addStat(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.manager.AddStatSeries(name); err != nil {
		sendError(w, err)
		return
	}
	log.Printf("Added statistic series %q", name)
	sendJSON(w, http.StatusCreated, statSeries{Stat: name, Entries: []seriesEntry{}})
}

func (h *handler) getStat(w http.ResponseWriter, r *http.Request) {
	d, err := parseDateParam(r)
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	name := chi.URLParam(r, "name")
	value, err := h.manager.GetStat(name, d)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, statValue{
		Stat:  name,
		Date:  d.Format(dateParamFormat),
		Value: value,
	})
}

func (h *handler) updateStat(w http.ResponseWriter, r *http.Request) {
	d, err := parseDateParam(r)
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendBadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	name := chi.URLParam(r, "name")
	if err := h.manager.UpdateStat(name, d, req.Value); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, statValue{
		Stat:  name,
		Date:  d.Format(dateParamFormat),
		Value: req.Value,
	})
}

func (h *handler) getSeries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	series, err := h.manager.GetStatSeries(name)
	if err != nil {
		sendError(w, err)
		return
	}
	resp := statSeries{Stat: name, Entries: make([]seriesEntry, 0, len(series))}
	for _, entry := range series {
		resp.Entries = append(resp.Entries, seriesEntry{
			Date:  entry.Date.Format(dateParamFormat),
			Value: entry.Value,
		})
	}
	if len(series) > 0 {
		resp.Start = series[0].Date.Format(dateParamFormat)
	}
	sendJSON(w, http.StatusOK, resp)
}

func (h *handler) getStatStart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	start, err := h.manager.GetStatStart(name)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, statStart{
		Stat:  name,
		Start: start.Format(dateParamFormat),
	})
}

func (h *handler) repair(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.FixLabels(); err != nil {
		sendError(w, err)
		return
	}
	log.Info("Repaired date labels")
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Reload(); err != nil {
		sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
