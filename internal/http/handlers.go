package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"expenses/internal/core"
	"expenses/internal/registry"
	"expenses/internal/report"
)

// expenseRequest carries either a raw message or the four form fields plus
// the open period, which get composed into a message exactly like the
// desktop form did.
type expenseRequest struct {
	Message     string `json:"message"`
	Day         string `json:"day"`
	Value       string `json:"value"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Month       string `json:"month"`
	Year        string `json:"year"`
}

func decodeExpenseRequest(r *http.Request) (expenseRequest, error) {
	var req expenseRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("decode json body: %w", err)
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("parse form: %w", err)
	}
	req.Message = r.PostForm.Get("message")
	req.Day = r.PostForm.Get("day")
	req.Value = r.PostForm.Get("value")
	req.Category = r.PostForm.Get("category")
	req.Description = r.PostForm.Get("description")
	req.Month = r.PostForm.Get("month")
	req.Year = r.PostForm.Get("year")
	return req, nil
}

// message returns the raw message, composing one from the form fields when
// no message was sent directly.
func (req expenseRequest) message() (string, error) {
	if strings.TrimSpace(req.Message) != "" {
		return req.Message, nil
	}
	name, ok := registry.CanonicalMonth(strings.TrimSpace(req.Month))
	if !ok {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidMonth, req.Month)
	}
	n, _ := registry.MonthNumber(name)
	date := fmt.Sprintf("%s/%d/%s", strings.TrimSpace(req.Day), n, strings.TrimSpace(req.Year))
	return fmt.Sprintf("%s; %s; %s; %s", date, req.Value, req.Category, req.Description), nil
}

func parseExpenseRequest(r *http.Request) (core.Record, error) {
	req, err := decodeExpenseRequest(r)
	if err != nil {
		return core.Record{}, err
	}
	msg, err := req.message()
	if err != nil {
		return core.Record{}, err
	}
	return core.Parse(msg)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrBadFormat, core.ErrInvalidDate, core.ErrInvalidMonth,
		core.ErrInvalidYear, core.ErrInvalidDay, core.ErrInvalidValue,
		core.ErrInvalidCategory, core.ErrEmptyDescription,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type recordResponse struct {
	Month       string `json:"month"`
	Year        string `json:"year"`
	Day         string `json:"day"`
	Category    string `json:"category"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func toRecordResponse(r core.Record) recordResponse {
	return recordResponse{
		Month: r.Month, Year: r.Year, Day: r.Day,
		Category: r.Category, Value: r.Value, Description: r.Description,
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	rec, err := parseExpenseRequest(r)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"valid": false,
				"error": err.Error(),
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.Add(r.Context(), rec); err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"valid": false,
				"error": err.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store expense")
		return
	}

	s.statsCache.Purge()
	writeJSON(w, http.StatusCreated, map[string]any{
		"valid":  true,
		"record": toRecordResponse(rec),
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	rec, err := parseExpenseRequest(r)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"valid": false,
				"error": err.Error(),
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := s.service.Delete(r.Context(), rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	if deleted {
		s.statsCache.Purge()
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// periodParams extracts and validates the (month, year) pair, defaulting to
// the current period. Month accepts a canonical name or a 1-12 number; years
// outside the registry span are rejected before touching the store.
func periodParams(q url.Values) (month, year string, err error) {
	now := time.Now()

	month = strings.TrimSpace(q.Get("month"))
	switch {
	case month == "":
		month, _ = registry.MonthName(int(now.Month()))
	default:
		if n, numErr := strconv.Atoi(month); numErr == nil {
			name, ok := registry.MonthName(n)
			if !ok {
				return "", "", fmt.Errorf("month %d out of range", n)
			}
			month = name
		} else if name, ok := registry.CanonicalMonth(month); ok {
			month = name
		} else {
			return "", "", fmt.Errorf("unknown month %q", month)
		}
	}

	year = strings.TrimSpace(q.Get("year"))
	if year == "" {
		year = strconv.Itoa(now.Year())
	}
	if !registry.YearSupported(year) {
		return "", "", fmt.Errorf("year %q outside supported range %d-%d", year, registry.MinYear, registry.MaxYear)
	}

	return month, year, nil
}

type entryResponse struct {
	Day         string `json:"day"`
	Category    string `json:"category"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.service.ListPeriod(r.Context(), month, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	report.SortEntries(entries, report.OrderFromString(r.URL.Query().Get("sort")))

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, e := range entries {
			fmt.Fprintln(w, report.FormatEntry(e))
		}
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			Day: e.Day, Category: e.Category, Value: e.Value, Description: e.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":   month,
		"year":    year,
		"entries": out,
	})
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

func (s *Server) handlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.service.ListPeriod(r.Context(), month, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read expenses")
		return
	}

	totals, err := report.PeriodTotals(entries)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate expenses")
		return
	}

	out := make([]categoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalResponse{
			Category: ct.Name,
			Total:    ct.Total.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":  month,
		"year":   year,
		"totals": out,
	})
}

type categoryStatResponse struct {
	Category string  `json:"category"`
	Mean     string  `json:"mean"`
	StdDev   float64 `json:"stddev"`
}

type cumulativeResponse struct {
	NoData     bool                   `json:"no_data"`
	Periods    int                    `json:"periods,omitempty"`
	Categories []categoryStatResponse `json:"categories,omitempty"`
}

func (s *Server) handleCumulativeSummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := month + "|" + year
	if cached, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	periods, err := s.service.CumulativeUntil(r.Context(), month, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read expenses")
		return
	}

	stats, err := report.CumulativeStats(periods)
	if errors.Is(err, report.ErrNoData) {
		writeJSON(w, http.StatusOK, cumulativeResponse{NoData: true})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate expenses")
		return
	}

	resp := cumulativeResponse{Periods: len(periods)}
	for _, st := range stats {
		resp.Categories = append(resp.Categories, categoryStatResponse{
			Category: st.Name,
			Mean:     st.Mean.StringFixed(2),
			StdDev:   st.StdDev,
		})
	}

	s.statsCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}
