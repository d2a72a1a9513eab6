package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// The "/" pattern also catches unknown paths.
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the fintrack API. Here are the available endpoints:",
		"endpoints": map[string]string{
			"/transactions":                 "GET all transactions",
			"/transactions/date_range":      "GET transactions within a date range (requires start_date and end_date query params)",
			"/transactions/category":        "GET transactions by category (requires category query param)",
			"/transactions/above_amount":    "GET transactions above an amount (requires min_amount query param)",
			"/transactions/monthly_summary": "GET monthly spending summary",
			"/transactions/keyword":         "GET transactions with a keyword in the description (requires keyword query param)",
		},
	})
}

func (s *Server) handleAllTransactions(w http.ResponseWriter, r *http.Request) {
	ts, err := s.store.SelectAll(r.Context())
	if err != nil {
		s.storeError(w, r, "select all", err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleDateRange(w http.ResponseWriter, r *http.Request) {
	start := strings.TrimSpace(r.URL.Query().Get("start_date"))
	end := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "both 'start_date' and 'end_date' are required")
		return
	}

	ts, err := s.store.SelectByDateRange(r.Context(), start, end)
	if err != nil {
		s.storeError(w, r, "select by date range", err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "'category' parameter is required")
		return
	}

	ts, err := s.store.SelectByCategory(r.Context(), category)
	if err != nil {
		s.storeError(w, r, "select by category", err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleAboveAmount(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("min_amount"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "'min_amount' parameter is required")
		return
	}
	min, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "'min_amount' must be a number")
		return
	}

	ts, err := s.store.SelectAboveAmount(r.Context(), min)
	if err != nil {
		s.storeError(w, r, "select above amount", err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.SelectMonthlySummary(r.Context())
	if err != nil {
		s.storeError(w, r, "select monthly summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "'keyword' parameter is required")
		return
	}

	ts, err := s.store.SelectByKeyword(r.Context(), keyword)
	if err != nil {
		s.storeError(w, r, "select by keyword", err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

// storeError logs a failed query and reports it to the caller. There is
// no retry at any layer.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "Store query failed", "op", op, "url", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "store access failed")
}
