package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/salaryboard/internal/export"
	"github.com/go-chi/chi/v5"
)

// yearMonth reads the optional year and month filters from the query.
func yearMonth(r *http.Request) (string, string) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("year")), strings.TrimSpace(q.Get("month"))
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := s.service.Current()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDatasetResponse(ds))
}

// handleHistory lists recent ingestions. It works before any dataset loads.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HistoryResponse{
		Entries: s.service.History(),
		Ingest:  s.service.IngestStatus(),
	})
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.service.Filters()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filters)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonth(r)
	dash, err := s.service.Dashboard(year, month)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDashboardResponse(dash))
}

func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Year(chi.URLParam(r, "year"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPeriodResponse(summary))
}

func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Period(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPeriodResponse(summary))
}

// handleRecords lists the parsed CSV rows for the selected filters with
// their original column names.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonth(r)
	header, records, err := s.service.RawRecords(year, month)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordsResponse{
		Header:  header,
		Count:   len(records),
		Records: records,
	})
}

// handleExport downloads the dashboard for the selected filters as XLSX.
// The workbook is rendered to memory first so failures still get an
// error response.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonth(r)
	dash, err := s.service.Dashboard(year, month)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDashboard(&buf, dash); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", attachment(export.Filename(year, month)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	buf.WriteTo(w)
}
