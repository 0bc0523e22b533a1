// Package web renders the dashboard pages. It is a pure presentation
// layer: every page is a function of the query-string criteria and the
// report service's computed aggregates.
package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/api"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/core"
)

// Only this many rows are rendered in the HTML table; exports always carry
// the full filtered view.
const maxTableRows = 200

type Server struct {
	mux     *http.ServeMux
	reports *core.ReportService
	logger  *zap.Logger
}

func NewServer(reports *core.ReportService, logger *zap.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		reports: reports,
		logger:  logger,
	}
	s.mux.HandleFunc("GET /", s.handleDashboard)
	return s
}

// Handler returns the HTTP handler for mounting into the main router.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	criteria := api.ParseCriteria(r)
	view := s.reports.Employees(criteria)
	snapshot := s.reports.Summary(criteria)
	charts := s.reports.Charts(criteria)
	options := s.reports.Options()

	chartsJSON, err := json.Marshal(charts)
	if err != nil {
		s.logger.Error("failed to encode charts", zap.Error(err))
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	table := view
	truncated := false
	if len(table) > maxTableRows {
		table = table[:maxTableRows]
		truncated = true
	}

	data := map[string]any{
		"Snapshot":   snapshot,
		"Options":    options,
		"Criteria":   criteria,
		"Rows":       table,
		"RowCount":   len(view),
		"Truncated":  truncated,
		"ChartsJSON": template.JS(chartsJSON),
		"Query":      template.URL(r.URL.RawQuery),
	}
	renderPage(w, "dashboard", data)
}
