package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/core"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/logger"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	table := []dataset.Employee{
		{ID: 1, FullName: "Alice Martins", Department: "Engineering", Role: "Dev", Level: "Senior",
			Sex: "F", Age: 35, BaseSalary: 12000, TotalMonthlyCost: 17380, Rating: 4.5,
			HireDate: time.Date(2018, 7, 1, 0, 0, 0, 0, time.UTC), Status: dataset.StatusActive},
		{ID: 2, FullName: "Bruno Costa", Department: "Sales", Role: "AE", Level: "Mid",
			Sex: "M", Age: 29, BaseSalary: 8000, TotalMonthlyCost: 8000, Rating: 3.8,
			HireDate: time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), Status: dataset.StatusActive},
	}
	reports := core.NewReportService(table, logger.NewTestLogger(t))
	return NewServer(reports, logger.NewTestLogger(t))
}

func TestDashboardPage(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "Workforce Overview")
	assert.Contains(t, body, "Active Headcount")
	assert.Contains(t, body, "Alice Martins")
	assert.Contains(t, body, "headcount_by_department")
	assert.Contains(t, body, "/api/export?format=csv")
}

func TestDashboardPage_Filtered(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("GET", "/?department=Sales", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Bruno Costa")
	assert.NotContains(t, body, "<td class=\"py-2 pr-4 text-white\">Alice Martins</td>")
	// Filter options still cover the full table.
	assert.Contains(t, body, "Engineering")
}

func TestDashboardPage_EmptyView(t *testing.T) {
	s := testServer(t)
	// min above max degrades to an empty view, not an error page.
	req := httptest.NewRequest("GET", "/?min_age=60&max_age=20", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No employees match")
}

func TestDashboardPage_NotFound(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenderPage_UnknownTemplate(t *testing.T) {
	w := httptest.NewRecorder()
	renderPage(w, "missing", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "unknown page"))
}
