package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/analytics"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/config"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/core"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/logger"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	db, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewTestLogger(t)
	table := []dataset.Employee{
		{ID: 1, FullName: "Alice Martins", Department: "Engineering", Role: "Dev", Level: "Senior",
			Sex: "F", Age: 35, BaseSalary: 12000, TotalMonthlyCost: 17380, Rating: 4.5,
			HireDate: time.Date(2018, 7, 1, 0, 0, 0, 0, time.UTC), Status: dataset.StatusActive},
		{ID: 2, FullName: "Bruno Costa", Department: "Sales", Role: "AE", Level: "Mid",
			Sex: "M", Age: 29, BaseSalary: 8000, TotalMonthlyCost: 8000, Rating: 3.8,
			HireDate: time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), Status: dataset.StatusActive},
	}
	reports := core.NewReportService(table, log)
	// No LLM client: chat replies degrade to the missing-credential note.
	chats := core.NewChatService(db, nil, reports, log)

	return NewRouter(NewAPIHandler(chats, reports, log), nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, router http.Handler) string {
	t.Helper()
	creds := map[string]string{"user_id": "tester", "password": "hunter22"}

	w := doJSON(t, router, "POST", "/api/signup", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

// ==========================
// Dataset Endpoint Tests
// ==========================

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListEmployees(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/employees", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count     int                `json:"count"`
		Employees []dataset.Employee `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Employees, 2)
}

func TestListEmployees_Filtered(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/employees?department=Sales", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count     int                `json:"count"`
		Employees []dataset.Employee `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Bruno Costa", resp.Employees[0].FullName)
}

func TestSummaryEndpoint(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/summary?department=Engineering", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap analytics.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Headcount)
	assert.Equal(t, 12000.0, snap.Payroll)
}

func TestChartsEndpoint(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/charts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var charts []analytics.ChartConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &charts))
	assert.Len(t, charts, 8)
}

func TestOptionsEndpoint(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/options", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var opts analytics.FilterOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Engineering", "Sales"}, opts.Departments)
}

// ==========================
// Export Endpoint Tests
// ==========================

func TestExport_CSVHeaders(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/export?format=csv&department=Sales", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "employees_filtered_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Bruno Costa")
	assert.NotContains(t, w.Body.String(), "Alice Martins")
}

func TestExport_DefaultsToCSV(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/export", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestExport_XLSX(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/export?format=xlsx", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/export?format=pdf", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==========================
// Auth & Chat Endpoint Tests
// ==========================

func TestSignupLoginFlow(t *testing.T) {
	router := testRouter(t)
	token := signupAndLogin(t, router)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := testRouter(t)
	signupAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/login", "", map[string]string{"user_id": "tester", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatRoutes_RequireAuth(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, "GET", "/api/chats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "GET", "/api/chats", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatFlow_MissingCredentialNote(t *testing.T) {
	router := testRouter(t)
	token := signupAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/chats", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, router, "POST", "/api/chats/"+created.ID+"/messages", token,
		map[string]string{"content": "how many employees do we have?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reply store.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, store.SenderSystem, reply.Sender)
	assert.Contains(t, reply.Content, "GEMINI_API_KEY")

	// The full log is visible in the chat details.
	w = doJSON(t, router, "GET", "/api/chats/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details struct {
		Messages []store.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.Len(t, details.Messages, 2)
	assert.Equal(t, store.SenderUser, details.Messages[0].Sender)
	assert.Equal(t, store.SenderSystem, details.Messages[1].Sender)
}

func TestPostMessage_UnknownChat(t *testing.T) {
	router := testRouter(t)
	token := signupAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/chats/does-not-exist/messages", token,
		map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMessage_EmptyContent(t *testing.T) {
	router := testRouter(t)
	token := signupAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/chats", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "POST", "/api/chats/"+created.ID+"/messages", token,
		map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamMessage_SSEFrames(t *testing.T) {
	router := testRouter(t)
	token := signupAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/chats", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "GET", "/api/chats/"+created.ID+"/stream?message=hello", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	// Without a credential there are no delta frames, only the final done
	// event carrying the stored system note.
	assert.NotContains(t, body, "event: delta")
	require.Contains(t, body, "event: done")

	dataLine := ""
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: ") {
			dataLine = strings.TrimPrefix(line, "data: ")
		}
	}
	require.NotEmpty(t, dataLine)
	var reply store.Message
	require.NoError(t, json.Unmarshal([]byte(dataLine), &reply))
	assert.Equal(t, store.SenderSystem, reply.Sender)
}

func TestStreamMessage_RequiresMessageParam(t *testing.T) {
	router := testRouter(t)
	token := signupAndLogin(t, router)

	w := doJSON(t, router, "POST", "/api/chats", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "GET", "/api/chats/"+created.ID+"/stream", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
