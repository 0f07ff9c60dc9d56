package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/app"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	"github.com/noah-isme/enrollplus-admin/pkg/config"
	"github.com/noah-isme/enrollplus-admin/pkg/logger"
)

type apiEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *apiError              `json:"error"`
	Pagination map[string]int         `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func newTestServer(t *testing.T) (*gin.Engine, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Defaults()
	cfg.Mutations.SubmitDelay = 0
	a, err := app.New(cfg, zap.NewNop(), app.WithClock(clock.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))))
	require.NoError(t, err)

	r := gin.New()
	Register(r.Group(cfg.APIPrefix), a)
	return r, a
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var envelope apiEnvelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestListUsersWithFilters(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodGet, "/api/v1/users?status=active&page_size=5&page=2&sort_by=email&sort_order=desc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 17, env.Pagination["total_count"])
	assert.Equal(t, 4, env.Pagination["total_pages"])
	assert.Equal(t, 2, env.Pagination["page"])
	assert.Contains(t, env.Meta, "window")

	users := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, users, 5)
	for _, u := range users {
		assert.Equal(t, "active", u["status"])
	}
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestListRejectsBadQuery(t *testing.T) {
	r, _ := newTestServer(t)
	cases := map[string]string{
		"/api/v1/users?page_size=500":              "page_size",
		"/api/v1/users?page=zero":                  "page",
		"/api/v1/users?sort_by=name&sort_order=up": "sort_order",
		"/api/v1/users?sort_by=avatar":             "sort_by",
		"/api/v1/transactions?range=decade":        "range",
	}
	for path, field := range cases {
		rec, env := doRequest(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code, path)
		assert.Contains(t, env.Error.Details, field, path)
	}
}

func TestListClampsPageBeyondEnd(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodGet, "/api/v1/products?page=999", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, env.Pagination["page"])
}

func TestListClampsPageBeforeStart(t *testing.T) {
	r, _ := newTestServer(t)
	for _, page := range []string{"0", "-3"} {
		rec, env := doRequest(t, r, http.MethodGet, "/api/v1/products?page="+page, nil)
		require.Equal(t, http.StatusOK, rec.Code, page)
		assert.Equal(t, 1, env.Pagination["page"], page)
	}
}

func TestGetUnknownRecord(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodGet, "/api/v1/users/USR-999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCreateUser(t *testing.T) {
	r, a := newTestServer(t)

	rec, env := doRequest(t, r, http.MethodPost, "/api/v1/users", map[string]string{"name": "Ana", "email": "bad", "role": "root"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "role")

	rec, env = doRequest(t, r, http.MethodPost, "/api/v1/users", map[string]string{"name": "Ana Reyes", "email": "ana@example.com", "role": "Manager"})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "manager", user["role"])
	assert.Equal(t, "active", user["status"])
	assert.Len(t, a.Users.Snapshot(), 51)
}

func TestCreateResetsSessionView(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[map[string]interface{}](t, env.Data)
	id := session["id"].(string)

	rec, env = doRequest(t, r, http.MethodPatch, "/api/v1/sessions/"+id+"/views/products", map[string]interface{}{"page": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, env.Pagination["page"])

	rec, _ = doRequest(t, r, http.MethodPost, "/api/v1/products",
		map[string]interface{}{"name": "Desk Lamp", "category": "Home", "price": 25},
		logger.SessionHeader, id)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = doRequest(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/views/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Pagination["page"])
	assert.Equal(t, 51, env.Pagination["total_count"])
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodDelete, "/api/v1/users/USR-001", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	confirmation := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "PENDING", confirmation["status"])
	id := confirmation["id"].(string)

	rec, _ = doRequest(t, r, http.MethodGet, "/api/v1/users/USR-001", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doRequest(t, r, http.MethodPost, "/api/v1/confirmations/"+id, map[string]string{"decision": "confirm"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "COMMITTED", decode[map[string]interface{}](t, env.Data)["status"])

	rec, _ = doRequest(t, r, http.MethodGet, "/api/v1/users/USR-001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = doRequest(t, r, http.MethodPost, "/api/v1/confirmations/"+id, map[string]string{"decision": "cancel"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestCloseCourse(t *testing.T) {
	r, _ := newTestServer(t)

	rec, env := doRequest(t, r, http.MethodPost, "/api/v1/courses/OFFER-002/close", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unchanged", decode[map[string]interface{}](t, env.Data)["outcome"])

	rec, env = doRequest(t, r, http.MethodPost, "/api/v1/courses/OFFER-001/close", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	result := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "pending", result["outcome"])

	rec, env = doRequest(t, r, http.MethodGet, "/api/v1/courses?filter=open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, env.Pagination["total_count"])
}

func TestTransactionTotalsEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodGet, "/api/v1/transactions/totals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	totals := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, float64(8), totals["totalTransactions"])
	assert.Equal(t, float64(33000), totals["totalAmount"])
	assert.Equal(t, "₱33,000", env.Meta["formatted_amount"])
}

func TestExportEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	rec, _ := doRequest(t, r, http.MethodGet, "/api/v1/users/export?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="users-20260301-090000.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "17", rec.Header().Get("X-Export-Rows"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	rec, env := doRequest(t, r, http.MethodGet, "/api/v1/users/export?format=xlsx", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSessionSignOutFlow(t *testing.T) {
	r, a := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodPost, "/api/v1/sessions", map[string]string{"name": "Registrar"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[map[string]interface{}](t, env.Data)["id"].(string)

	rec, env = doRequest(t, r, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	confirmationID := decode[map[string]interface{}](t, env.Data)["id"].(string)

	rec, _ = doRequest(t, r, http.MethodPost, "/api/v1/confirmations/"+confirmationID, map[string]string{"decision": "confirm"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, a.Sessions.Active())

	rec, _ = doRequest(t, r, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	rec, env := doRequest(t, r, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[map[string]interface{}](t, env.Data)
	stats := overview["stats"].(map[string]interface{})
	assert.Equal(t, float64(50), stats["users"])
	assert.Equal(t, float64(4), stats["openEnrollments"])
}
