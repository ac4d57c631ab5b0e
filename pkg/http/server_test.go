package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes func(e *echo.Echo)

func (r routes) RegisterRoutes(e *echo.Echo) { r(e) }

type sampleRequest struct {
	Year  string `query:"year" validate:"required,numeric,len=4"`
	Email string `json:"email" validate:"omitempty,email"`
	Limit int    `query:"limit" default:"10"`
}

func newTestServer() *Server {
	return NewServer(Handlers{routes(func(e *echo.Echo) {
		e.GET("/app-error", func(c echo.Context) error {
			return AppErrorResponse(c, NotFoundError("No market value data available"))
		})
		e.GET("/wrapped", func(c echo.Context) error {
			return AppErrorResponse(c, errors.New("db exploded"))
		})
		e.GET("/returned", func(c echo.Context) error {
			return BadRequestError("bad input")
		})
		e.GET("/panic", func(c echo.Context) error {
			panic("boom")
		})
		e.GET("/validate", func(c echo.Context) error {
			var req sampleRequest
			if errs := ReadAndValidateRequest(c, &req); errs != nil {
				return ValidationErrorResponse(c, errs)
			}
			return SuccessResponse(c, req)
		})
	})})
}

func do(t *testing.T, s *Server, method, target string) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var body ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealthz(t *testing.T) {
	rec, _ := do(t, newTestServer(), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestErrorBodies(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		path   string
		status int
		code   string
		msg    string
	}{
		{"/app-error", http.StatusNotFound, "ERR_NOT_FOUND", "No market value data available"},
		{"/wrapped", http.StatusInternalServerError, "ERR_INTERNAL", "Something went wrong"},
		{"/returned", http.StatusBadRequest, "ERR_BAD_REQUEST", "bad input"},
		{"/panic", http.StatusInternalServerError, "ERR_INTERNAL", "Something went wrong"},
		{"/nope", http.StatusNotFound, "ERR_NOT_FOUND", "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, body := do(t, s, http.MethodGet, tt.path)
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}

func TestReadAndValidateRequest(t *testing.T) {
	s := newTestServer()

	rec, body := do(t, s, http.MethodGet, "/validate")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ERR_VALIDATION", body.Code)
	assert.Equal(t, "year is required", body.Error)

	rec, body = do(t, s, http.MethodGet, "/validate?year=20x4")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "year must be numeric", body.Error)

	rec, _ = do(t, s, http.MethodGet, "/validate?year=2020")
	require.Equal(t, http.StatusOK, rec.Code)
	var got sampleRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10, got.Limit)
}

func TestRelayResponse(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, RelayResponse(c, http.StatusBadRequest, []byte(`{"error":"invalid_grant"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_grant"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, RelayResponse(c, http.StatusBadRequest, []byte("gateway says no")))
	assert.True(t, strings.Contains(rec.Body.String(), "gateway says no"))
}

func TestBearerToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc.def")
	assert.Equal(t, "abc.def", BearerToken(e.NewContext(req, httptest.NewRecorder())))

	req.Header.Set(echo.HeaderAuthorization, "Basic xyz")
	assert.Empty(t, BearerToken(e.NewContext(req, httptest.NewRecorder())))
}
