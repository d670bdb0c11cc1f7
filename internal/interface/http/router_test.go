package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vastr/panchanga/internal/domain/panchanga"
	"github.com/vastr/panchanga/internal/infra/config"
	apperrors "github.com/vastr/panchanga/pkg/errors"
)

func TestRouter_ComputeSuccess(t *testing.T) {
	resp := panchanga.Response{Datetime: "2025-03-28T14:00:00Z", Timezone: "Europe/London"}
	resp.Tithi.Number = 29
	resp.Tithi.Name = "Chaturdashi"
	svc := &stubService{
		computeFn: func(ctx context.Context, req panchanga.Request) (panchanga.Response, error) {
			require.Equal(t, "2025-03-28T14:00:00Z", req.Datetime)
			require.InDelta(t, 51.4769, req.Latitude, 1e-9)
			require.Nil(t, req.Elevation)
			return resp, nil
		},
	}

	body := `{"datetime":"2025-03-28T14:00:00Z","latitude":51.4769,"longitude":-0.0005}`
	recorder := performRequest(http.MethodPost, "/api/v1/panchanga", body, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))

	var got panchanga.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, resp, got)
}

func TestRouter_ComputeInvalidJSON(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/panchanga", `{"latitude":"north"}`, newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_ComputeErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input", apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be within [-90, 90]", nil), http.StatusBadRequest, "invalid_input"},
		{"provider failure", apperrors.Wrap(apperrors.CodeProviderFailure, "sun events unavailable", errors.New("boom")), http.StatusBadGateway, "provider_failure"},
		{"solver divergence", apperrors.Wrap(apperrors.CodeSolverDivergence, "tithi boundary did not converge", nil), http.StatusInternalServerError, "solver_divergence"},
		{"unclassified", errors.New("plain"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{
				computeFn: func(ctx context.Context, req panchanga.Request) (panchanga.Response, error) {
					return panchanga.Response{}, tc.err
				},
			}
			recorder := performRequest(http.MethodPost, "/api/v1/panchanga", `{"latitude":10,"longitude":10}`, newRouterUnderTest(t, svc))
			require.Equal(t, tc.status, recorder.Code)
			errBody := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.code, errBody["error"]["code"])
		})
	}
}

func TestRouter_HistoryPassesLimit(t *testing.T) {
	created := time.Date(2025, 3, 28, 14, 0, 0, 0, time.UTC)
	svc := &stubService{
		historyFn: func(ctx context.Context, limit int) ([]panchanga.HistoryEntry, error) {
			require.Equal(t, 5, limit)
			return []panchanga.HistoryEntry{{ID: "a", CreatedAt: created, Tithi: "Chaturdashi"}}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/panchanga/history?limit=5", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Entries []panchanga.HistoryEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Entries, 1)
	require.Equal(t, "a", got.Entries[0].ID)
	require.True(t, created.Equal(got.Entries[0].CreatedAt))
}

func TestRouter_HistoryEmptyIsArray(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/api/v1/panchanga/history", "", newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"entries":[]}`, recorder.Body.String())
}

func TestRouter_HistoryBadLimit(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/api/v1/panchanga/history?limit=many", "", newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_Healthz(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/healthz", "", newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestRouter_RequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, &stubService{}).Handler.ServeHTTP(rec, req)
	require.Equal(t, "trace-42", rec.Header().Get(requestIDHeader))
}

func TestRouter_RateLimitExceeded(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := NewRouter(cfg, NewHandler(&stubService{}, newTestLogger()))

	first := performRequest(http.MethodGet, "/api/v1/panchanga/history", "", server)
	require.Equal(t, http.StatusOK, first.Code)

	second := performRequest(http.MethodGet, "/api/v1/panchanga/history", "", server)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, second.Body.Bytes())["error"]["code"])
	require.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRouter_RetriesProviderFailure(t *testing.T) {
	calls := 0
	svc := &stubService{
		computeFn: func(ctx context.Context, req panchanga.Request) (panchanga.Response, error) {
			calls++
			if calls == 1 {
				return panchanga.Response{}, apperrors.Wrap(apperrors.CodeProviderFailure, "transient", nil)
			}
			return panchanga.Response{Timezone: "UTC"}, nil
		},
	}
	cfg := testConfig()
	cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: 2, BaseBackoff: time.Millisecond}
	server := NewRouter(cfg, NewHandler(svc, newTestLogger()))

	recorder := performRequest(http.MethodPost, "/api/v1/panchanga", `{"latitude":1,"longitude":1}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 2, calls)
	require.Equal(t, "2", recorder.Header().Get(retryAttemptHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://example.org"}
	server := NewRouter(cfg, NewHandler(&stubService{}, newTestLogger()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/panchanga", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func newRouterUnderTest(t *testing.T, svc panchanga.Service) *http.Server {
	t.Helper()
	return NewRouter(testConfig(), NewHandler(svc, newTestLogger()))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubService struct {
	computeFn func(ctx context.Context, req panchanga.Request) (panchanga.Response, error)
	historyFn func(ctx context.Context, limit int) ([]panchanga.HistoryEntry, error)
}

func (s *stubService) Compute(ctx context.Context, req panchanga.Request) (panchanga.Response, error) {
	if s.computeFn != nil {
		return s.computeFn(ctx, req)
	}
	return panchanga.Response{}, nil
}

func (s *stubService) History(ctx context.Context, limit int) ([]panchanga.HistoryEntry, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, limit)
	}
	return nil, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
