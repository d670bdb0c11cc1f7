package opentopo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastr/panchanga/internal/infra/memo"
)

func newTestServer(t *testing.T, status int, body string, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "/gebco2020", r.URL.Path)
		assert.Equal(t, "12.971600,77.594600", r.URL.Query().Get("locations"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestElevation(t *testing.T) {
	hits := 0
	srv := newTestServer(t, http.StatusOK, `{"status":"OK","results":[{"dataset":"gebco2020","elevation":920.5,"location":{"lat":12.9716,"lng":77.5946}}]}`, &hits)

	got, err := NewClient(srv.URL, "", time.Second).Elevation(context.Background(), 12.9716, 77.5946)
	require.NoError(t, err)
	require.Equal(t, 920.5, got)
}

func TestElevationNoData(t *testing.T) {
	hits := 0
	srv := newTestServer(t, http.StatusOK, `{"status":"OK","results":[{"dataset":"gebco2020","elevation":null}]}`, &hits)

	_, err := NewClient(srv.URL, "", time.Second).Elevation(context.Background(), 12.9716, 77.5946)
	require.ErrorIs(t, err, ErrNoData)
}

func TestElevationUpstreamError(t *testing.T) {
	hits := 0
	srv := newTestServer(t, http.StatusBadRequest, `{"status":"INVALID_REQUEST","error":"bad location"}`, &hits)

	_, err := NewClient(srv.URL, "", time.Second).Elevation(context.Background(), 12.9716, 77.5946)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
}

func TestCachedElevationHitsUpstreamOnce(t *testing.T) {
	hits := 0
	srv := newTestServer(t, http.StatusOK, `{"status":"OK","results":[{"elevation":920.5}]}`, &hits)
	cached := NewCached(NewClient(srv.URL, "", time.Second), memo.NewMemoryStore(), time.Hour)

	for i := 0; i < 3; i++ {
		got, err := cached.Elevation(context.Background(), 12.9716, 77.5946)
		require.NoError(t, err)
		require.Equal(t, 920.5, got)
	}
	require.Equal(t, 1, hits)
}
