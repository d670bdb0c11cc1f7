package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/internal/domain/panchanga"
)

type stubService struct {
	lastReq   panchanga.Request
	lastLimit int
	resp      panchanga.Response
	entries   []panchanga.HistoryEntry
	err       error
}

func (s *stubService) Compute(_ context.Context, req panchanga.Request) (panchanga.Response, error) {
	s.lastReq = req
	return s.resp, s.err
}

func (s *stubService) History(_ context.Context, limit int) ([]panchanga.HistoryEntry, error) {
	s.lastLimit = limit
	return s.entries, s.err
}

func run(t *testing.T, svc panchanga.Service, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(func(context.Context) (panchanga.Service, error) { return svc, nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleResponse() panchanga.Response {
	var resp panchanga.Response
	resp.Datetime = "2025-03-28T14:00:00Z"
	resp.Timezone = "UTC"
	resp.Times.Sunrise = "2025-03-28T05:46:00Z"
	resp.Times.Sunset = "2025-03-28T18:27:00Z"
	resp.Vara.Name = "Friday"
	resp.Vara.Sanskrit = "Shukravara"
	resp.Vara.Favorability = elements.Favorable
	resp.Tithi.Number = 29
	resp.Tithi.Name = "Chaturdashi"
	resp.Tithi.Paksha = elements.Krishna
	resp.Karana.Number = 8
	resp.Karana.Name = "Shakuni"
	resp.Karana.Favorability = elements.Unfavorable
	return resp
}

func TestComputeTable(t *testing.T) {
	svc := &stubService{resp: sampleResponse()}
	out, err := run(t, svc, "compute", "--lat", "51.4769", "--lon", "-0.0005", "--datetime", "2025-03-28T14:00:00Z")
	require.NoError(t, err)

	require.InDelta(t, 51.4769, svc.lastReq.Latitude, 1e-9)
	require.InDelta(t, -0.0005, svc.lastReq.Longitude, 1e-9)
	require.Equal(t, "2025-03-28T14:00:00Z", svc.lastReq.Datetime)
	require.Nil(t, svc.lastReq.Elevation)

	require.Contains(t, out, "Panchanga at 2025-03-28T14:00:00Z (UTC)")
	require.Contains(t, out, "Friday (Shukravara)")
	require.Contains(t, out, "Chaturdashi Krishna")
	require.Contains(t, out, "Shakuni")
	require.Contains(t, out, "sunrise 05:46")
}

func TestComputeJSONAndElevation(t *testing.T) {
	svc := &stubService{resp: sampleResponse()}
	out, err := run(t, svc, "compute", "--lat", "10", "--lon", "20", "--elevation", "350", "--tz", "Asia/Kolkata", "--json")
	require.NoError(t, err)

	require.NotNil(t, svc.lastReq.Elevation)
	require.InDelta(t, 350, *svc.lastReq.Elevation, 1e-9)
	require.Equal(t, "Asia/Kolkata", svc.lastReq.Timezone)

	var got panchanga.Response
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 29, got.Tithi.Number)
}

func TestComputeRequiresCoordinates(t *testing.T) {
	_, err := run(t, &stubService{}, "compute", "--lat", "10")
	require.Error(t, err)
}

func TestComputePropagatesServiceError(t *testing.T) {
	_, err := run(t, &stubService{err: errors.New("no sunrise")}, "compute", "--lat", "78", "--lon", "15")
	require.EqualError(t, err, "no sunrise")
}

func TestHistory(t *testing.T) {
	svc := &stubService{entries: []panchanga.HistoryEntry{{
		Instant:   time.Date(2025, 3, 28, 14, 0, 0, 0, time.UTC),
		Latitude:  51.4769,
		Longitude: -0.0005,
		Vara:      "Friday",
		Tithi:     "Chaturdashi",
		Nakshatra: "Purva Bhadrapada",
		Yoga:      "Shukla",
		Karana:    "Shakuni",
	}}}
	out, err := run(t, svc, "history", "-n", "3")
	require.NoError(t, err)
	require.Equal(t, 3, svc.lastLimit)
	require.Contains(t, out, "2025-03-28T14:00:00Z")
	require.Contains(t, out, "Purva Bhadrapada")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := run(t, &stubService{}, "history")
	require.NoError(t, err)
	require.Contains(t, out, "no computations recorded")
}
