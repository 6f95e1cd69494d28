package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hadefuwa/osrs-wilderness/internal/app"
	"github.com/hadefuwa/osrs-wilderness/internal/app/dto"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/sampler"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/service"
	httphandler "github.com/hadefuwa/osrs-wilderness/internal/handlers/http"
)

type stubBroadcaster struct {
	mu         sync.Mutex
	broadcasts int
}

func (b *stubBroadcaster) BroadcastStatistics(stats *model.AggregateStats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broadcasts++
}

func (b *stubBroadcaster) Handler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// newTestServer builds a server over a seeded 200-record dataset with
// a live rebuild processor behind /api/regenerate.
func newTestServer(t *testing.T) (*httptest.Server, *service.SnapshotService, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	svc := service.NewSnapshotService(sampler.DefaultHotspots())
	if _, err := svc.Rebuild(ctx, 42, 200); err != nil {
		cancel()
		t.Fatalf("failed to build initial dataset: %v", err)
	}

	rebuildCh := make(chan *dto.RebuildRequest, 4)
	processor := app.NewRebuildProcessor(rebuildCh, svc, &stubBroadcaster{})
	go processor.Run(ctx)

	srv := httphandler.NewServer(":0", svc, &stubBroadcaster{}, rebuildCh)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, svc, cancel
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 from %s, got %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response from %s: %v", url, err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, cancel := newTestServer(t)
	defer cancel()

	var body map[string]string
	getJSON(t, ts.URL+"/health", &body)

	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts, _, cancel := newTestServer(t)
	defer cancel()

	var stats struct {
		TotalDeaths      int   `json:"total_deaths"`
		HourDistribution []int `json:"hour_distribution"`
		DayDistribution  []int `json:"day_distribution"`
		WealthRanges     []struct {
			Label string `json:"label"`
			Count int    `json:"count"`
		} `json:"wealth_ranges"`
	}
	getJSON(t, ts.URL+"/api/stats", &stats)

	if stats.TotalDeaths != 200 {
		t.Errorf("expected 200 deaths, got %d", stats.TotalDeaths)
	}
	if len(stats.HourDistribution) != 24 || len(stats.DayDistribution) != 7 {
		t.Errorf("unexpected distribution sizes: %d hours, %d days",
			len(stats.HourDistribution), len(stats.DayDistribution))
	}

	sum := 0
	for _, n := range stats.HourDistribution {
		sum += n
	}
	if sum != stats.TotalDeaths {
		t.Errorf("hour distribution sums to %d, expected %d", sum, stats.TotalDeaths)
	}

	if len(stats.WealthRanges) != 5 {
		t.Errorf("expected 5 wealth buckets, got %d", len(stats.WealthRanges))
	}
}

func TestRecordsEndpoint(t *testing.T) {
	ts, _, cancel := newTestServer(t)
	defer cancel()

	var dataset struct {
		Seed      int64   `json:"seed"`
		PlaneSize float64 `json:"plane_size"`
		Records   []struct {
			X       float64 `json:"x"`
			Y       float64 `json:"y"`
			Hotspot string  `json:"hotspot"`
		} `json:"records"`
	}
	getJSON(t, ts.URL+"/api/records", &dataset)

	if dataset.Seed != 42 {
		t.Errorf("expected seed 42, got %d", dataset.Seed)
	}
	if dataset.PlaneSize != 800 {
		t.Errorf("expected plane size 800, got %f", dataset.PlaneSize)
	}
	if len(dataset.Records) != 200 {
		t.Errorf("expected 200 records, got %d", len(dataset.Records))
	}
}

func TestHotspotsEndpoint(t *testing.T) {
	ts, _, cancel := newTestServer(t)
	defer cancel()

	var hotspots []struct {
		Name   string  `json:"name"`
		Radius float64 `json:"radius"`
	}
	getJSON(t, ts.URL+"/api/hotspots", &hotspots)

	if len(hotspots) != len(sampler.DefaultHotspots()) {
		t.Fatalf("expected %d hotspots, got %d", len(sampler.DefaultHotspots()), len(hotspots))
	}
	for i, h := range hotspots {
		if h.Name == "" || h.Radius <= 0 {
			t.Errorf("hotspot %d has invalid fields: %+v", i, h)
		}
	}
}

func TestRegenerateEndpoint(t *testing.T) {
	ts, svc, cancel := newTestServer(t)
	defer cancel()

	body := bytes.NewBufferString(`{"seed": 7, "count": 50}`)
	resp, err := http.Post(ts.URL+"/api/regenerate", "application/json", body)
	if err != nil {
		t.Fatalf("regenerate request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Seed  int64 `json:"seed"`
		Stats struct {
			TotalDeaths int `json:"total_deaths"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode regenerate response: %v", err)
	}

	if result.Seed != 7 {
		t.Errorf("expected seed 7, got %d", result.Seed)
	}
	if result.Stats.TotalDeaths != 50 {
		t.Errorf("expected 50 deaths after regenerate, got %d", result.Stats.TotalDeaths)
	}

	// The snapshot behind the API swapped as well.
	stats, err := svc.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.TotalDeaths != 50 {
		t.Errorf("expected current snapshot to hold 50 deaths, got %d", stats.TotalDeaths)
	}
}

func TestRegenerateMethodNotAllowed(t *testing.T) {
	ts, _, cancel := newTestServer(t)
	defer cancel()

	resp, err := http.Get(ts.URL + "/api/regenerate")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", resp.StatusCode)
	}
}

func TestDashboardServed(t *testing.T) {
	ts, _, cancel := newTestServer(t)
	defer cancel()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	page, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	if !strings.Contains(string(page), "Wilderness Death Map") {
		t.Error("dashboard page does not contain the expected title")
	}
}
