package feed_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nopeusbotti/nopeusbotti/feed"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestClient_Positions tests fetching and normalizing an enveloped HFP feed
func TestClient_Positions(t *testing.T) {
	body := `[
		{"VP": {"desi":"570","dir":"1","oper":22,"veh":1167,
			"tst":"2026-08-24T05:15:32.123Z","tsi":1756012532,
			"spd":10.25,"hdg":82,"lat":60.295,"long":25.055,
			"oday":"2026-08-24","start":"08:15"}},
		{"VP": {"desi":"711","dir":"2","oper":22,"veh":801,
			"tsi":1756012533,"lat":60.201,"long":25.001,
			"oday":"2026-08-24","start":"08:02"}}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := feed.NewClient(srv.URL, 5*time.Second)
	positions, err := c.Positions(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch positions: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}

	p := positions[0]
	if p.Route != "570" || p.Direction != "1" {
		t.Errorf("Route/direction not normalized: %q %q", p.Route, p.Direction)
	}
	if p.VehicleID != "22/1167" {
		t.Errorf("Expected vehicle id 22/1167, got %q", p.VehicleID)
	}
	if !p.HasFix() {
		t.Fatal("First position should have a full fix")
	}
	if !almostEqual(*p.Lat, 60.295) || !almostEqual(*p.Lon, 25.055) {
		t.Errorf("Coordinates not normalized: %v %v", *p.Lat, *p.Lon)
	}
	if !almostEqual(p.SpeedKMH(), 10.25*3.6) {
		t.Errorf("Expected %.2f km/h, got %.2f", 10.25*3.6, p.SpeedKMH())
	}
	if p.Timestamp != 1756012532 {
		t.Errorf("Expected tsi timestamp, got %d", p.Timestamp)
	}
	if p.OperatingDay != "2026-08-24" || p.StartTime != "08:15" {
		t.Errorf("Journey fields not normalized: %q %q", p.OperatingDay, p.StartTime)
	}

	// second payload has no speed reading
	if positions[1].HasFix() {
		t.Error("Position without spd should not have a fix")
	}

	t.Logf("✓ Normalized %d HFP positions", len(positions))
}

// TestClient_UnwrappedPayloads tests feeds that publish bare payload objects
func TestClient_UnwrappedPayloads(t *testing.T) {
	body := `[{"desi":"570","dir":"2","oper":22,"veh":1167,
		"tst":"2026-08-24T05:15:32Z",
		"spd":5.0,"lat":60.29,"long":25.05,"oday":"2026-08-24","start":"08:15"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := feed.NewClient(srv.URL, 5*time.Second)
	positions, err := c.Positions(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch positions: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(positions))
	}

	p := positions[0]
	if p.Route != "570" {
		t.Errorf("Expected route 570, got %q", p.Route)
	}

	// without tsi the timestamp comes from tst
	want := time.Date(2026, 8, 24, 5, 15, 32, 0, time.UTC).Unix()
	if p.Timestamp != want {
		t.Errorf("Expected timestamp %d from tst, got %d", want, p.Timestamp)
	}

	t.Log("✓ Unwrapped payloads accepted")
}

// TestClient_HTTPError tests that a non-200 response fails the poll
func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := feed.NewClient(srv.URL, 5*time.Second)
	_, err := c.Positions(context.Background())
	if err == nil {
		t.Error("Expected error on HTTP 502")
	}

	t.Logf("✓ HTTP error surfaced: %v", err)
}

// TestClient_MalformedBody tests that an unparseable body fails the poll
func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := feed.NewClient(srv.URL, 5*time.Second)
	_, err := c.Positions(context.Background())
	if err == nil {
		t.Error("Expected error on malformed body")
	}

	t.Logf("✓ Malformed body surfaced: %v", err)
}
