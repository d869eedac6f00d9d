package records_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nopeusbotti/nopeusbotti/records"
)

func localEpoch(year int, month time.Month, day, hour, min int) int64 {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local).Unix()
}

// TestWriter_HeaderWrittenOnce tests that a daily file gets exactly one
// header row regardless of how many records land in it
func TestWriter_HeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	w := records.NewWriter(dir)

	ts := localEpoch(2026, 8, 24, 8, 15)
	first := records.Violation{
		VehicleID: "22/1167", RouteID: "570",
		Latitude: 60.295, Longitude: 25.055,
		SpeedKMH: 37.1, Timestamp: ts,
	}
	second := first
	second.Timestamp = ts + 60
	second.SpeedKMH = 41.5

	if err := w.Append(first); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := w.Append(second); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	path := filepath.Join(dir, "2026-08-24.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Daily file missing: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "vehicle_id,route_id,latitude,longitude,speed,timestamp" {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "22/1167,570,60.295,25.055,37.1,") {
		t.Errorf("Unexpected first row: %q", lines[1])
	}

	t.Logf("✓ Daily file has one header and %d rows", len(lines)-1)
}

// TestWriter_SplitsByLocalDay tests that records land in the file named by
// their timestamp's local date
func TestWriter_SplitsByLocalDay(t *testing.T) {
	dir := t.TempDir()
	w := records.NewWriter(dir)

	v := records.Violation{
		VehicleID: "22/1167", RouteID: "570",
		Latitude: 60.295, Longitude: 25.055, SpeedKMH: 35,
	}

	v.Timestamp = localEpoch(2026, 8, 24, 23, 50)
	if err := w.Append(v); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	v.Timestamp = localEpoch(2026, 8, 25, 0, 10)
	if err := w.Append(v); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	for _, name := range []string{"2026-08-24.csv", "2026-08-25.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected daily file %s: %v", name, err)
		}
	}

	t.Log("✓ Records split across daily files")
}

// TestReadRange_RoundTrip tests that written records read back identically
func TestReadRange_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := records.NewWriter(dir)

	want := records.Violation{
		VehicleID: "22/1167", RouteID: "570",
		Latitude: 60.29512, Longitude: 25.05533,
		SpeedKMH: 37.8, Timestamp: localEpoch(2026, 8, 24, 8, 15),
	}
	if err := w.Append(want); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	got, err := records.ReadRange(dir, day, day)
	if err != nil {
		t.Fatalf("Failed to read range: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}
	if got[0] != want {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got[0], want)
	}

	t.Log("✓ Round trip preserves all fields")
}

// TestReadRange_SkipsMissingDaysAndBadRows tests tolerance of gaps and noise
func TestReadRange_SkipsMissingDaysAndBadRows(t *testing.T) {
	dir := t.TempDir()

	content := strings.Join([]string{
		"vehicle_id,route_id,latitude,longitude,speed,timestamp",
		"22/1167,570,60.295,25.055,37.8,1787175300",
		"22/1167,570,not-a-number,25.055,37.8,1787175301",
		"22/1167,570,60.295,25.055,37.8",
		"22/801,711,60.293,25.051,33.0,1787175400",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "2026-08-24.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	from := time.Date(2026, 8, 23, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 8, 26, 0, 0, 0, 0, time.Local)
	got, err := records.ReadRange(dir, from, to)
	if err != nil {
		t.Fatalf("Failed to read range: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 parseable records, got %d", len(got))
	}
	if got[1].VehicleID != "22/801" {
		t.Errorf("Unexpected second record: %+v", got[1])
	}

	t.Logf("✓ Missing days and bad rows skipped, kept %d records", len(got))
}

// TestReadRange_ColumnOrderIndependent tests that files with reordered
// columns still parse via the header
func TestReadRange_ColumnOrderIndependent(t *testing.T) {
	dir := t.TempDir()

	content := strings.Join([]string{
		"timestamp,speed,route_id,vehicle_id,longitude,latitude",
		"1787175300,37.8,570,22/1167,25.055,60.295",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "2026-08-24.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	got, err := records.ReadRange(dir, day, day)
	if err != nil {
		t.Fatalf("Failed to read range: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}
	if got[0].RouteID != "570" || got[0].Latitude != 60.295 || got[0].SpeedKMH != 37.8 {
		t.Errorf("Columns misread: %+v", got[0])
	}

	t.Log("✓ Header drives column mapping")
}
