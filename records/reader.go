package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ReadRange loads the daily violation logs for the inclusive local date
// range. Days without a file are skipped, as are rows that do not parse.
func ReadRange(dir string, from, to time.Time) ([]Violation, error) {
	var out []Violation
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		path := filepath.Join(dir, day.Format("2006-01-02")+".csv")
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out = append(out, parseFile(data)...)
	}
	return out, nil
}

func parseFile(data []byte) []Violation {
	csvr := csv.NewReader(strings.NewReader(string(data)))
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil || len(rec) < 2 {
		return nil
	}

	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(h, col) {
				return i
			}
		}
		return -1
	}
	vID := idx("vehicle_id")
	rID := idx("route_id")
	lat := idx("latitude")
	lon := idx("longitude")
	spd := idx("speed")
	ts := idx("timestamp")
	if vID < 0 || rID < 0 || lat < 0 || lon < 0 || spd < 0 || ts < 0 {
		return nil
	}

	need := vID
	for _, i := range []int{rID, lat, lon, spd, ts} {
		if i > need {
			need = i
		}
	}

	var out []Violation
	for _, row := range rec[1:] {
		if len(row) <= need {
			continue
		}
		latF, err1 := strconv.ParseFloat(row[lat], 64)
		lonF, err2 := strconv.ParseFloat(row[lon], 64)
		spdF, err3 := strconv.ParseFloat(row[spd], 64)
		tsI, err4 := strconv.ParseInt(row[ts], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		out = append(out, Violation{
			VehicleID: row[vID],
			RouteID:   row[rID],
			Latitude:  latF,
			Longitude: lonF,
			SpeedKMH:  spdF,
			Timestamp: tsI,
		})
	}
	return out
}
