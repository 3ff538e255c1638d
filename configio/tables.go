package configio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/istellartech/OpenTsiolkovsky/table"
	"github.com/istellartech/OpenTsiolkovsky/vehicle"
)

// readNumericRows reads path as CSV, skipping the header row, and parses
// every remaining cell as float64. Blank trailing lines are ignored.
func readNumericRows(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	if _, err := r.Read(); err != nil { // header
		if err == io.EOF {
			return nil, errors.New("empty CSV file")
		}
		return nil, err
	}

	var rows [][]float64
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}
		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %q as float", cell)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadTimeSeriesCSV reads a two-column (x, y) table, one header row
// followed by the data pairs.
func loadTimeSeriesCSV(path string) (table.TimeSeries, error) {
	rows, err := readNumericRows(path)
	if err != nil {
		return table.TimeSeries{}, err
	}
	x := make([]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return table.TimeSeries{}, errors.Errorf("row %d has fewer than 2 columns", i)
		}
		x[i], y[i] = row[0], row[1]
	}
	return table.NewTimeSeries(x, y), nil
}

type cnTable struct {
	series  table.TimeSeries
	surface table.Surface2D
}

// loadCNTableCSV loads either a 2-column Mach/CN series or a Mach x |AoA|
// surface, distinguishing on row width: a row with exactly 2 columns is a
// 1D series, anything wider is a surface whose first column is the Mach
// grid and whose header row (after the first, ignored, cell) is the
// angle-of-attack grid.
func loadCNTableCSV(path string) (cnTable, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return cnTable{}, false, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return cnTable{}, false, err
	}

	if len(header) <= 2 {
		rows, err := readRemainingRows(r)
		if err != nil {
			return cnTable{}, false, err
		}
		x := make([]float64, len(rows))
		y := make([]float64, len(rows))
		for i, row := range rows {
			x[i], y[i] = row[0], row[1]
		}
		return cnTable{series: table.NewTimeSeries(x, y)}, false, nil
	}

	alphaGrid := make([]float64, len(header)-1)
	for i, cell := range header[1:] {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return cnTable{}, false, errors.Wrapf(err, "parsing angle-of-attack header %q", cell)
		}
		alphaGrid[i] = v
	}

	rows, err := readRemainingRows(r)
	if err != nil {
		return cnTable{}, false, err
	}
	machGrid := make([]float64, len(rows))
	z := make([][]float64, len(rows))
	for i, row := range rows {
		machGrid[i] = row[0]
		z[i] = append([]float64(nil), row[1:]...)
	}
	return cnTable{surface: table.NewSurface2D(machGrid, alphaGrid, z)}, true, nil
}

func readRemainingRows(r *csv.Reader) ([][]float64, error) {
	var rows [][]float64
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}
		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %q as float", cell)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadAttitudeCSV reads a (time, azimuth_deg, elevation_deg) table.
func loadAttitudeCSV(path string) ([]vehicle.AttitudeSample, error) {
	rows, err := readNumericRows(path)
	if err != nil {
		return nil, err
	}
	samples := make([]vehicle.AttitudeSample, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, errors.Errorf("row %d has fewer than 3 columns", i)
		}
		samples[i] = vehicle.AttitudeSample{TimeSec: row[0], AzimuthDeg: row[1], ElevationDeg: row[2]}
	}
	return samples, nil
}

// loadWindCSV reads an (altitude_m, speed_mps, direction_deg) table.
func loadWindCSV(path string) ([]vehicle.WindSample, error) {
	rows, err := readNumericRows(path)
	if err != nil {
		return nil, err
	}
	samples := make([]vehicle.WindSample, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, errors.Errorf("row %d has fewer than 3 columns", i)
		}
		samples[i] = vehicle.WindSample{AltitudeM: row[0], SpeedMps: row[1], DirectionDeg: row[2]}
	}
	return samples, nil
}
