// Package dataset supplies the historical revenue observations: a fixed
// embedded ten-month series, or an override loaded from a CSV file.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
)

//go:embed revenue.csv
var defaultCSV []byte

// Default returns the embedded ten-month revenue series, mln RUB.
func Default() []models.Observation {
	obs, err := parse(bytes.NewReader(defaultCSV))
	if err != nil {
		// embedded data is fixed at build time
		panic("dataset: embedded revenue.csv is invalid: " + err.Error())
	}
	return obs
}

// FromCSV loads observations from a CSV file with "month,revenue" rows.
// A header row is detected and skipped; blank and NA values are ignored.
func FromCSV(path string) ([]models.Observation, error) {
	const op = "dataset.FromCSV"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	obs, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return obs, nil
}

func parse(r io.Reader) ([]models.Observation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var obs []models.Observation
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}

		monthStr := strings.TrimSpace(record[0])
		valueStr := strings.TrimSpace(record[1])

		if first {
			first = false
			// header row
			if _, err := strconv.Atoi(monthStr); err != nil {
				continue
			}
		}

		if valueStr == "" || valueStr == "NA" || valueStr == "NaN" {
			continue
		}

		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return nil, fmt.Errorf("bad month index %q: %w", monthStr, err)
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("bad revenue value %q: %w", valueStr, err)
		}

		obs = append(obs, models.Observation{Month: month, Revenue: value})
	}

	if len(obs) == 0 {
		return nil, errors.New("no valid observations found")
	}
	return obs, nil
}
