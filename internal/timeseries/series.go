// Package timeseries provides the series value type the fitters work on.
package timeseries

import (
	"errors"
	"math"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
)

// Series is an immutable monthly revenue series. Months are 1-based
// indices stored as float64 so they can feed the fitters directly.
type Series struct {
	Months []float64
	Values []float64
}

// New creates a series from parallel month and value slices.
func New(months, values []float64) (*Series, error) {
	if len(months) != len(values) {
		return nil, errors.New("months and values must have the same length")
	}
	if len(values) < 2 {
		return nil, errors.New("a series needs at least two observations")
	}
	m := make([]float64, len(months))
	v := make([]float64, len(values))
	copy(m, months)
	copy(v, values)
	return &Series{Months: m, Values: v}, nil
}

// FromObservations builds a series from observation records.
func FromObservations(obs []models.Observation) (*Series, error) {
	months := make([]float64, len(obs))
	values := make([]float64, len(obs))
	for i, o := range obs {
		months[i] = float64(o.Month)
		values[i] = o.Revenue
	}
	return New(months, values)
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the values.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// NextMonth returns the month index that follows the last observation.
func (s *Series) NextMonth() int {
	if len(s.Months) == 0 {
		return 1
	}
	return int(s.Months[len(s.Months)-1]) + 1
}
