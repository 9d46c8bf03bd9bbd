package linear

import (
	"math"
	"testing"

	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
)

func perfectLine(t *testing.T, slope, intercept float64, n int) *timeseries.Series {
	t.Helper()
	months := make([]float64, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		months[i] = float64(i + 1)
		values[i] = slope*months[i] + intercept
	}
	s, err := timeseries.New(months, values)
	if err != nil {
		t.Fatalf("building series: %v", err)
	}
	return s
}

func TestFit_PerfectLine(t *testing.T) {
	s := perfectLine(t, 3, 5, 10)

	m, err := New().Fit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(m.Slope-3) > 1e-9 {
		t.Errorf("expected slope 3, got %f", m.Slope)
	}
	if math.Abs(m.Intercept-5) > 1e-9 {
		t.Errorf("expected intercept 5, got %f", m.Intercept)
	}
	if got := m.Eval(11); math.Abs(got-38) > 1e-9 {
		t.Errorf("expected forecast 38 at month 11, got %f", got)
	}
	if math.Abs(m.Quality.R2-1) > 1e-9 {
		t.Errorf("expected R2 1 for perfect fit, got %f", m.Quality.R2)
	}
	if m.Quality.RMSE > 1e-9 {
		t.Errorf("expected zero RMSE for perfect fit, got %f", m.Quality.RMSE)
	}
}

func TestFit_Deterministic(t *testing.T) {
	s := perfectLine(t, -1.5, 40, 10)

	m1, err := New().Fit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m2, err := New().Fit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m1.Slope != m2.Slope || m1.Intercept != m2.Intercept {
		t.Errorf("two fits of the same data differ: %+v vs %+v", m1, m2)
	}
}

func TestFit_EvalIdempotent(t *testing.T) {
	s := perfectLine(t, 2, 1, 10)
	m, err := New().Fit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Eval(11) != m.Eval(11) {
		t.Error("evaluating the fitted model twice at the same month differs")
	}
}

func TestFit_DegenerateMonths(t *testing.T) {
	s, err := timeseries.New([]float64{4, 4, 4}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("building series: %v", err)
	}

	if _, err := New().Fit(s); err == nil {
		t.Fatal("expected error for equal month indices")
	}
}

func TestFit_NilSeries(t *testing.T) {
	if _, err := New().Fit(nil); err == nil {
		t.Fatal("expected error for nil series")
	}
}

func TestConfidenceInterval_ContainsPrediction(t *testing.T) {
	// noisy line so the residual variance is non-zero
	months := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	values := []float64{8.2, 10.9, 14.1, 16.8, 20.2, 22.9, 26.1, 28.8, 32.2, 34.9}
	s, err := timeseries.New(months, values)
	if err != nil {
		t.Fatalf("building series: %v", err)
	}

	m, err := New().Fit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ci := ConfidenceInterval(m, s, 11, 0.95)
	pred := m.Eval(11)
	if ci.Lower > pred || ci.Upper < pred {
		t.Errorf("interval [%f, %f] does not contain prediction %f", ci.Lower, ci.Upper, pred)
	}
	if ci.Upper <= ci.Lower {
		t.Errorf("expected a non-empty interval, got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestConfidenceInterval_WiderAtHigherLevel(t *testing.T) {
	months := []float64{1, 2, 3, 4, 5, 6}
	values := []float64{2.1, 3.9, 6.2, 7.8, 10.1, 11.9}
	s, err := timeseries.New(months, values)
	if err != nil {
		t.Fatalf("building series: %v", err)
	}

	m, err := New().Fit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ci95 := ConfidenceInterval(m, s, 7, 0.95)
	ci99 := ConfidenceInterval(m, s, 7, 0.99)
	if (ci99.Upper - ci99.Lower) <= (ci95.Upper - ci95.Lower) {
		t.Errorf("99%% interval should be wider than 95%%: %v vs %v", ci99, ci95)
	}
}
