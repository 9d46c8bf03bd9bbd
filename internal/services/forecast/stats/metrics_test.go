package stats

import (
	"math"
	"testing"

	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
)

func TestEvaluate_PerfectFit(t *testing.T) {
	s, err := timeseries.New([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	if err != nil {
		t.Fatalf("building series: %v", err)
	}

	q := Evaluate(s, func(x float64) float64 { return 2*x + 1 })

	if q.SSE > 1e-12 {
		t.Errorf("expected zero SSE, got %g", q.SSE)
	}
	if q.RMSE > 1e-12 {
		t.Errorf("expected zero RMSE, got %g", q.RMSE)
	}
	if math.Abs(q.R2-1) > 1e-12 {
		t.Errorf("expected R2 1, got %f", q.R2)
	}
}

func TestEvaluate_ConstantPrediction(t *testing.T) {
	s, err := timeseries.New([]float64{1, 2, 3, 4}, []float64{1, 3, 5, 7})
	if err != nil {
		t.Fatalf("building series: %v", err)
	}

	// predicting the mean gives R2 = 0
	q := Evaluate(s, func(x float64) float64 { return 4 })

	if math.Abs(q.R2) > 1e-12 {
		t.Errorf("expected R2 0 for mean prediction, got %f", q.R2)
	}
	if q.RMSE <= 0 {
		t.Errorf("expected positive RMSE, got %f", q.RMSE)
	}
}

func TestEvaluate_ConstantSeries(t *testing.T) {
	s, err := timeseries.New([]float64{1, 2, 3}, []float64{5, 5, 5})
	if err != nil {
		t.Fatalf("building series: %v", err)
	}

	q := Evaluate(s, func(x float64) float64 { return 5 })

	// zero variance: R2 is defined as 0, not NaN
	if q.R2 != 0 {
		t.Errorf("expected R2 0 for constant series, got %f", q.R2)
	}
	if math.IsNaN(q.RMSE) {
		t.Error("RMSE must not be NaN")
	}
}

func TestEvaluate_NilSeries(t *testing.T) {
	q := Evaluate(nil, func(x float64) float64 { return 0 })
	if q.SSE != 0 || q.RMSE != 0 || q.R2 != 0 {
		t.Errorf("expected zero metrics for nil series, got %+v", q)
	}
}
