package table

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestTimeSeriesInterpolatesLinearly(t *testing.T) {
	s := NewTimeSeries([]float64{0, 10, 20}, []float64{0, 100, 100})
	if v := s.At(5); !floats.EqualWithinAbs(v, 50, 1e-9) {
		t.Fatalf("got %f want 50", v)
	}
}

func TestTimeSeriesClampsBelowDomain(t *testing.T) {
	s := NewTimeSeries([]float64{0, 10}, []float64{5, 15})
	if v := s.At(-100); v != 5 {
		t.Fatalf("got %f want 5", v)
	}
}

func TestTimeSeriesClampsAboveDomain(t *testing.T) {
	s := NewTimeSeries([]float64{0, 10}, []float64{5, 15})
	if v := s.At(1000); v != 15 {
		t.Fatalf("got %f want 15", v)
	}
}

func TestTimeSeriesExactSamplesReproduceValues(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{10, 20, 5, 40}
	s := NewTimeSeries(x, y)
	for i, xv := range x {
		if v := s.At(xv); !floats.EqualWithinAbs(v, y[i], 1e-12) {
			t.Fatalf("sample %d: got %f want %f", i, v, y[i])
		}
	}
}

func TestTimeSeriesSinglePointIsConstant(t *testing.T) {
	s := Constant(42)
	if v := s.At(-5); v != 42 {
		t.Fatalf("got %f want 42", v)
	}
	if v := s.At(1e6); v != 42 {
		t.Fatalf("got %f want 42", v)
	}
}

func TestTimeSeriesPanicsOnMismatchedLengths(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched x/y lengths")
		}
	}()
	NewTimeSeries([]float64{0, 1}, []float64{0})
}
