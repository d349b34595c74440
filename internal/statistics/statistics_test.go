package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestSample_Empty(t *testing.T) {
	s := &Sample{}

	if s.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty sample, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty sample, got %f", s.Variance())
	}
	if s.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty sample, got %f", s.StdError())
	}
	if s.Median() != 0 {
		t.Errorf("Expected median of 0 for empty sample, got %f", s.Median())
	}
	if s.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty sample, got %f", s.Percentile(0.5))
	}
	if s.Min() != 0 || s.Max() != 0 {
		t.Errorf("Expected min/max of 0 for empty sample, got %f/%f", s.Min(), s.Max())
	}
}

func TestSample_SingleValue(t *testing.T) {
	s := &Sample{Number: 7}
	s.Add(12.5)

	if s.Len() != 1 {
		t.Errorf("Expected 1 value, got %d", s.Len())
	}
	if s.Mean() != 12.5 {
		t.Errorf("Expected mean of 12.5, got %f", s.Mean())
	}
	if s.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for single value, got %f", s.StdDev())
	}
	lo, hi := s.ConfidenceInterval95()
	if lo != 12.5 || hi != 12.5 {
		t.Errorf("Expected degenerate interval at 12.5, got [%f, %f]", lo, hi)
	}
}

func TestSample_MultipleValues(t *testing.T) {
	s := &Sample{}
	for _, v := range []float64{10, 12, 14, 16, 18} {
		s.Add(v)
	}

	if s.Mean() != 14 {
		t.Errorf("Expected mean of 14, got %f", s.Mean())
	}
	// Sample variance of 10..18 step 2 is 10
	if math.Abs(s.Variance()-10) > 1e-9 {
		t.Errorf("Expected variance of 10, got %f", s.Variance())
	}
	if s.Median() != 14 {
		t.Errorf("Expected median of 14, got %f", s.Median())
	}
	if s.Min() != 10 || s.Max() != 18 || s.Spread() != 8 {
		t.Errorf("Unexpected range: min %f max %f spread %f", s.Min(), s.Max(), s.Spread())
	}
	if got := s.Percentile(0.25); got != 12 {
		t.Errorf("Expected 25th percentile of 12, got %f", got)
	}

	lo, hi := s.ConfidenceInterval95()
	if lo >= 14 || hi <= 14 {
		t.Errorf("Expected interval around 14, got [%f, %f]", lo, hi)
	}
	if math.Abs((hi-14)-(14-lo)) > 1e-9 {
		t.Errorf("Expected symmetric interval, got [%f, %f]", lo, hi)
	}
}

func TestSample_EvenMedian(t *testing.T) {
	s := &Sample{Values: []float64{4, 1, 3, 2}}
	if s.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", s.Median())
	}
	// Median must not reorder the recorded values
	if s.Values[0] != 4 {
		t.Errorf("Median sorted the underlying values")
	}
}

func TestSample_String(t *testing.T) {
	s := &Sample{Number: 13, Values: []float64{20, 22}}
	out := s.String()
	if !strings.HasPrefix(out, "13:") {
		t.Errorf("Expected summary to start with the number, got %q", out)
	}
	if !strings.Contains(out, "21.0%") {
		t.Errorf("Expected mean in summary, got %q", out)
	}
}

func TestSummary(t *testing.T) {
	sum := Summary{}
	sum.Add(map[int]float64{1: 10, 2: 50})
	sum.Add(map[int]float64{1: 14, 2: 50})

	nums := sum.Numbers()
	if len(nums) != 2 || nums[0] != 1 || nums[1] != 2 {
		t.Fatalf("Expected numbers [1 2], got %v", nums)
	}
	if sum[1].Len() != 2 {
		t.Errorf("Expected 2 values for 1, got %d", sum[1].Len())
	}
	if sum[1].Mean() != 12 {
		t.Errorf("Expected mean of 12, got %f", sum[1].Mean())
	}
	if sum.MaxSpread() != 4 {
		t.Errorf("Expected max spread of 4, got %f", sum.MaxSpread())
	}
}
