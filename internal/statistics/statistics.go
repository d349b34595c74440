// Package statistics summarises repeated estimates of the same quantity.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample holds repeated percentage estimates for one candidate number
type Sample struct {
	Number int
	Values []float64
}

// Add records one estimate
func (s *Sample) Add(v float64) {
	s.Values = append(s.Values, v)
}

// Len returns the number of estimates recorded
func (s *Sample) Len() int {
	return len(s.Values)
}

// Mean returns the arithmetic mean of the estimates
func (s *Sample) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the sample variance of the estimates
func (s *Sample) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// StdDev returns the sample standard deviation of the estimates
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.Values)))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Min returns the smallest estimate
func (s *Sample) Min() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return floats.Min(s.Values)
}

// Max returns the largest estimate
func (s *Sample) Max() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return floats.Max(s.Values)
}

// Spread returns Max - Min
func (s *Sample) Spread() float64 {
	return s.Max() - s.Min()
}

// Median returns the median estimate
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// String renders a one-line summary
func (s *Sample) String() string {
	lo, hi := s.ConfidenceInterval95()
	return fmt.Sprintf("%2d: mean %5.1f%% sd %4.2f range [%5.1f, %5.1f] ci95 [%5.1f, %5.1f]",
		s.Number, s.Mean(), s.StdDev(), s.Min(), s.Max(), lo, hi)
}

// Summary groups samples by candidate number
type Summary map[int]*Sample

// Add records probs as one run, creating samples on first sight
func (s Summary) Add(probs map[int]float64) {
	for n, p := range probs {
		sample, ok := s[n]
		if !ok {
			sample = &Sample{Number: n}
			s[n] = sample
		}
		sample.Add(p)
	}
}

// Numbers returns the candidate numbers in ascending order
func (s Summary) Numbers() []int {
	nums := make([]int, 0, len(s))
	for n := range s {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// MaxSpread returns the largest Max - Min across all candidates
func (s Summary) MaxSpread() float64 {
	worst := 0.0
	for _, sample := range s {
		worst = max(worst, sample.Spread())
	}
	return worst
}
