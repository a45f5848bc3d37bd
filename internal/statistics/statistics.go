// Package statistics accumulates running moments of a draw stream, used by
// the stream tool's summary mode and by distribution sanity checks.
package statistics

import (
	"fmt"
	"math"
)

// Statistics tracks the running moments and extremes of a stream of draws
type Statistics struct {
	Count int
	Sum   float64
	Sum2  float64 // Sum of squares for variance calculation
	Min   float64
	Max   float64
}

// Mean returns the arithmetic mean of all draws
func (s *Statistics) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance of all draws
func (s *Statistics) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Count)*mean*mean) / float64(s.Count-1)
}

// StdDev returns the sample standard deviation of all draws
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// Add incorporates a new draw into the statistics
func (s *Statistics) Add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.Sum += v
	s.Sum2 += v * v
}

// Summary formats the accumulated statistics as a single line
func (s *Statistics) Summary() string {
	return fmt.Sprintf("n=%d mean=%.6f sd=%.6f min=%.6f max=%.6f",
		s.Count, s.Mean(), s.StdDev(), s.Min, s.Max)
}
