// Package matching compares resume features against job features, one dimension at a time.
package matching

import "math"

// Status labels the outcome of a single dimension comparison.
type Status string

const (
	StatusUnknown          Status = "Unknown"
	StatusNotMatched       Status = "Not Matched"
	StatusPartiallyMatched Status = "Partially Matched"
	StatusFullyMatched     Status = "Fully Matched"
	// StatusMatched is used by binary dimensions such as education.
	StatusMatched Status = "Matched"
)

// Known reports whether the status carries information about the candidate.
func (s Status) Known() bool {
	return s != "" && s != StatusUnknown
}

// DimensionResult is the comparison result for one dimension.
// Matched, Missing and Extra are always sorted and never nil.
type DimensionResult struct {
	Status  Status   `json:"status"`
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`

	ResumeYears    *int    `json:"resume_years,omitempty"`
	JobYears       *int    `json:"jd_years,omitempty"`
	EstimatedYears float64 `json:"estimated_years,omitempty"`
}

// NewResult returns a result with empty item lists.
func NewResult(status Status, score float64) DimensionResult {
	return DimensionResult{
		Status:  status,
		Score:   Round2(Clamp(score)),
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp limits a score to [0, 100].
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
