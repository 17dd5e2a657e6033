// Package scoring combines dimension results into a single fit score and describes it.
package scoring

import (
	"github.com/spigell/fitscore/internal/features"
	"github.com/spigell/fitscore/internal/matching"
)

// MaxReasoningPoints bounds Outcome.ReasoningPoints.
const MaxReasoningPoints = 3

// Strategy names the path that produced an outcome.
type Strategy string

const (
	StrategyRules    Strategy = "rules"
	StrategyAI       Strategy = "ai"
	StrategyFallback Strategy = "fallback"
)

// RuleBasedModel is reported as the model of outcomes built by the Evaluator.
const RuleBasedModel = "rule-based"

// Outcome is the result of scoring one resume against one job. Both the rule-based
// evaluator and the AI-assisted scorer return it. ProcessingTime is in seconds.
type Outcome struct {
	OverallScore float64  `json:"job_fit_score"`
	Category     Category `json:"category"`

	Skills     matching.DimensionResult `json:"skills"`
	Experience matching.DimensionResult `json:"experience"`
	Education  matching.DimensionResult `json:"education"`
	Keywords   matching.DimensionResult `json:"keywords"`

	ReasoningPoints []string `json:"reasoning_points"`
	Confidence      float64  `json:"confidence"`
	Model           string   `json:"model"`
	ProcessingTime  float64  `json:"processing_time"`
	Strategy        Strategy `json:"strategy"`
	FallbackReason  string   `json:"fallback_reason,omitempty"`
}

// Report is a rule-based outcome together with the features it was computed from.
type Report struct {
	Outcome
	ResumeFeatures features.FeatureSet `json:"resume_features"`
	JobFeatures    features.FeatureSet `json:"jd_features"`
}
