package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/fitscore/internal/features"
	"github.com/spigell/fitscore/internal/matching"
)

const (
	sampleResume = `I am a B.Tech graduate with 2 years of experience in Python and SQL.
I enjoy data analysis and good communication.`

	sampleJob = `We need 3 years of experience. Required: Python, SQL, AWS.
Candidates must hold a B.Tech or B.E degree. Cloud deployment and data analysis.`
)

func sampleExtractor() *features.Extractor {
	return features.NewExtractor(features.NewVocabulary(
		[]string{"python", "sql", "aws", "machine learning", "rest api", "excel"},
		[]string{"communication", "teamwork"},
		[]string{"deployment", "cloud", "data analysis"},
	))
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, Aggregate(Components{Skills: 100, Experience: 100, Education: 100, Keywords: 100}, DefaultWeights))
	assert.Equal(t, 0.0, Aggregate(Components{}, DefaultWeights))
	assert.Equal(t, 40.0, Aggregate(Components{Skills: 100}, DefaultWeights))
	assert.Equal(t, 50.0, Aggregate(Components{Skills: 50, Experience: 50, Education: 50, Keywords: 50}, DefaultWeights))
}

func TestParseWeights(t *testing.T) {
	t.Parallel()

	w, err := ParseWeights(map[string]float64{
		"skills": 0.5, "experience": 0.2, "education": 0.2, "keywords": 0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, Weights{Skills: 0.5, Experience: 0.2, Education: 0.2, Keywords: 0.1}, w)

	w, err = ParseWeights(DefaultWeights.Map())
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights, w)
}

func TestParseWeightsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    map[string]float64
		key    string
		target error
	}{
		{
			name:   "missing keywords",
			raw:    map[string]float64{"skills": 0.5, "experience": 0.3, "education": 0.2},
			key:    "keywords",
			target: ErrIncompleteWeights,
		},
		{
			name:   "empty mapping",
			raw:    map[string]float64{},
			key:    "skills",
			target: ErrIncompleteWeights,
		},
		{
			name:   "unknown key",
			raw:    map[string]float64{"skills": 0.4, "experience": 0.3, "education": 0.15, "keywords": 0.1, "luck": 0.05},
			key:    "luck",
			target: ErrUnknownWeight,
		},
		{
			name:   "negative weight",
			raw:    map[string]float64{"skills": -0.4, "experience": 0.3, "education": 0.15, "keywords": 0.15},
			key:    "skills",
			target: ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseWeights(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestAggregateWith(t *testing.T) {
	t.Parallel()

	score, err := AggregateWith(Components{Skills: 100, Experience: 100, Education: 100, Keywords: 100}, DefaultWeights.Map())
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)

	_, err = AggregateWith(Components{}, map[string]float64{"skills": 1})
	assert.ErrorIs(t, err, ErrIncompleteWeights)
}

func TestEvaluateEndToEnd(t *testing.T) {
	t.Parallel()

	report := NewEvaluator(sampleExtractor(), DefaultWeights, nil).Evaluate(sampleResume, sampleJob)

	assert.Equal(t, []string{"python", "sql"}, report.Skills.Matched)
	assert.Equal(t, []string{"aws"}, report.Skills.Missing)
	assert.InDelta(t, 66.67, report.Skills.Score, 0.001)
	assert.Equal(t, matching.StatusPartiallyMatched, report.Skills.Status)

	assert.Equal(t, matching.StatusPartiallyMatched, report.Experience.Status)
	assert.InDelta(t, 66.67, report.Experience.Score, 0.001)

	assert.Equal(t, matching.StatusMatched, report.Education.Status)
	assert.Equal(t, []string{"b.tech"}, report.Education.Matched)

	assert.Equal(t, []string{"data analysis"}, report.Keywords.Matched)
	assert.Equal(t, []string{"cloud", "deployment"}, report.Keywords.Missing)

	assert.Greater(t, report.OverallScore, 0.0)
	assert.Less(t, report.OverallScore, 100.0)
	assert.InDelta(t, 66.67, report.OverallScore, 0.01)
	assert.Equal(t, CategoryGood, report.Category)

	assert.Equal(t, RuleBasedModel, report.Model)
	assert.Equal(t, StrategyRules, report.Strategy)
	assert.Equal(t, 1.0, report.Confidence)
	assert.Equal(t, []string{
		"Limited skill alignment - missing 1 requirements",
		"Experience may need development for optimal fit",
		"Educational background meets basic requirements",
	}, report.ReasoningPoints)
}

func TestEvaluateEmptyTexts(t *testing.T) {
	t.Parallel()

	report := NewEvaluator(sampleExtractor(), DefaultWeights, nil).Evaluate("", "")

	assert.Equal(t, 0.0, report.OverallScore)
	assert.Equal(t, CategoryPoor, report.Category)
	assert.Equal(t, 0.0, report.Confidence)
	assert.Equal(t, matching.StatusUnknown, report.Skills.Status)
	assert.Equal(t, matching.StatusUnknown, report.Experience.Status)
	assert.Equal(t, matching.StatusUnknown, report.Education.Status)
	assert.Equal(t, matching.StatusUnknown, report.Keywords.Status)
	assert.Len(t, report.ReasoningPoints, MaxReasoningPoints)
}

func TestEvaluateProcessingTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(1500 * time.Millisecond)}

	evaluator := NewEvaluator(sampleExtractor(), DefaultWeights, nil)
	evaluator.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	report := evaluator.Evaluate(sampleResume, sampleJob)
	assert.Equal(t, 1.5, report.ProcessingTime)
}

func TestReportJSON(t *testing.T) {
	t.Parallel()

	report := NewEvaluator(sampleExtractor(), DefaultWeights, nil).Evaluate(sampleResume, sampleJob)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "job_fit_score")
	assert.Contains(t, decoded, "resume_features")
	assert.Contains(t, decoded, "jd_features")
	assert.NotContains(t, decoded, "fallback_reason")

	experience := decoded["experience"].(map[string]any)
	assert.Equal(t, 2.0, experience["resume_years"])
	assert.Equal(t, 3.0, experience["jd_years"])
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Category
	}{
		{score: 100, want: CategoryExcellent},
		{score: 80, want: CategoryExcellent},
		{score: 79.99, want: CategoryGood},
		{score: 60, want: CategoryGood},
		{score: 40, want: CategoryFair},
		{score: 39.5, want: CategoryPoor},
		{score: 0, want: CategoryPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryOf(tt.score), "score %v", tt.score)
	}
}

func TestReasoning(t *testing.T) {
	t.Parallel()

	got := Reasoning(ReasoningInput{SkillsScore: 80, SkillsMatched: 4, ExperienceScore: 85, EducationScore: 40})
	assert.Equal(t, []string{
		"Strong skill match with 4 key requirements",
		"Experience level appropriate for role requirements",
		"Educational qualifications may need review",
	}, got)

	assert.Len(t, TopReasons([]string{"a", "b", "c", "d"}), MaxReasoningPoints)
	assert.Len(t, TopReasons([]string{"a"}), 1)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	report := NewEvaluator(sampleExtractor(), DefaultWeights, nil).Evaluate(sampleResume, sampleJob)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "JOB FIT SCORE: ")
	assert.Contains(t, out, "[SKILLS]")
	assert.Contains(t, out, "  Matched     : python, sql")
	assert.Contains(t, out, "  Missing     : aws")
	assert.Contains(t, out, "  Resume years: 2")
	assert.Contains(t, out, "  JD years    : 3")
	assert.Contains(t, out, "  JD degs     : b.e, b.tech")
	assert.Contains(t, out, "[KEYWORDS]")
	assert.Contains(t, out, "  - Educational background meets basic requirements")
}

func TestWriteOutcome(t *testing.T) {
	t.Parallel()

	report := NewEvaluator(sampleExtractor(), DefaultWeights, nil).Evaluate(sampleResume, sampleJob)

	var buf bytes.Buffer
	require.NoError(t, WriteOutcome(&buf, report.Outcome))

	out := buf.String()
	assert.Contains(t, out, "JOB FIT SCORE: ")
	assert.Contains(t, out, "[EDUCATION]\n  Matched     : b.tech\n  Missing     : b.e\n  Extra       : -\n")
	assert.NotContains(t, out, "JD degs")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTextReturnsWriteError(t *testing.T) {
	t.Parallel()

	err := WriteText(failingWriter{}, Report{})
	assert.EqualError(t, err, "disk full")
}
