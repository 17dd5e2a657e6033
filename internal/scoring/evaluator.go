package scoring

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/features"
	"github.com/spigell/fitscore/internal/logger"
	"github.com/spigell/fitscore/internal/matching"
)

// Evaluator is the rule-based scoring pipeline: extract features from both texts,
// compare them per dimension and aggregate.
type Evaluator struct {
	extractor *features.Extractor
	weights   Weights
	logger    *zap.Logger
	now       func() time.Time
}

// NewEvaluator creates an evaluator. A nil extractor uses an empty vocabulary.
func NewEvaluator(extractor *features.Extractor, weights Weights, log *zap.Logger) *Evaluator {
	if extractor == nil {
		extractor = features.NewExtractor(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Evaluator{
		extractor: extractor,
		weights:   weights,
		logger:    log,
		now:       time.Now,
	}
}

// Evaluate scores a resume text against a job description text. It never fails.
func (e *Evaluator) Evaluate(resumeText, jobText string) Report {
	started := e.now()

	resume := e.extractor.Extract(resumeText)
	job := e.extractor.Extract(jobText)

	outcome := Outcome{
		Skills:     matching.Skills(resume.TechnicalSkills, job.TechnicalSkills),
		Experience: matching.Experience(resume.ExperienceYears, job.ExperienceYears),
		Education:  matching.Education(resume.Education, job.Education),
		Keywords:   matching.Keywords(resume.Keywords, job.Keywords),
		Model:      RuleBasedModel,
		Strategy:   StrategyRules,
	}

	outcome.OverallScore = Aggregate(Components{
		Skills:     outcome.Skills.Score,
		Experience: outcome.Experience.Score,
		Education:  outcome.Education.Score,
		Keywords:   outcome.Keywords.Score,
	}, e.weights)
	outcome.Category = CategoryOf(outcome.OverallScore)

	outcome.ReasoningPoints = Reasoning(ReasoningInput{
		SkillsScore:     outcome.Skills.Score,
		SkillsMatched:   len(outcome.Skills.Matched),
		SkillsMissing:   len(outcome.Skills.Missing),
		ExperienceScore: outcome.Experience.Score,
		EducationScore:  outcome.Education.Score,
	})
	outcome.Confidence = ruleConfidence(outcome)
	outcome.ProcessingTime = Seconds(e.now().Sub(started))

	e.logger.Debug("rule-based evaluation finished",
		logger.ScoreFields(outcome.OverallScore, outcome.Model, outcome.Confidence)...,
	)

	return Report{
		Outcome:        outcome,
		ResumeFeatures: resume,
		JobFeatures:    job,
	}
}

// ruleConfidence is the share of dimensions whose status carries information.
func ruleConfidence(o Outcome) float64 {
	dimensions := []matching.DimensionResult{o.Skills, o.Experience, o.Education, o.Keywords}

	known := 0
	for _, d := range dimensions {
		if d.Status.Known() {
			known++
		}
	}

	return matching.Round2(float64(known) / float64(len(dimensions)))
}

// Seconds converts a duration to seconds rounded to milliseconds.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
