// Package assessor scores structured resume records against job records with help from
// a text generation backend, falling back to inventory counts when the backend fails.
package assessor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/ai"
	"github.com/spigell/fitscore/internal/features"
	"github.com/spigell/fitscore/internal/logger"
	"github.com/spigell/fitscore/internal/matching"
	"github.com/spigell/fitscore/internal/requirements"
	"github.com/spigell/fitscore/internal/scoring"
)

const (
	// FallbackModel is reported as the model of fallback outcomes.
	FallbackModel = "fallback"
	// AIConfidence is a fixed placeholder, not derived from any model signal.
	AIConfidence = 0.75
	// FallbackConfidence is reported by fallback outcomes.
	FallbackConfidence = 0.6

	DefaultTimeout = 30 * time.Second

	fallbackMatchedSkills = 5
)

// Weights of the AI-assisted path. Keywords are folded into skills here.
const (
	WeightSkills     = 0.40
	WeightExperience = 0.35
	WeightEducation  = 0.25
)

var fallbackReasoning = []string{
	"Automated scoring based on resume analysis",
	"Skills and experience inventory completed",
	"AI scoring temporarily unavailable",
}

// ErrNoGenerator is the fallback reason when no backend is configured.
var ErrNoGenerator = errors.New("generation backend is not configured")

//go:embed prompt.md
var promptTemplate string

// Config tunes the scorer. Zero values select the defaults.
type Config struct {
	Timeout      time.Duration
	Options      ai.Options
	Requirements requirements.Extractor
	// Extractor fills text-only resumes before scoring. Nil leaves them as they are.
	Extractor    *features.Extractor
}

// Scorer is the AI-assisted scorer. It is safe for concurrent use.
type Scorer struct {
	generator    ai.Generator
	requirements requirements.Extractor
	extractor    *features.Extractor
	options      ai.Options
	timeout      time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewScorer creates a scorer. A nil generator makes every call return the fallback outcome.
func NewScorer(generator ai.Generator, cfg Config, log *zap.Logger) *Scorer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Options == (ai.Options{}) {
		cfg.Options = ai.DefaultOptions()
	}
	if cfg.Requirements == nil {
		cfg.Requirements = requirements.NewCoarse()
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Scorer{
		generator:    generator,
		requirements: cfg.Requirements,
		extractor:    cfg.Extractor,
		options:      cfg.Options,
		timeout:      cfg.Timeout,
		logger:       log,
		now:          time.Now,
	}
}

// Score never fails: any error on the AI path is turned into the fallback outcome.
func (s *Scorer) Score(ctx context.Context, resume ResumeRecord, job JobRecord) scoring.Outcome {
	started := s.now()
	log := logger.WithCandidate(s.logger, resume.DisplayName())
	resume = FillFromText(resume, s.extractor)

	outcome, err := s.attempt(ctx, resume, job)
	if err != nil {
		log.Warn("ai scoring failed, using fallback", zap.Error(err))
		outcome = Fallback(resume, err.Error())
	}

	outcome.ProcessingTime = scoring.Seconds(s.now().Sub(started))
	log.Debug("resume scored", logger.ScoreFields(outcome.OverallScore, outcome.Model, outcome.Confidence)...)

	return outcome
}

func (s *Scorer) attempt(ctx context.Context, resume ResumeRecord, job JobRecord) (scoring.Outcome, error) {
	if s.generator == nil {
		return scoring.Outcome{}, ErrNoGenerator
	}

	extracted := s.requirements.Extract(job.Text())

	interpreted, err := s.interpret(ctx, job)
	if err != nil {
		return scoring.Outcome{}, err
	}

	required := requirements.MergeSkills(extracted.RequiredSkills, interpreted, requirements.MaxRequiredSkills)

	outcome := scoring.Outcome{
		Skills:     scoreSkills(resume.Skills, required),
		Experience: scoreExperience(resume.experienceYears()),
		Education:  scoreEducation(resume.Education),
		Keywords:   matching.NewResult(matching.StatusUnknown, 0),
		Confidence: AIConfidence,
		Model:      s.generator.Model(),
		Strategy:   scoring.StrategyAI,
	}

	outcome.OverallScore = combine(outcome.Skills.Score, outcome.Experience.Score, outcome.Education.Score)
	outcome.Category = scoring.CategoryOf(outcome.OverallScore)
	outcome.ReasoningPoints = scoring.Reasoning(scoring.ReasoningInput{
		SkillsScore:     outcome.Skills.Score,
		SkillsMatched:   len(outcome.Skills.Matched),
		SkillsMissing:   len(outcome.Skills.Missing),
		ExperienceScore: outcome.Experience.Score,
		EducationScore:  outcome.Education.Score,
	})

	return outcome, nil
}

// interpret asks the backend for the skills the job requires.
func (s *Scorer) interpret(ctx context.Context, job JobRecord) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(ctx, ai.Request{
		Prompt:  buildPrompt(job),
		Options: s.options,
	})
	if err != nil {
		return nil, fmt.Errorf("interpret job requirements: %w", err)
	}

	return parseRequiredSkills(raw)
}

func buildPrompt(job JobRecord) string {
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = "not specified"
	}
	prompt := strings.ReplaceAll(promptTemplate, "{{JOB_TITLE}}", title)
	return strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", job.Text())
}

func parseRequiredSkills(raw string) ([]string, error) {
	var parsed struct {
		RequiredSkills []string `json:"required_skills"`
	}
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse requirements response: %w", err)
	}
	if parsed.RequiredSkills == nil {
		return nil, errors.New("parse requirements response: required_skills is missing")
	}
	return parsed.RequiredSkills, nil
}

// scoreSkills credits each required skill contained in any resume skill.
func scoreSkills(resumeSkills, required []string) matching.DimensionResult {
	owned := make([]string, 0, len(resumeSkills))
	for _, skill := range resumeSkills {
		if skill = strings.ToLower(strings.TrimSpace(skill)); skill != "" {
			owned = append(owned, skill)
		}
	}

	if len(required) == 0 {
		result := matching.NewResult(matching.StatusUnknown, 50)
		result.Extra = features.NewSet(owned...).Sorted()
		return result
	}

	matched := make(features.Set)
	for _, req := range required {
		for _, skill := range owned {
			if strings.Contains(skill, req) {
				matched[req] = struct{}{}
				break
			}
		}
	}

	status := matching.StatusNotMatched
	switch {
	case matched.Len() == len(required):
		status = matching.StatusFullyMatched
	case matched.Len() > 0:
		status = matching.StatusPartiallyMatched
	}

	score := 80 * float64(matched.Len()) / float64(len(required))

	result := matching.NewResult(status, score)
	result.Matched = matched.Sorted()
	result.Missing = features.NewSet(required...).Difference(matched).Sorted()
	result.Extra = features.NewSet(owned...).Sorted()
	return result
}

func scoreExperience(years float64) matching.DimensionResult {
	var result matching.DimensionResult
	switch {
	case years >= 3:
		result = matching.NewResult(matching.StatusFullyMatched, 85)
	case years >= 1:
		result = matching.NewResult(matching.StatusPartiallyMatched, 65)
	default:
		result = matching.NewResult(matching.StatusNotMatched, 40)
	}

	result.EstimatedYears = years
	return result
}

func scoreEducation(entries []EducationEntry) matching.DimensionResult {
	degrees := make([]string, 0, len(entries))
	for _, entry := range entries {
		degrees = append(degrees, strings.ToLower(strings.TrimSpace(entry.Degree)))
	}

	if len(entries) == 0 {
		return matching.NewResult(matching.StatusNotMatched, 40)
	}

	result := matching.NewResult(matching.StatusMatched, 80)
	result.Matched = features.NewSet(degrees...).Sorted()
	return result
}

func combine(skills, experience, education float64) float64 {
	overall := skills*WeightSkills + experience*WeightExperience + education*WeightEducation
	return matching.Round2(matching.Clamp(overall))
}

// Fallback scores from inventory counts only. It cannot fail.
func Fallback(resume ResumeRecord, reason string) scoring.Outcome {
	skills := matching.NewResult(matching.StatusUnknown, min(100, float64(len(resume.Skills))*8))
	top := resume.Skills
	if len(top) > fallbackMatchedSkills {
		top = top[:fallbackMatchedSkills]
	}
	skills.Matched = features.NewSet(top...).Sorted()

	experience := matching.NewResult(matching.StatusUnknown, min(100, float64(len(resume.Experience))*15))
	experience.EstimatedYears = resume.experienceYears()

	educationScore := 40.0
	if len(resume.Education) > 0 {
		educationScore = 80
	}
	education := matching.NewResult(matching.StatusUnknown, educationScore)

	overall := combine(skills.Score, experience.Score, education.Score)

	return scoring.Outcome{
		OverallScore:    overall,
		Category:        scoring.CategoryOf(overall),
		Skills:          skills,
		Experience:      experience,
		Education:       education,
		Keywords:        matching.NewResult(matching.StatusUnknown, 0),
		ReasoningPoints: append([]string(nil), fallbackReasoning...),
		Confidence:      FallbackConfidence,
		Model:           FallbackModel,
		Strategy:        scoring.StrategyFallback,
		FallbackReason:  reason,
	}
}
