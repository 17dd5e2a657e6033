// Package ranking scores many resumes against one job and orders the results.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/fitscore/internal/assessor"
	"github.com/spigell/fitscore/internal/scoring"
)

const (
	DefaultMaxSize     = 25
	DefaultConcurrency = 4
)

var (
	// ErrEmptyBatch is returned when there is nothing to score.
	ErrEmptyBatch = errors.New("batch has no resumes")
	// ErrBatchTooLarge is returned when a batch exceeds the configured size.
	ErrBatchTooLarge = errors.New("batch is too large")
)

// ScoreFunc scores one resume against the batch job. It must not fail.
type ScoreFunc func(ctx context.Context, resume assessor.ResumeRecord) scoring.Outcome

// Config limits a batch.
type Config struct {
	MaxSize     int `mapstructure:"max-size" validate:"gte=0,lte=100"`
	Concurrency int `mapstructure:"concurrency" validate:"gte=0,lte=32"`
}

// Result is one ranked resume.
type Result struct {
	Rank      int             `json:"rank"`
	Candidate string          `json:"candidate"`
	Name      string          `json:"name,omitempty"`
	File      string          `json:"file,omitempty"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Outcome   scoring.Outcome `json:"outcome"`
	ScoredAt  time.Time       `json:"scored_at"`
}

// Batch is the ranked outcome of scoring many resumes against one job.
type Batch struct {
	ID       string    `json:"batch_id"`
	JobTitle string    `json:"job_title"`
	Total    int       `json:"total"`
	Results  []Result  `json:"results"`
	ScoredAt time.Time `json:"scored_at"`
}

// Ranker runs batches.
type Ranker struct {
	score  ScoreFunc
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a ranker. Zero config values select the defaults.
func New(score ScoreFunc, cfg Config, logger *zap.Logger) *Ranker {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ranker{
		score:  score,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Rank scores every resume concurrently, then sorts by overall score, highest first.
// Sorting happens only after every resume has been scored.
func (r *Ranker) Rank(ctx context.Context, job assessor.JobRecord, resumes []assessor.ResumeRecord) (*Batch, error) {
	if len(resumes) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(resumes) > r.cfg.MaxSize {
		return nil, fmt.Errorf("%w: %d resumes, maximum is %d", ErrBatchTooLarge, len(resumes), r.cfg.MaxSize)
	}

	batch := &Batch{
		ID:       r.newID(),
		JobTitle: job.Title,
		Total:    len(resumes),
		Results:  make([]Result, len(resumes)),
		ScoredAt: r.now().UTC(),
	}

	log := r.logger.With(zap.String("batch_id", batch.ID))
	log.Info("scoring batch",
		zap.Int("resumes", len(resumes)),
		zap.Int("concurrency", r.cfg.Concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, resume := range resumes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcome := r.score(gctx, resume)
			batch.Results[i] = Result{
				Candidate: resume.DisplayName(),
				Name:      strings.TrimSpace(resume.CandidateName),
				File:      resume.FileName,
				Email:     resume.Email,
				Phone:     resume.Phone,
				Outcome:   outcome,
				ScoredAt:  r.now().UTC(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score batch %s: %w", batch.ID, err)
	}

	sortResults(batch.Results)

	log.Info("batch scored", zap.Int("resumes", len(batch.Results)))
	return batch, nil
}

func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Outcome.OverallScore != results[j].Outcome.OverallScore {
			return results[i].Outcome.OverallScore > results[j].Outcome.OverallScore
		}
		return results[i].Candidate < results[j].Candidate
	})

	for i := range results {
		results[i].Rank = i + 1
	}
}
