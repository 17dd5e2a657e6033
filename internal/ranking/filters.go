package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spigell/fitscore/internal/scoring"
)

// base carries the enable state shared by all filters.
type base struct {
	enabled bool
	reason  string
}

func (b *base) Disable(reason string) {
	b.enabled = false
	b.reason = reason
}

func (b *base) IsEnabled() bool { return b.enabled }

type minScoreFilter struct {
	base
	min float64
}

// NewMinScore drops results scoring below threshold. It is disabled when threshold is not positive.
func NewMinScore(threshold float64) Filter {
	f := &minScoreFilter{min: threshold}
	f.enabled = threshold > 0
	if !f.enabled {
		f.reason = "minimum score is not set"
	}
	return f
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Validate() error { return validateScore(f.min) }

func (f *minScoreFilter) Apply(_ context.Context, results []Result) ([]Result, Step, error) {
	kept, step := keep(results, func(r Result) bool { return r.Outcome.OverallScore >= f.min })
	return kept, step, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"min": formatFloat(f.min)},
	}
}

type maxScoreFilter struct {
	base
	max float64
}

// NewMaxScore drops results scoring above threshold. It is disabled when threshold is not positive.
func NewMaxScore(threshold float64) Filter {
	f := &maxScoreFilter{max: threshold}
	f.enabled = threshold > 0
	if !f.enabled {
		f.reason = "maximum score is not set"
	}
	return f
}

func (f *maxScoreFilter) Name() string { return "max_score" }

func (f *maxScoreFilter) Validate() error { return validateScore(f.max) }

func (f *maxScoreFilter) Apply(_ context.Context, results []Result) ([]Result, Step, error) {
	kept, step := keep(results, func(r Result) bool { return r.Outcome.OverallScore <= f.max })
	return kept, step, nil
}

func (f *maxScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"max": formatFloat(f.max)},
	}
}

type categoryFilter struct {
	base
	categories map[scoring.Category]struct{}
}

// NewCategory keeps only results in the listed categories. It is disabled for an empty list.
func NewCategory(categories []string) Filter {
	f := &categoryFilter{categories: make(map[scoring.Category]struct{}, len(categories))}
	for _, c := range categories {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			f.categories[scoring.Category(c)] = struct{}{}
		}
	}
	f.enabled = len(f.categories) > 0
	if !f.enabled {
		f.reason = "no categories selected"
	}
	return f
}

func (f *categoryFilter) Name() string { return "category" }

func (f *categoryFilter) Validate() error {
	for c := range f.categories {
		switch c {
		case scoring.CategoryExcellent, scoring.CategoryGood, scoring.CategoryFair, scoring.CategoryPoor:
		default:
			return fmt.Errorf("unknown category: %s", c)
		}
	}
	return nil
}

func (f *categoryFilter) Apply(_ context.Context, results []Result) ([]Result, Step, error) {
	kept, step := keep(results, func(r Result) bool {
		_, ok := f.categories[r.Outcome.Category]
		return ok
	})
	return kept, step, nil
}

func (f *categoryFilter) Status() Status {
	selected := make([]string, 0, len(f.categories))
	for c := range f.categories {
		selected = append(selected, string(c))
	}
	sort.Strings(selected)

	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"categories": strings.Join(selected, ",")},
	}
}

type limitFilter struct {
	base
	limit int
}

// NewLimit keeps the first limit results, which are the best ones once ranked.
func NewLimit(limit int) Filter {
	f := &limitFilter{limit: limit}
	f.enabled = limit > 0
	if !f.enabled {
		f.reason = "limit is not set"
	}
	return f
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Validate() error { return nil }

func (f *limitFilter) Apply(_ context.Context, results []Result) ([]Result, Step, error) {
	initial := len(results)
	if len(results) > f.limit {
		results = results[:f.limit]
	}
	return results, Step{Initial: initial, Dropped: initial - len(results), Left: len(results)}, nil
}

func (f *limitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}

func validateScore(v float64) error {
	if v < 0 || v > 100 {
		return errors.New("score threshold must be within 0..100")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
