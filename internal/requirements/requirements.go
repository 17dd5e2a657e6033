// Package requirements derives what a job description asks for. Two strategies exist:
// a coarse regex scan feeding the AI-assisted scorer and a detailed one built on the
// feature extractor.
package requirements

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/fitscore/internal/features"
)

// Strategy names.
const (
	StrategyCoarse   = "coarse"
	StrategyDetailed = "detailed"
)

// MaxRequiredSkills caps the required skills the coarse strategy reports.
const MaxRequiredSkills = 10

// ErrUnknownStrategy is returned by New for an unsupported strategy name.
var ErrUnknownStrategy = errors.New("unknown requirement extraction strategy")

// Requirements is the structured view of a job description.
type Requirements struct {
	Strategy        string   `json:"strategy"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	ExperienceLevel string   `json:"experience_level"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Education       []string `json:"education_requirements"`
	Keywords        []string `json:"keywords"`
}

// Extractor is the job requirement extraction capability.
type Extractor interface {
	Name() string
	Extract(jobDescription string) Requirements
}

// New returns the strategy with the given name. The feature extractor is only used by
// the detailed strategy.
func New(name string, extractor *features.Extractor) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyCoarse:
		return NewCoarse(), nil
	case StrategyDetailed:
		return NewDetailed(extractor), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
}

// MergeSkills appends extra skills to base, lowercased and deduplicated, keeping order
// and stopping at limit. A non-positive limit means no cap.
func MergeSkills(base, extra []string, limit int) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))

	for _, list := range [][]string{base, extra} {
		for _, skill := range list {
			skill = strings.ToLower(strings.TrimSpace(skill))
			if skill == "" {
				continue
			}
			if _, ok := seen[skill]; ok {
				continue
			}
			if limit > 0 && len(merged) >= limit {
				return merged
			}
			seen[skill] = struct{}{}
			merged = append(merged, skill)
		}
	}

	return merged
}
