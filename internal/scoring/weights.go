package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spigell/fitscore/internal/matching"
)

// Weight keys accepted by ParseWeights.
const (
	KeySkills     = "skills"
	KeyExperience = "experience"
	KeyEducation  = "education"
	KeyKeywords   = "keywords"
)

var (
	// ErrIncompleteWeights is returned when a weights mapping lacks one of the four dimensions.
	ErrIncompleteWeights = errors.New("weights must define skills, experience, education and keywords")
	// ErrUnknownWeight is returned for a key that is not a scoring dimension.
	ErrUnknownWeight = errors.New("unknown weight key")
	// ErrInvalidWeight is returned for negative or non-finite weights.
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")
)

// ConfigurationError reports scoring configuration that cannot be used.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("scoring configuration: %v", e.Err)
	}
	return fmt.Sprintf("scoring configuration: %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Weights are the dimension weights of the rule-based fit score.
type Weights struct {
	Skills     float64 `mapstructure:"skills" validate:"gte=0,lte=1"`
	Experience float64 `mapstructure:"experience" validate:"gte=0,lte=1"`
	Education  float64 `mapstructure:"education" validate:"gte=0,lte=1"`
	Keywords   float64 `mapstructure:"keywords" validate:"gte=0,lte=1"`
}

// DefaultWeights sum to 1.
var DefaultWeights = Weights{
	Skills:     0.40,
	Experience: 0.30,
	Education:  0.15,
	Keywords:   0.15,
}

// ParseWeights builds Weights from a dimension name mapping. All four keys are required.
func ParseWeights(raw map[string]float64) (Weights, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var w Weights
	for _, key := range keys {
		value := raw[key]
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			return Weights{}, &ConfigurationError{Key: key, Err: ErrInvalidWeight}
		}

		switch key {
		case KeySkills:
			w.Skills = value
		case KeyExperience:
			w.Experience = value
		case KeyEducation:
			w.Education = value
		case KeyKeywords:
			w.Keywords = value
		default:
			return Weights{}, &ConfigurationError{Key: key, Err: ErrUnknownWeight}
		}
	}

	for _, key := range []string{KeySkills, KeyExperience, KeyEducation, KeyKeywords} {
		if _, ok := raw[key]; !ok {
			return Weights{}, &ConfigurationError{Key: key, Err: ErrIncompleteWeights}
		}
	}

	return w, nil
}

// Map returns the weights keyed by dimension name.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		KeySkills:     w.Skills,
		KeyExperience: w.Experience,
		KeyEducation:  w.Education,
		KeyKeywords:   w.Keywords,
	}
}

// Components are the per-dimension scores, each a percentage.
type Components struct {
	Skills     float64
	Experience float64
	Education  float64
	Keywords   float64
}

// Aggregate combines the components into the overall fit score, rounded to 2 decimals.
func Aggregate(c Components, w Weights) float64 {
	total := c.Skills*w.Skills/100 +
		c.Experience*w.Experience/100 +
		c.Education*w.Education/100 +
		c.Keywords*w.Keywords/100

	return matching.Round2(total * 100)
}

// AggregateWith parses the weights mapping and aggregates the components with it.
func AggregateWith(c Components, raw map[string]float64) (float64, error) {
	w, err := ParseWeights(raw)
	if err != nil {
		return 0, err
	}
	return Aggregate(c, w), nil
}
