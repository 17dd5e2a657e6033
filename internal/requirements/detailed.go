package requirements

import (
	"github.com/spigell/fitscore/internal/features"
)

// Detailed runs the full feature extractor over the job description.
type Detailed struct {
	extractor *features.Extractor
}

// NewDetailed creates the strategy. A nil extractor uses an empty vocabulary.
func NewDetailed(extractor *features.Extractor) *Detailed {
	if extractor == nil {
		extractor = features.NewExtractor(nil)
	}
	return &Detailed{extractor: extractor}
}

func (*Detailed) Name() string { return StrategyDetailed }

func (d *Detailed) Extract(jobDescription string) Requirements {
	set := d.extractor.Extract(jobDescription)

	return Requirements{
		Strategy:        StrategyDetailed,
		RequiredSkills:  set.TechnicalSkills.Sorted(),
		PreferredSkills: set.SoftSkills.Sorted(),
		ExperienceLevel: experienceLevel(set.ExperienceYears),
		ExperienceYears: set.ExperienceYears,
		Education:       set.Education.Sorted(),
		Keywords:        set.Keywords.Sorted(),
	}
}

func experienceLevel(years *int) string {
	switch {
	case years == nil:
		return "unspecified"
	case *years < 2:
		return "junior"
	case *years < 5:
		return "mid"
	default:
		return "senior"
	}
}
