package requirements

import (
	"regexp"
	"strings"
)

// coarsePatterns are the fixed skill categories: languages and frameworks,
// data stores, cloud and infrastructure.
var coarsePatterns = []*regexp.Regexp{
	regexp.MustCompile(`python|java|javascript|react|angular|vue|node\.js`),
	regexp.MustCompile(`sql|mysql|postgresql|mongodb`),
	regexp.MustCompile(`aws|azure|docker|kubernetes`),
}

// Coarse scans the job description with a few fixed patterns. It is cheap and imprecise:
// "javascript" yields "java". Repeated mentions count once, so "python python java"
// requires two skills and a python-only resume matches half of them, not two thirds.
type Coarse struct{}

func NewCoarse() *Coarse { return &Coarse{} }

func (*Coarse) Name() string { return StrategyCoarse }

func (*Coarse) Extract(jobDescription string) Requirements {
	text := strings.ToLower(jobDescription)

	var found []string
	for _, pattern := range coarsePatterns {
		found = append(found, pattern.FindAllString(text, -1)...)
	}

	education := []string{}
	if strings.Contains(text, "bachelor") {
		education = append(education, "bachelor")
	}

	return Requirements{
		Strategy:        StrategyCoarse,
		RequiredSkills:  MergeSkills(found, nil, MaxRequiredSkills),
		PreferredSkills: []string{},
		ExperienceLevel: "mid",
		Education:       education,
		Keywords:        []string{},
	}
}
