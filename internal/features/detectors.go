package features

import (
	"regexp"
	"strconv"
	"strings"
)

var reYears = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)

// ExperienceYears returns the largest "<n> years" claim in the raw text, or nil when there is none.
// Digits are stripped by normalization, so the raw text has to be scanned.
func ExperienceYears(raw string) *int {
	matches := reYears.FindAllStringSubmatch(strings.ToLower(raw), -1)

	var best *int
	for _, match := range matches {
		years, err := strconv.Atoi(match[1])
		if err != nil {
			// overflowing digit runs are not a plausible claim
			continue
		}
		if best == nil || years > *best {
			value := years
			best = &value
		}
	}

	return best
}

type degree struct {
	label    string
	synonyms []string
}

// degrees maps canonical labels to surface forms. Synonyms may contain punctuation,
// so they are searched in the raw text rather than in tokens.
var degrees = []degree{
	{label: "b.tech", synonyms: []string{"b.tech", "btech", "bachelor of technology"}},
	{label: "b.e", synonyms: []string{"b.e", "be", "bachelor of engineering"}},
	{label: "b.sc", synonyms: []string{"b.sc", "bsc", "bachelor of science"}},
	{label: "bca", synonyms: []string{"bca", "bachelor of computer applications"}},
	{label: "m.tech", synonyms: []string{"m.tech", "mtech", "master of technology"}},
	{label: "m.sc", synonyms: []string{"m.sc", "msc", "master of science"}},
	{label: "mca", synonyms: []string{"mca", "master of computer applications"}},
	{label: "phd", synonyms: []string{"phd", "doctor of philosophy"}},
}

// Degrees returns the canonical labels of every degree mentioned in the raw text.
func Degrees(raw string) Set {
	text := strings.ToLower(raw)
	found := make(Set)
	for _, d := range degrees {
		for _, synonym := range d.synonyms {
			if strings.Contains(text, synonym) {
				found[d.label] = struct{}{}
				break
			}
		}
	}
	return found
}

// DegreeLabels lists the canonical degree labels in table order.
func DegreeLabels() []string {
	labels := make([]string, 0, len(degrees))
	for _, d := range degrees {
		labels = append(labels, d.label)
	}
	return labels
}
