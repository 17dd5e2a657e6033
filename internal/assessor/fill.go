package assessor

import (
	"strings"

	"github.com/spigell/fitscore/internal/features"
)

// FillFromText derives skills, keywords, degrees and the claimed years of experience from
// the raw text of a resume that has no structured skills, experience or education.
// Other records are returned unchanged.
func FillFromText(resume ResumeRecord, extractor *features.Extractor) ResumeRecord {
	if extractor == nil || strings.TrimSpace(resume.RawText) == "" {
		return resume
	}
	if len(resume.Skills) > 0 || len(resume.Experience) > 0 || len(resume.Education) > 0 {
		return resume
	}

	found := extractor.Extract(resume.RawText)

	resume.Skills = found.TechnicalSkills.Sorted()
	if len(resume.Keywords) == 0 {
		resume.Keywords = found.Keywords.Sorted()
	}
	for _, degree := range found.Education.Sorted() {
		resume.Education = append(resume.Education, EducationEntry{Degree: degree})
	}
	if resume.ExperienceYears == nil {
		resume.ExperienceYears = found.ExperienceYears
	}

	return resume
}
