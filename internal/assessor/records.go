package assessor

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ResumeRecord is a resume that has already been parsed into fields.
type ResumeRecord struct {
	ID             string            `mapstructure:"id"`
	CandidateName  string            `mapstructure:"candidate_name"`
	Email          string            `mapstructure:"email"`
	Phone          string            `mapstructure:"phone"`
	FileName       string            `mapstructure:"filename"`
	Skills         []string          `mapstructure:"skills"`
	Experience     []ExperienceEntry `mapstructure:"experience"`
	Education      []EducationEntry  `mapstructure:"education"`
	Certifications []string          `mapstructure:"certifications"`
	Keywords       []string          `mapstructure:"keywords"`
	RawText        string            `mapstructure:"raw_text"`

	// ExperienceYears is the claim found in RawText by FillFromText. Nil means unknown.
	ExperienceYears *int `mapstructure:"-"`
}

type ExperienceEntry struct {
	Title       string `mapstructure:"title"`
	Company     string `mapstructure:"company"`
	Duration    string `mapstructure:"duration"`
	Description string `mapstructure:"description"`
}

type EducationEntry struct {
	Degree      string `mapstructure:"degree"`
	Institution string `mapstructure:"institution"`
	Year        string `mapstructure:"year"`
}

// DisplayName returns the best available label for the candidate.
func (r ResumeRecord) DisplayName() string {
	for _, candidate := range []string{r.CandidateName, r.FileName, r.ID} {
		if name := strings.TrimSpace(candidate); name != "" {
			return name
		}
	}
	return "unknown"
}

// experienceYears prefers the claim found in the text over the entry count estimate.
func (r ResumeRecord) experienceYears() float64 {
	if len(r.Experience) == 0 && r.ExperienceYears != nil {
		return float64(*r.ExperienceYears)
	}
	return float64(len(r.Experience)) * 1.5
}

// Text returns the raw resume text, or a rendering of the structured fields when the
// record carries no raw text.
func (r ResumeRecord) Text() string {
	if text := strings.TrimSpace(r.RawText); text != "" {
		return text
	}

	var b strings.Builder
	writeLine := func(parts ...string) {
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	writeLine(strings.Join(r.Skills, ", "))
	for _, entry := range r.Experience {
		writeLine(entry.Title, entry.Company, entry.Duration, entry.Description)
	}
	for _, entry := range r.Education {
		writeLine(entry.Degree, entry.Institution, entry.Year)
	}
	writeLine(strings.Join(r.Certifications, ", "))
	writeLine(strings.Join(r.Keywords, ", "))

	return strings.TrimSpace(b.String())
}

// JobRecord is a job posting.
type JobRecord struct {
	ID           string `mapstructure:"id"`
	Title        string `mapstructure:"title"`
	Company      string `mapstructure:"company"`
	Description  string `mapstructure:"description"`
	Requirements string `mapstructure:"requirements"`
}

// Text joins the description and the requirements section.
func (j JobRecord) Text() string {
	return strings.TrimSpace(j.Description + "\n" + j.Requirements)
}

// DecodeResume converts a generic map, as read from JSON or YAML, into a ResumeRecord.
func DecodeResume(raw map[string]any) (ResumeRecord, error) {
	var record ResumeRecord
	if err := decode(raw, &record); err != nil {
		return ResumeRecord{}, fmt.Errorf("decode resume record: %w", err)
	}
	return record, nil
}

// DecodeJob converts a generic map into a JobRecord.
func DecodeJob(raw map[string]any) (JobRecord, error) {
	var record JobRecord
	if err := decode(raw, &record); err != nil {
		return JobRecord{}, fmt.Errorf("decode job record: %w", err)
	}
	return record, nil
}

func decode(raw map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
