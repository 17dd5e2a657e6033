// Package features derives skills, keywords, experience and education from resume or job text.
package features

import (
	"strings"

	"github.com/spigell/fitscore/internal/nlp"
)

// FeatureSet is everything extracted from one text.
type FeatureSet struct {
	CleanText       string   `json:"clean_text"`
	Tokens          []string `json:"tokens"`
	TechnicalSkills Set      `json:"technical_skills"`
	SoftSkills      Set      `json:"soft_skills"`
	Keywords        Set      `json:"jd_keywords"`
	ExperienceYears *int     `json:"experience_years"`
	Education       Set      `json:"education"`
}

// Extractor matches texts against a fixed vocabulary.
type Extractor struct {
	vocabulary *Vocabulary
}

// NewExtractor creates an extractor bound to the vocabulary. A nil vocabulary behaves as empty lists.
func NewExtractor(vocabulary *Vocabulary) *Extractor {
	if vocabulary == nil {
		vocabulary = NewVocabulary(nil, nil, nil)
	}
	return &Extractor{vocabulary: vocabulary}
}

// Extract builds the feature set of a raw text. It is safe for concurrent use.
func (e *Extractor) Extract(raw string) FeatureSet {
	normalized := nlp.Normalize(raw)
	tokens := NewSet(normalized.Tokens...)

	return FeatureSet{
		CleanText:       normalized.CleanText,
		Tokens:          normalized.Tokens,
		TechnicalSkills: matchTerms(e.vocabulary.technical, tokens, normalized.CleanText),
		SoftSkills:      matchTerms(e.vocabulary.soft, tokens, normalized.CleanText),
		Keywords:        matchTerms(e.vocabulary.keywords, tokens, normalized.CleanText),
		ExperienceYears: ExperienceYears(raw),
		Education:       Degrees(raw),
	}
}

func matchTerms(terms Terms, tokens Set, cleanText string) Set {
	found := make(Set)
	for term := range terms.single {
		if tokens.Has(term) {
			found[term] = struct{}{}
		}
	}
	for phrase := range terms.multi {
		if strings.Contains(cleanText, phrase) {
			found[phrase] = struct{}{}
		}
	}
	return found
}
