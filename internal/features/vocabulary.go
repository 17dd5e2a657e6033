package features

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// TermPaths points to the newline-delimited term list files.
type TermPaths struct {
	TechnicalSkills string `mapstructure:"technical-skills"`
	SoftSkills      string `mapstructure:"soft-skills"`
	Keywords        string `mapstructure:"keywords"`
}

// DefaultTermPaths are the lists shipped in the repository data directory.
var DefaultTermPaths = TermPaths{
	TechnicalSkills: "data/technical_skills.txt",
	SoftSkills:      "data/soft_skills.txt",
	Keywords:        "data/jd_keywords.txt",
}

// Terms is one curated list split into single-word and multi-word terms.
// Single words are matched against tokens, phrases against the clean text.
type Terms struct {
	single Set
	multi  Set
}

// NewTerms lowercases, trims and splits the given terms.
func NewTerms(items []string) Terms {
	t := Terms{single: make(Set), multi: make(Set)}
	for _, item := range items {
		term := strings.ToLower(strings.TrimSpace(item))
		if term == "" {
			continue
		}
		if strings.Contains(term, " ") {
			t.multi[term] = struct{}{}
		} else {
			t.single[term] = struct{}{}
		}
	}
	return t
}

// Len returns the total number of terms.
func (t Terms) Len() int { return t.single.Len() + t.multi.Len() }

// Vocabulary holds the three curated term lists. It is built once and only read afterwards.
type Vocabulary struct {
	technical Terms
	soft      Terms
	keywords  Terms
}

// NewVocabulary builds a vocabulary from in-memory lists.
func NewVocabulary(technical, soft, keywords []string) *Vocabulary {
	return &Vocabulary{
		technical: NewTerms(technical),
		soft:      NewTerms(soft),
		keywords:  NewTerms(keywords),
	}
}

// LoadVocabulary reads the term files. A missing file is logged and treated as an empty list.
// Other read errors are returned.
func LoadVocabulary(paths TermPaths, logger *zap.Logger) (*Vocabulary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	technical, err := loadList(paths.TechnicalSkills, logger)
	if err != nil {
		return nil, err
	}
	soft, err := loadList(paths.SoftSkills, logger)
	if err != nil {
		return nil, err
	}
	keywords, err := loadList(paths.Keywords, logger)
	if err != nil {
		return nil, err
	}

	vocabulary := NewVocabulary(technical, soft, keywords)
	logger.Debug("term lists loaded",
		zap.Int("technical_skills", vocabulary.technical.Len()),
		zap.Int("soft_skills", vocabulary.soft.Len()),
		zap.Int("keywords", vocabulary.keywords.Len()),
	)

	return vocabulary, nil
}

func loadList(path string, logger *zap.Logger) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		logger.Warn("term list path is not configured")
		return nil, nil
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("term list file not found", zap.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open term list %q: %w", path, err)
	}
	defer file.Close()

	var items []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read term list %q: %w", path, err)
	}

	return items, nil
}
