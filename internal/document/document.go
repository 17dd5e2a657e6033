// Package document reads resumes and job postings from disk. Plain text and HTML files
// become text, JSON and YAML files become schema-checked structured records.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/viper"

	"github.com/spigell/fitscore/internal/assessor"
)

// Kind is the way a file is interpreted.
type Kind int

const (
	KindUnsupported Kind = iota
	KindText
	KindHTML
	KindRecord
)

// ErrUnsupported is returned for files of an unknown type.
var ErrUnsupported = errors.New("unsupported document type")

var whitespace = regexp.MustCompile(`[ \t]+`)

var blankLines = regexp.MustCompile(`\n{3,}`)

// KindOf classifies a path by its extension.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text":
		return KindText
	case ".html", ".htm":
		return KindHTML
	case ".json", ".yaml", ".yml":
		return KindRecord
	default:
		return KindUnsupported
	}
}

// ReadText returns the text content of a text or HTML file.
func ReadText(path string) (string, error) {
	kind := KindOf(path)
	if kind != KindText && kind != KindHTML {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if kind == KindHTML {
		text, err := HTMLText(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return text, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// HTMLText extracts the visible text of an HTML document. Scripts, styles and page chrome
// are dropped; block elements become line breaks.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer, header, iframe").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return cleanWhitespace(root.Text()), nil
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespace.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
}

// ReadRecord reads a JSON or YAML file into a generic map and validates it against the
// named schema.
func ReadRecord(path, schema string) (map[string]any, error) {
	if KindOf(path) != KindRecord {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	record := v.AllSettings()
	if err := Validate(schema, record); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return record, nil
}

// LoadResume reads a resume. Text and HTML files become a record holding only the raw
// text and the file name.
func LoadResume(path string) (assessor.ResumeRecord, error) {
	if KindOf(path) != KindRecord {
		text, err := ReadText(path)
		if err != nil {
			return assessor.ResumeRecord{}, err
		}
		return assessor.ResumeRecord{FileName: filepath.Base(path), RawText: text}, nil
	}

	raw, err := ReadRecord(path, SchemaResume)
	if err != nil {
		return assessor.ResumeRecord{}, err
	}

	record, err := assessor.DecodeResume(raw)
	if err != nil {
		return assessor.ResumeRecord{}, fmt.Errorf("%s: %w", path, err)
	}
	if record.FileName == "" {
		record.FileName = filepath.Base(path)
	}
	return record, nil
}

// LoadJob reads a job posting. Text and HTML files become the job description.
func LoadJob(path string) (assessor.JobRecord, error) {
	if KindOf(path) != KindRecord {
		text, err := ReadText(path)
		if err != nil {
			return assessor.JobRecord{}, err
		}
		return assessor.JobRecord{Description: text}, nil
	}

	raw, err := ReadRecord(path, SchemaJob)
	if err != nil {
		return assessor.JobRecord{}, err
	}

	record, err := assessor.DecodeJob(raw)
	if err != nil {
		return assessor.JobRecord{}, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}

// LoadResumes loads every path. Directories are expanded to their supported files,
// sorted by name, without recursion.
func LoadResumes(paths []string) ([]assessor.ResumeRecord, error) {
	files, err := Expand(paths)
	if err != nil {
		return nil, err
	}

	records := make([]assessor.ResumeRecord, 0, len(files))
	for _, file := range files {
		record, err := LoadResume(file)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Expand replaces directories with the supported files they contain.
func Expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", path, err)
		}

		var found []string
		for _, entry := range entries {
			if entry.IsDir() || KindOf(entry.Name()) == KindUnsupported {
				continue
			}
			found = append(found, filepath.Join(path, entry.Name()))
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
