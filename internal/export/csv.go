// Package export writes ranked batches in tabular form.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spigell/fitscore/internal/ranking"
	"github.com/spigell/fitscore/internal/scoring"
)

// TimeLayout formats the Scored At column.
const TimeLayout = "2006-01-02 15:04:05"

// Header lists the CSV columns in order.
var Header = []string{
	"Rank",
	"Candidate Name",
	"Resume File",
	"Overall Score",
	"Skills Score",
	"Experience Score",
	"Education Score",
	"Keyword Score",
	"Top Reason 1",
	"Top Reason 2",
	"Top Reason 3",
	"Model",
	"Confidence",
	"Email",
	"Phone",
	"Job Title",
	"Batch ID",
	"Scored At",
}

// WriteCSV writes a header followed by one row per result, in the given order.
func WriteCSV(w io.Writer, batch *ranking.Batch, results []ranking.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write(row(batch, result)); err != nil {
			return fmt.Errorf("write csv row %d: %w", result.Rank, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the CSV into dir under a timestamped name and returns the file path.
func WriteFile(dir string, batch *ranking.Batch, results []ranking.Result, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err := WriteCSV(file, batch, results); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}

	return path, nil
}

// FileName returns the export file name for the given moment.
func FileName(now time.Time) string {
	return "resume_scores_" + now.Format("20060102_150405") + ".csv"
}

func row(batch *ranking.Batch, result ranking.Result) []string {
	outcome := result.Outcome
	reasons := scoring.TopReasons(outcome.ReasoningPoints)

	name := result.Name
	if name == "" {
		name = "N/A"
	}

	var jobTitle, batchID string
	if batch != nil {
		jobTitle = batch.JobTitle
		batchID = batch.ID
	}

	scoredAt := ""
	if !result.ScoredAt.IsZero() {
		scoredAt = result.ScoredAt.Format(TimeLayout)
	}

	return []string{
		strconv.Itoa(result.Rank),
		name,
		result.File,
		score(outcome.OverallScore),
		score(outcome.Skills.Score),
		score(outcome.Experience.Score),
		score(outcome.Education.Score),
		score(outcome.Keywords.Score),
		reason(reasons, 0),
		reason(reasons, 1),
		reason(reasons, 2),
		outcome.Model,
		strconv.FormatFloat(outcome.Confidence, 'f', 2, 64),
		result.Email,
		result.Phone,
		jobTitle,
		batchID,
		scoredAt,
	}
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func reason(reasons []string, i int) string {
	if i < len(reasons) {
		return reasons[i]
	}
	return ""
}
