package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/fitscore/internal/matching"
	"github.com/spigell/fitscore/internal/ranking"
	"github.com/spigell/fitscore/internal/scoring"
)

func sampleBatch() (*ranking.Batch, []ranking.Result) {
	scoredAt := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	results := []ranking.Result{
		{
			Rank:      1,
			Candidate: "Jane Doe",
			Name:      "Jane Doe",
			File:      "jane.pdf",
			Email:     "jane@example.com",
			Phone:     "+1 555",
			ScoredAt:  scoredAt,
			Outcome: scoring.Outcome{
				OverallScore: 75.4,
				Skills:       matching.DimensionResult{Score: 64},
				Experience:   matching.DimensionResult{Score: 85},
				Education:    matching.DimensionResult{Score: 80},
				ReasoningPoints: []string{
					"Limited skill alignment - missing 1 requirements",
					"Experience level appropriate for role requirements",
					"Educational background meets basic requirements",
				},
				Confidence: 0.75,
				Model:      "llama2:1b",
			},
		},
		{
			Rank:      2,
			Candidate: "cv.txt",
			File:      "cv.txt",
			Outcome: scoring.Outcome{
				OverallScore:    40,
				ReasoningPoints: []string{"only one"},
				Confidence:      0.6,
				Model:           "fallback",
			},
		},
	}

	batch := &ranking.Batch{ID: "b-1", JobTitle: "Backend Developer", Total: 2, Results: results}
	return batch, results
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	batch, results := sampleBatch()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, batch, results))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"1", "Jane Doe", "jane.pdf",
		"75.4", "64.0", "85.0", "80.0", "0.0",
		"Limited skill alignment - missing 1 requirements",
		"Experience level appropriate for role requirements",
		"Educational background meets basic requirements",
		"llama2:1b", "0.75", "jane@example.com", "+1 555",
		"Backend Developer", "b-1", "2024-03-05 14:07:09",
	}, records[1])

	second := records[2]
	assert.Equal(t, "N/A", second[1])
	assert.Equal(t, "cv.txt", second[2])
	assert.Equal(t, "only one", second[8])
	assert.Empty(t, second[9])
	assert.Empty(t, second[10])
	assert.Empty(t, second[17])
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))
	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSVPropagatesWriteErrors(t *testing.T) {
	t.Parallel()

	batch, results := sampleBatch()
	err := WriteCSV(failingWriter{}, batch, results)
	assert.ErrorContains(t, err, "disk full")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "exports")
	batch, results := sampleBatch()
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	path, err := WriteFile(dir, batch, results, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume_scores_20240305_140709.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Rank,Candidate Name,"))
}
