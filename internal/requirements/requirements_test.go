package requirements

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/fitscore/internal/features"
)

func TestCoarseExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		skills    []string
		education []string
	}{
		{
			name:      "categories in pattern order",
			input:     "Docker and PostgreSQL experience, strong Python. Bachelor degree required.",
			skills:    []string{"python", "postgresql", "docker"},
			education: []string{"bachelor"},
		},
		{
			name:      "imprecise matches",
			input:     "JavaScript and MySQL",
			skills:    []string{"java", "mysql"},
			education: []string{},
		},
		{
			name:      "repeated mentions count once",
			input:     "python python java",
			skills:    []string{"python", "java"},
			education: []string{},
		},
		{
			name:      "nothing found",
			input:     "Friendly barista wanted",
			skills:    []string{},
			education: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewCoarse().Extract(tt.input)
			assert.Equal(t, StrategyCoarse, got.Strategy)
			assert.Equal(t, tt.skills, got.RequiredSkills)
			assert.Equal(t, tt.education, got.Education)
			assert.Equal(t, "mid", got.ExperienceLevel)
		})
	}
}

func TestCoarseExtractCapsSkills(t *testing.T) {
	t.Parallel()

	input := "python java react angular vue node.js sql mongodb aws azure docker kubernetes"
	got := NewCoarse().Extract(input)

	assert.Len(t, got.RequiredSkills, MaxRequiredSkills)
	assert.Equal(t, "python", got.RequiredSkills[0])
}

func TestDetailedExtract(t *testing.T) {
	t.Parallel()

	extractor := features.NewExtractor(features.NewVocabulary(
		[]string{"python", "sql", "machine learning"},
		[]string{"communication"},
		[]string{"deployment"},
	))

	got := NewDetailed(extractor).Extract("5+ years with Python and machine learning, MSc preferred. Communication matters. Deployment.")

	assert.Equal(t, StrategyDetailed, got.Strategy)
	assert.Equal(t, []string{"machine learning", "python"}, got.RequiredSkills)
	assert.Equal(t, []string{"communication"}, got.PreferredSkills)
	assert.Equal(t, []string{"deployment"}, got.Keywords)
	assert.Equal(t, []string{"m.sc"}, got.Education)
	require.NotNil(t, got.ExperienceYears)
	assert.Equal(t, 5, *got.ExperienceYears)
	assert.Equal(t, "senior", got.ExperienceLevel)
}

func TestExperienceLevel(t *testing.T) {
	t.Parallel()

	one, three, nine := 1, 3, 9
	assert.Equal(t, "unspecified", experienceLevel(nil))
	assert.Equal(t, "junior", experienceLevel(&one))
	assert.Equal(t, "mid", experienceLevel(&three))
	assert.Equal(t, "senior", experienceLevel(&nine))
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "coarse", " Coarse "} {
		got, err := New(name, nil)
		require.NoError(t, err)
		assert.Equal(t, StrategyCoarse, got.Name())
	}

	got, err := New("detailed", nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyDetailed, got.Name())

	_, err = New("magic", nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestMergeSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, extra []string
		limit       int
		want        []string
	}{
		{base: []string{"python", "sql"}, extra: []string{"SQL", " aws ", ""}, limit: 10, want: []string{"python", "sql", "aws"}},
		{base: []string{"a", "b", "c"}, extra: []string{"d"}, limit: 2, want: []string{"a", "b"}},
		{base: nil, extra: nil, limit: 10, want: []string{}},
		{base: []string{"x"}, extra: []string{"y", "z"}, limit: 0, want: []string{"x", "y", "z"}},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MergeSkills(tt.base, tt.extra, tt.limit))
		})
	}
}
