package nlp

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cleanText string
		tokens    []string
	}{
		{
			name:      "empty input",
			input:     "",
			cleanText: "",
			tokens:    []string{},
		},
		{
			name:      "whitespace only",
			input:     " \n\t ",
			cleanText: "",
			tokens:    []string{},
		},
		{
			name:      "drops stopwords and punctuation",
			input:     "I am a B.Tech CSE student with experience in Python, SQL and Machine Learning.",
			cleanText: "btech cse student experience python sql machine learning",
			tokens:    []string{"btech", "cse", "student", "experience", "python", "sql", "machine", "learning"},
		},
		{
			name:      "removes urls emails and digits",
			input:     "Contact me at jane.doe@example.com or https://example.com/cv, 5 years www.site.org",
			cleanText: "contact me years",
			tokens:    []string{"contact", "me", "years"},
		},
		{
			name:      "keeps duplicates in order",
			input:     "Go go GO rust",
			cleanText: "go go go rust",
			tokens:    []string{"go", "go", "go", "rust"},
		},
		{
			name:      "collapses unicode spaces",
			input:     "data\u00a0analysis\u2003 pipelines",
			cleanText: "data analysis pipelines",
			tokens:    []string{"data", "analysis", "pipelines"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.input)
			assert.Equal(t, tt.cleanText, got.CleanText)
			assert.Equal(t, tt.tokens, got.Tokens)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Senior Go Engineer (5+ yrs) — Kubernetes, gRPC & AWS!",
		"h.ttps-server and w.w.w.example are odd tokens",
		"Visit http://foo.bar or mail x@y.z; 2024 roadmap",
		"The quick, brown fox; it was not being lazy.",
		"ÉCOLE d'ingénieurs — Ξένη ΓΛΩΣΣΑ",
		"a1\u00a0\u0085w._t  / \u0085w tt:",
		"\u0085lead\u2028go\u3000\u00a0 the",
	}

	for _, input := range inputs {
		once := Normalize(input).CleanText
		twice := Normalize(once).CleanText
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestNormalizeIsIdempotentOnRandomInput(t *testing.T) {
	t.Parallel()

	alphabet := []rune("abtw1 ./:@_-\t\n\v\u0085\u00a0\u1680\u2000\u2028\u202f\u3000ÉΞ")
	rng := rand.New(rand.NewPCG(7, 11))

	for range 20000 {
		var b strings.Builder
		for range rng.IntN(24) {
			b.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}

		input := b.String()
		once := Normalize(input).CleanText
		if twice := Normalize(once).CleanText; once != twice {
			t.Fatalf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestCleanTextMatchesTokens(t *testing.T) {
	t.Parallel()

	got := Normalize("Built REST APIs for the data team, and led code reviews.")
	assert.Equal(t, "built rest apis data team led code reviews", got.CleanText)
	assert.Len(t, got.Tokens, 8)
}

func TestIsStopword(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("should"))
	assert.False(t, IsStopword("python"))
	assert.False(t, IsStopword(""))
}
