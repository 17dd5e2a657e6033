// Package nlp turns raw resume and job description text into lowercase tokens.
package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// punctuation mirrors the ASCII punctuation set.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	reURL    = regexp.MustCompile(`http\S+|www\.\S+`)
	reEmail  = regexp.MustCompile(`\S+@\S+`)
	reDigits = regexp.MustCompile(`\d+`)
	// Same set as unicode.IsSpace, which strings.TrimSpace uses.
	reSpaces = regexp.MustCompile(`[\s\v\p{Z}\x{85}]+`)

	stripPunctuation = strings.NewReplacer(punctuationPairs()...)
)

// NormalizedText is the cleaned form of a text. CleanText is always Tokens joined by single spaces.
type NormalizedText struct {
	CleanText string   `json:"clean_text"`
	Tokens    []string `json:"tokens"`
}

// Normalize lowercases the text, drops urls, emails, digits and punctuation,
// collapses whitespace and removes stopwords. It never fails; empty input gives an empty result.
func Normalize(text string) NormalizedText {
	tokens := RemoveStopwords(Tokenize(Clean(text)))
	return NormalizedText{
		CleanText: strings.Join(tokens, " "),
		Tokens:    tokens,
	}
}

// Clean applies every normalization step except stopword removal.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = cases.Lower(language.Und).String(text)
	text = reURL.ReplaceAllString(text, " ")
	text = reEmail.ReplaceAllString(text, " ")
	text = reDigits.ReplaceAllString(text, " ")
	text = stripPunctuation.Replace(text)
	// Removing punctuation can glue a url prefix back together ("h.ttps" -> "https").
	text = reURL.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Tokenize splits cleaned text on single spaces.
func Tokenize(cleaned string) []string {
	if cleaned == "" {
		return []string{}
	}
	return strings.Split(cleaned, " ")
}

// RemoveStopwords drops empty tokens and stopwords, keeping order and duplicates.
func RemoveStopwords(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" || IsStopword(token) {
			continue
		}
		result = append(result, token)
	}
	return result
}

func punctuationPairs() []string {
	pairs := make([]string, 0, len(punctuation)*2)
	for _, r := range punctuation {
		pairs = append(pairs, string(r), "")
	}
	return pairs
}
