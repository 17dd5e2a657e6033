package nlp

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "am": {}, "was": {}, "were": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "of": {}, "to": {}, "and": {}, "or": {}, "but": {},
	"with": {}, "from": {}, "by": {}, "as": {}, "that": {}, "this": {}, "these": {}, "those": {},
	"it": {}, "its": {}, "be": {}, "been": {}, "being": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "we": {}, "they": {}, "them": {},
	"your": {}, "our": {}, "their": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {},
	"about": {}, "into": {}, "over": {}, "under": {}, "up": {}, "down": {},
	"not": {}, "no": {}, "yes": {},
}

// IsStopword reports whether the lowercase token is a function word ignored during matching.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
