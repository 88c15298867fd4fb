package screening

// Signals is the fixed-shape NLP output bundle for one entity, supplied by
// the external NLP collaborator. The engine never performs text understanding
// itself; it only transforms these signals into a risk profile.
type Signals struct {
	// Entities are named-entity mentions in source order. Not assumed sorted
	// by confidence.
	Entities []EntityMention

	// Sentiment is the document-level sentiment with its label distribution.
	Sentiment Sentiment

	// KeyPhrases are extracted key phrases in source order.
	KeyPhrases []KeyPhrase

	// SourceText is the original text, used for keyword-pattern matching.
	SourceText string
}

// EntityMention is one named-entity occurrence reported by the NLP service.
type EntityMention struct {
	Text       string
	Type       string
	Confidence float64
}

// KeyPhrase is one extracted key phrase.
type KeyPhrase struct {
	Text       string
	Confidence float64
}

// SentimentLabel enumerates the document-level sentiment classes.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
	SentimentMixed    SentimentLabel = "MIXED"
)

// Sentiment carries the winning label and the full label distribution.
// Distribution probabilities sum to 1 within rounding error; missing keys
// are treated as 0 everywhere in the engine, never as an error.
type Sentiment struct {
	Label        SentimentLabel
	Distribution map[SentimentLabel]float64
}

// P returns the probability of a label, defaulting absent keys to 0 so
// malformed collaborator output degrades to zero risk instead of failing.
func (s Sentiment) P(label SentimentLabel) float64 {
	if s.Distribution == nil {
		return 0
	}
	return s.Distribution[label]
}

// Record is one raw screening input: an entity name, its type, and the text
// gathered about it by the acquisition collaborator.
type Record struct {
	Name string
	Type string
	Text string
}
