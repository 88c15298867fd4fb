package screening

// Severity tags how strongly one evidence item indicates risk.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Evidence sources. Downstream consumers group on these strings.
const (
	SourceNER       = "ner"
	SourceKeyPhrase = "key_phrases"
	SourceSentiment = "sentiment"
)

// Evidence is one ranked signal in a profile's evidence trail.
type Evidence struct {
	Source     string         `json:"source"`
	Type       string         `json:"type,omitempty"`
	Text       string         `json:"text,omitempty"`
	Sentiment  SentimentLabel `json:"sentiment,omitempty"`
	Confidence float64        `json:"confidence"`
	Severity   Severity       `json:"severity"`
}

// Evidence selection constants. Only the leading mentions and phrases are
// considered; the bound on total items (5+3+1) is a contract with consumers
// that truncate to "top 3" for display.
const (
	maxEntityEvidence    = 5
	minEntityConfidence  = 0.7
	highEntityConfidence = 0.9
	maxPhraseEvidence    = 3
	minPhraseConfidence  = 0.8
)

// AssembleEvidence selects and ranks the signals that most influenced the
// score. The first maxEntityEvidence mentions are considered and kept when
// confident enough; same for key phrases; exactly one sentiment summary item
// closes the list. Ordering is a design choice consumers rely on: entity
// evidence first (strongest signal), phrase evidence second, the sentiment
// summary last. Pure and idempotent.
func AssembleEvidence(signals Signals) []Evidence {
	evidence := make([]Evidence, 0, maxEntityEvidence+maxPhraseEvidence+1)

	entities := signals.Entities
	if len(entities) > maxEntityEvidence {
		entities = entities[:maxEntityEvidence]
	}
	for _, mention := range entities {
		if mention.Confidence <= minEntityConfidence {
			continue
		}
		severity := SeverityMedium
		if mention.Confidence > highEntityConfidence {
			severity = SeverityHigh
		}
		evidence = append(evidence, Evidence{
			Source:     SourceNER,
			Type:       mention.Type,
			Text:       mention.Text,
			Confidence: mention.Confidence,
			Severity:   severity,
		})
	}

	phrases := signals.KeyPhrases
	if len(phrases) > maxPhraseEvidence {
		phrases = phrases[:maxPhraseEvidence]
	}
	for _, phrase := range phrases {
		if phrase.Confidence <= minPhraseConfidence {
			continue
		}
		evidence = append(evidence, Evidence{
			Source:     SourceKeyPhrase,
			Text:       phrase.Text,
			Confidence: phrase.Confidence,
			Severity:   SeverityMedium,
		})
	}

	severity := SeverityLow
	if signals.Sentiment.Label == SentimentNegative {
		severity = SeverityHigh
	}
	evidence = append(evidence, Evidence{
		Source:     SourceSentiment,
		Sentiment:  signals.Sentiment.Label,
		Confidence: signals.Sentiment.P(signals.Sentiment.Label),
		Severity:   severity,
	})

	return evidence
}
