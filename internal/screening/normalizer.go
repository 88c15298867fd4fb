package screening

import "strings"

// Category keyword lists. Matching is case-insensitive substring search over
// the source text: hitting half a list already saturates the factor, and
// partial-word matches are an accepted tradeoff, not a bug. Changing either
// property silently changes every score, so keep the semantics as-is.
var (
	sanctionsKeywords = []string{
		"sanction", "ofac", "sdn", "un security council", "embargo",
	}
	criminalKeywords = []string{
		"convicted", "arrested", "criminal", "prison", "sentence", "illegal",
	}
	pepKeywords = []string{
		"politician", "government", "official", "pep", "politically exposed",
	}
	jurisdictionKeywords = []string{
		"british virgin islands", "bvi", "offshore", "shell company",
	}
	moneyLaunderingKeywords = []string{
		"money laundering", "aml", "suspicious", "shell company", "beneficial ownership",
	}
)

// Normalize converts heterogeneous NLP output into the six factor scores.
// Five factors come from keyword density; adverse media is a sentiment
// property, not a lexical one. Never fails: empty text and missing
// distribution keys degrade to zero risk.
func Normalize(signals Signals) Breakdown {
	text := strings.ToLower(signals.SourceText)

	return Breakdown{
		Sanctions:       keywordFactor(text, sanctionsKeywords),
		CriminalRecord:  keywordFactor(text, criminalKeywords),
		AdverseMedia:    adverseMediaFactor(signals.Sentiment),
		PEP:             keywordFactor(text, pepKeywords),
		Jurisdiction:    keywordFactor(text, jurisdictionKeywords),
		MoneyLaundering: keywordFactor(text, moneyLaunderingKeywords),
	}
}

// keywordFactor is hits/|K| doubled and capped at 1.0. The doubling is a
// deliberate sensitivity boost: half the list matching means full risk.
func keywordFactor(loweredText string, keywords []string) float64 {
	if loweredText == "" {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(loweredText, kw) {
			hits++
		}
	}
	factor := float64(hits) / float64(len(keywords)) * 2
	if factor > 1 {
		return 1
	}
	return factor
}

// adverseMediaFactor is P(NEGATIVE) + 0.5*P(MIXED), capped at 1 in case the
// upstream distribution is malformed.
func adverseMediaFactor(s Sentiment) float64 {
	factor := s.P(SentimentNegative) + 0.5*s.P(SentimentMixed)
	if factor > 1 {
		return 1
	}
	return factor
}
