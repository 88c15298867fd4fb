package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeywordFactors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		expect func(t *testing.T, b Breakdown)
	}{
		{
			name: "two sanctions hits",
			text: "Added to the OFAC list after new sanctions were announced",
			expect: func(t *testing.T, b Breakdown) {
				// 2 of 5 keywords, doubled.
				assert.InDelta(t, 0.8, b.Sanctions, 1e-9)
			},
		},
		{
			name: "single criminal hit",
			text: "He was convicted of fraud",
			expect: func(t *testing.T, b Breakdown) {
				// 1 of 6 keywords, doubled.
				assert.InDelta(t, 2.0/6.0, b.CriminalRecord, 1e-9)
			},
		},
		{
			name: "factor caps at one",
			text: "sanction ofac sdn un security council embargo",
			expect: func(t *testing.T, b Breakdown) {
				assert.InDelta(t, 1.0, b.Sanctions, 1e-9)
			},
		},
		{
			name: "matching is case-insensitive",
			text: "SANCTION announced by OFAC",
			expect: func(t *testing.T, b Breakdown) {
				assert.InDelta(t, 0.8, b.Sanctions, 1e-9)
			},
		},
		{
			name: "substring matching hits inflected forms",
			text: "the company was sanctioned last year",
			expect: func(t *testing.T, b Breakdown) {
				assert.InDelta(t, 0.4, b.Sanctions, 1e-9)
			},
		},
		{
			name: "shell company counts in two categories",
			text: "a shell company in the british virgin islands",
			expect: func(t *testing.T, b Breakdown) {
				// jurisdiction: bvi spelled out + shell company = 2 of 4.
				assert.InDelta(t, 1.0, b.Jurisdiction, 1e-9)
				// money laundering: shell company = 1 of 5.
				assert.InDelta(t, 0.4, b.MoneyLaundering, 1e-9)
			},
		},
		{
			name: "empty text scores zero everywhere",
			text: "",
			expect: func(t *testing.T, b Breakdown) {
				assert.Zero(t, b.Sanctions)
				assert.Zero(t, b.CriminalRecord)
				assert.Zero(t, b.PEP)
				assert.Zero(t, b.Jurisdiction)
				assert.Zero(t, b.MoneyLaundering)
			},
		},
		{
			name: "clean text scores zero",
			text: "A well regarded local bakery with excellent reviews",
			expect: func(t *testing.T, b Breakdown) {
				assert.Zero(t, b.Sanctions)
				assert.Zero(t, b.CriminalRecord)
				assert.Zero(t, b.PEP)
				assert.Zero(t, b.Jurisdiction)
				assert.Zero(t, b.MoneyLaundering)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect(t, Normalize(Signals{SourceText: tt.text}))
		})
	}
}

func TestNormalizeAdverseMedia(t *testing.T) {
	tests := []struct {
		name      string
		sentiment Sentiment
		want      float64
	}{
		{
			name: "negative dominates",
			sentiment: Sentiment{
				Label: SentimentNegative,
				Distribution: map[SentimentLabel]float64{
					SentimentNegative: 0.7,
					SentimentMixed:    0.2,
					SentimentNeutral:  0.1,
				},
			},
			want: 0.7 + 0.5*0.2,
		},
		{
			name: "positive contributes nothing",
			sentiment: Sentiment{
				Label: SentimentPositive,
				Distribution: map[SentimentLabel]float64{
					SentimentPositive: 0.9,
					SentimentNeutral:  0.1,
				},
			},
			want: 0,
		},
		{
			name:      "missing distribution degrades to zero",
			sentiment: Sentiment{Label: SentimentNegative},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Normalize(Signals{Sentiment: tt.sentiment})
			assert.InDelta(t, tt.want, b.AdverseMedia, 1e-9)
		})
	}
}

func TestNormalizeFactorsStayInRange(t *testing.T) {
	texts := []string{
		"",
		"sanction sanction sanction sanction sanction",
		"sanction ofac sdn un security council embargo convicted arrested criminal prison sentence illegal",
		"politician government official pep politically exposed offshore bvi money laundering aml suspicious",
	}
	for _, text := range texts {
		b := Normalize(Signals{
			SourceText: text,
			Sentiment: Sentiment{Distribution: map[SentimentLabel]float64{
				SentimentNegative: 1.0,
			}},
		})
		for _, factor := range []float64{
			b.Sanctions, b.CriminalRecord, b.AdverseMedia,
			b.PEP, b.Jurisdiction, b.MoneyLaundering,
		} {
			assert.GreaterOrEqual(t, factor, 0.0)
			assert.LessOrEqual(t, factor, 1.0)
		}
	}
}

func TestNormalizeRepeatedKeywordCountsOnce(t *testing.T) {
	b := Normalize(Signals{SourceText: "sanction sanction sanction"})
	assert.InDelta(t, 0.4, b.Sanctions, 1e-9)
}
