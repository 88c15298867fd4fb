package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       string
		wantCounts map[string]int
	}{
		{
			name:       "ssn",
			text:       "SSN 123-45-6789 on file",
			want:       "SSN [REDACTED_SSN] on file",
			wantCounts: map[string]int{"SSN": 1},
		},
		{
			name:       "email",
			text:       "reach john.smith+tips@example.co.uk for details",
			want:       "reach [REDACTED_EMAIL] for details",
			wantCounts: map[string]int{"EMAIL": 1},
		},
		{
			name:       "phone",
			text:       "call 555-123-4567 today",
			want:       "call [REDACTED_PHONE] today",
			wantCounts: map[string]int{"PHONE": 1},
		},
		{
			name:       "credit card",
			text:       "card 4111 1111 1111 1111 charged",
			want:       "card [REDACTED_CREDIT_CARD] charged",
			wantCounts: map[string]int{"CREDIT_CARD": 1},
		},
		{
			name:       "multiple types",
			text:       "123-45-6789 wrote from a@b.io",
			want:       "[REDACTED_SSN] wrote from [REDACTED_EMAIL]",
			wantCounts: map[string]int{"SSN": 1, "EMAIL": 1},
		},
		{
			name:       "clean text untouched",
			text:       "no personal data here",
			want:       "no personal data here",
			wantCounts: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, counts := Redact(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCounts, counts)
		})
	}
}
