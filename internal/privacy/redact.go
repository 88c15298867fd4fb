// Package privacy removes PII from free text before it is persisted or
// shipped to downstream consumers. It contains no scoring logic.
package privacy

import (
	"fmt"
	"regexp"
)

// Pattern order is deterministic so redaction output is stable for identical
// input.
var piiPatterns = []struct {
	Type    string
	Pattern *regexp.Regexp
}{
	{"SSN", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"EMAIL", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"PHONE", regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"CREDIT_CARD", regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
}

// Redact replaces recognized PII with [REDACTED_<TYPE>] placeholders and
// reports how many replacements were made per type.
func Redact(text string) (string, map[string]int) {
	counts := make(map[string]int)
	redacted := text
	for _, p := range piiPatterns {
		redacted = p.Pattern.ReplaceAllStringFunc(redacted, func(string) string {
			counts[p.Type]++
			return fmt.Sprintf("[REDACTED_%s]", p.Type)
		})
	}
	return redacted, counts
}
