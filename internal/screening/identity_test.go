package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveEntityID(t *testing.T) {
	tests := []struct {
		entityType string
		name       string
		want       string
	}{
		{"PERSON", "John Smith", "person:john_smith"},
		{"COMPANY", "Acme Holdings Ltd", "company:acme_holdings_ltd"},
		{"person", "john smith", "person:john_smith"},
		{"PERSON", "Cher", "person:cher"},
		{"ORGANIZATION", "  ", "organization:__"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveEntityID(tt.entityType, tt.name))
	}
}

func TestDeriveEntityIDIsDeterministic(t *testing.T) {
	a := DeriveEntityID("PERSON", "John Smith")
	b := DeriveEntityID("Person", "JOHN SMITH")
	assert.Equal(t, a, b, "same identity regardless of casing")
}
