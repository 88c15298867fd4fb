// Package thresholds manages the runtime-configurable risk threshold policy.
package thresholds

import (
	"time"

	"aegis/internal/screening"
	dErrors "aegis/pkg/domain-errors"
)

// BandConfig is the stored form of one threshold band.
type BandConfig struct {
	Min            float64 `json:"min"`
	Status         string  `json:"status"`
	RiskLevel      string  `json:"riskLevel"`
	Recommendation string  `json:"recommendation"`
}

// Policy is one version of the threshold table, with audit fields. Versions
// are append-only; the highest version is the policy in effect.
type Policy struct {
	Version   int64        `json:"version"`
	Bands     []BandConfig `json:"bands"`
	UpdatedBy string       `json:"updatedBy"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Table converts the stored bands into the classifier's table form.
func (p *Policy) Table() screening.ThresholdTable {
	table := make(screening.ThresholdTable, len(p.Bands))
	for i, b := range p.Bands {
		table[i] = screening.Band{
			Min:            b.Min,
			Status:         screening.Status(b.Status),
			Level:          screening.RiskLevel(b.RiskLevel),
			Recommendation: b.Recommendation,
		}
	}
	return table
}

// FromTable converts a classifier table into stored band form.
func FromTable(table screening.ThresholdTable) []BandConfig {
	bands := make([]BandConfig, len(table))
	for i, b := range table {
		bands[i] = BandConfig{
			Min:            b.Min,
			Status:         string(b.Status),
			RiskLevel:      string(b.Level),
			Recommendation: b.Recommendation,
		}
	}
	return bands
}

var validStatuses = map[string]bool{
	string(screening.StatusClear):          true,
	string(screening.StatusReviewRequired): true,
}

var validLevels = map[string]bool{
	string(screening.RiskLow):      true,
	string(screening.RiskMedium):   true,
	string(screening.RiskHigh):     true,
	string(screening.RiskCritical): true,
}

// ValidateBands checks that a proposed band set forms a usable policy:
// non-empty, strictly descending minimums in [0,1], a terminal band at 0 so
// every score classifies, and known status and level values throughout.
func ValidateBands(bands []BandConfig) error {
	if len(bands) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one band is required")
	}
	prev := 1.01
	for i, b := range bands {
		if b.Min < 0 || b.Min > 1 {
			return dErrors.Newf(dErrors.CodeValidation, "bands[%d].min must be in [0,1]", i)
		}
		if b.Min >= prev {
			return dErrors.Newf(dErrors.CodeValidation, "bands[%d].min must be strictly below the previous band", i)
		}
		if !validStatuses[b.Status] {
			return dErrors.Newf(dErrors.CodeValidation, "bands[%d].status %q is not a valid status", i, b.Status)
		}
		if !validLevels[b.RiskLevel] {
			return dErrors.Newf(dErrors.CodeValidation, "bands[%d].riskLevel %q is not a valid risk level", i, b.RiskLevel)
		}
		if b.Recommendation == "" {
			return dErrors.Newf(dErrors.CodeValidation, "bands[%d].recommendation is required", i)
		}
		prev = b.Min
	}
	if bands[len(bands)-1].Min != 0 {
		return dErrors.New(dErrors.CodeValidation, "the final band must have min 0")
	}
	return nil
}
