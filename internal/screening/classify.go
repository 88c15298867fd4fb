package screening

// Status is the screening outcome gate.
type Status string

const (
	StatusClear          Status = "CLEAR"
	StatusReviewRequired Status = "REVIEW_REQUIRED"
)

// RiskLevel is the tier communicated to analysts and downstream systems.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Classification is the (status, riskLevel, recommendation) triple produced
// for one overall score.
type Classification struct {
	Status         Status
	Level          RiskLevel
	Recommendation string
}

// Band is one threshold band: scores >= Min (closed below, open above up to
// the next higher band) classify into it.
type Band struct {
	Min            float64
	Status         Status
	Level          RiskLevel
	Recommendation string
}

// ThresholdTable is an ordered set of bands evaluated high-to-low; the first
// matching band wins, so ties go to the higher band. The table is injected
// rather than hardcoded so the admin threshold configuration can override it
// at runtime without touching the classifier.
type ThresholdTable []Band

// DefaultThresholds returns the default risk policy. This table is the single
// source of truth for the shipped thresholds.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		{Min: 0.70, Status: StatusReviewRequired, Level: RiskCritical, Recommendation: "REJECT - Do not onboard"},
		{Min: 0.50, Status: StatusReviewRequired, Level: RiskHigh, Recommendation: "Enhanced Due Diligence required"},
		{Min: 0.30, Status: StatusReviewRequired, Level: RiskMedium, Recommendation: "Standard Due Diligence required"},
		{Min: 0, Status: StatusClear, Level: RiskLow, Recommendation: "Proceed with standard onboarding"},
	}
}

// Classify maps a score to its band. The final band has Min 0, so the table
// is exhaustive over [0,1] and exactly one band matches any score.
func (t ThresholdTable) Classify(score float64) Classification {
	for _, band := range t {
		if score >= band.Min {
			return Classification{
				Status:         band.Status,
				Level:          band.Level,
				Recommendation: band.Recommendation,
			}
		}
	}
	// Unreachable with a well-formed table; fall back to the most permissive
	// outcome rather than inventing risk.
	return Classification{
		Status:         StatusClear,
		Level:          RiskLow,
		Recommendation: "Proceed with standard onboarding",
	}
}
