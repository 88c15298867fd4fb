package screening

// Breakdown maps the six fixed risk factors to values in [0,1]. Modeling it
// as a struct keeps the "exactly six keys, no extras" invariant structural
// rather than runtime-checked.
type Breakdown struct {
	Sanctions       float64 `json:"sanctionsRisk"`
	CriminalRecord  float64 `json:"criminalRecordRisk"`
	AdverseMedia    float64 `json:"adverseMediaRisk"`
	PEP             float64 `json:"pepRisk"`
	Jurisdiction    float64 `json:"jurisdictionRisk"`
	MoneyLaundering float64 `json:"moneyLaunderingRisk"`
}

// Factor weights for the overall score. They must sum to 1.0 exactly so the
// weighted sum of factors in [0,1] stays in [0,1] without clamping.
const (
	weightSanctions       = 0.30
	weightCriminalRecord  = 0.25
	weightAdverseMedia    = 0.20
	weightPEP             = 0.10
	weightJurisdiction    = 0.10
	weightMoneyLaundering = 0.05
)

func init() {
	sum := weightSanctions + weightCriminalRecord + weightAdverseMedia +
		weightPEP + weightJurisdiction + weightMoneyLaundering
	if sum != 1.0 {
		panic("screening: factor weights must sum to 1.0")
	}
}

// Aggregate combines the six factor scores into one overall score via the
// fixed weights. Pure function over an already-normalized Breakdown.
func Aggregate(b Breakdown) float64 {
	score := b.Sanctions*weightSanctions +
		b.CriminalRecord*weightCriminalRecord +
		b.AdverseMedia*weightAdverseMedia +
		b.PEP*weightPEP +
		b.Jurisdiction*weightJurisdiction +
		b.MoneyLaundering*weightMoneyLaundering

	// Provably in [0,1] given factor and weight invariants; guard anyway so a
	// corrupted breakdown cannot leak an out-of-range score downstream.
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
