package screening

import "context"

// ThresholdSource yields the threshold table in effect for a scoring run.
// The default source returns the shipped table; the admin threshold
// configuration supplies an overriding source at wiring time.
type ThresholdSource interface {
	Current(ctx context.Context) ThresholdTable
}

// StaticThresholds is a fixed-table source.
type StaticThresholds struct {
	table ThresholdTable
}

func NewStaticThresholds(table ThresholdTable) *StaticThresholds {
	return &StaticThresholds{table: table}
}

func (s *StaticThresholds) Current(context.Context) ThresholdTable {
	return s.table
}
