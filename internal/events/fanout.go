package events

import "context"

type fanout []Publisher

// Fanout combines publishers into one. Each receives every event; the first
// error is returned after all have been attempted.
func Fanout(publishers ...Publisher) Publisher {
	return fanout(publishers)
}

func (f fanout) Publish(ctx context.Context, event RiskUpdated) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
