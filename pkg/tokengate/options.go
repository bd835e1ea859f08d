package tokengate

import "fmt"

// Option is a functional option for configuring a Gate.
type Option func(*Gate) error

// WithExtractor sets a custom account extractor.
func WithExtractor(extractor AccountExtractor) Option {
	return func(g *Gate) error {
		if extractor == nil {
			return fmt.Errorf("%w: account extractor cannot be nil", ErrInvalidConfig)
		}
		g.extractor = extractor
		return nil
	}
}

// WithClock sets the time source used for admission decisions.
// Tests use this to drive refill deterministically.
func WithClock(clock Clock) Option {
	return func(g *Gate) error {
		if clock == nil {
			return fmt.Errorf("%w: clock cannot be nil", ErrInvalidConfig)
		}
		g.clock = clock
		return nil
	}
}

// WithRecorder sets a recorder that observes every admission decision.
func WithRecorder(recorder AdmissionRecorder) Option {
	return func(g *Gate) error {
		if recorder == nil {
			return fmt.Errorf("%w: recorder cannot be nil", ErrInvalidConfig)
		}
		g.recorder = recorder
		return nil
	}
}
