package align

import "time"

// Observer receives a callback for every Align call.
type Observer interface {
	ObserveAlignment(score float64, elapsed time.Duration, err error)
}

// noopObserver is a no-op implementation of Observer
type noopObserver struct{}

var _ Observer = (*noopObserver)(nil)

func (n *noopObserver) ObserveAlignment(_ float64, _ time.Duration, _ error) {}
