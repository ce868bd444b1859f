package similarity

import "time"

// Observer receives a callback for every word-pair similarity computed
// through Engine.Similarity.
type Observer interface {
	ObserveSimilarity(strategy Strategy, score float64, elapsed time.Duration, err error)
}

// noopObserver is a no-op implementation of Observer
type noopObserver struct{}

var _ Observer = (*noopObserver)(nil)

func (n *noopObserver) ObserveSimilarity(_ Strategy, _ float64, _ time.Duration, _ error) {}
