package badger

import "github.com/poiesic/cilin/storage"

// NewMemoryRepository creates an in-memory thesaurus repository for testing.
// Caller must close both the repository and the backend when done.
func NewMemoryRepository() (storage.ThesaurusRepository, *Backend, error) {
	backend, err := OpenBackend("", InMemory())
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewThesaurusRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
