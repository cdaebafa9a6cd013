package voice

// Store exposes voice enumeration for HTTP handlers.
type Store interface {
	List() []Voice
	FindByID(id string) (Voice, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Voice
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied voices.
func NewMemoryStore(items []Voice) *MemoryStore {
	return &MemoryStore{items: append([]Voice(nil), items...)}
}

// List returns the known voice list.
func (s *MemoryStore) List() []Voice {
	return append([]Voice(nil), s.items...)
}

// FindByID looks up a voice by identifier.
func (s *MemoryStore) FindByID(id string) (Voice, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Voice{}, false
}
