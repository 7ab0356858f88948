package kv

// LocalInputs synthesizes preimages for keys whose contents are derived
// from the host's own configuration (boot info) rather than fetched or
// computed by a hint handler.
type LocalInputs interface {
	Get(key [32]byte) ([]byte, bool)
}

// SplitStore fronts a backing KV with a local-inputs provider: boot-info
// keys are answered locally and never touch the backing store, everything
// else falls through, per spec.md §5.
type SplitStore struct {
	Local   LocalInputs
	Backing KV
}

func (s *SplitStore) Get(key [32]byte) ([]byte, error) {
	if v, ok := s.Local.Get(key); ok {
		return v, nil
	}
	return s.Backing.Get(key)
}

func (s *SplitStore) Put(key [32]byte, value []byte) error {
	return s.Backing.Put(key, value)
}
