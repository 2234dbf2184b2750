package region

import "fmt"

// Set holds one value per enabled region. Disabled regions have no value
// at all.
type Set[T any] struct {
	enabled [len(All)]bool
	values  [len(All)]T
}

// NewSet builds a value for each enabled region with mk.
func NewSet[T any](cfgs Configs, mk func(ID) T) *Set[T] {
	s := &Set[T]{}
	for _, id := range cfgs.Enabled() {
		s.enabled[id] = true
		s.values[id] = mk(id)
	}
	return s
}

func (s *Set[T]) Enabled(id ID) bool {
	return id.Valid() && s.enabled[id]
}

// Get returns the value of region id, or ErrDisabled.
func (s *Set[T]) Get(id ID) (T, error) {
	if !s.Enabled(id) {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrDisabled, id)
	}
	return s.values[id], nil
}

// ForEach calls fn for each enabled region in the order of All, stopping at
// the first error.
func (s *Set[T]) ForEach(fn func(ID, T) error) error {
	for _, id := range All {
		if !s.enabled[id] {
			continue
		}
		if err := fn(id, s.values[id]); err != nil {
			return err
		}
	}
	return nil
}

// IDs returns the enabled regions in order.
func (s *Set[T]) IDs() []ID {
	var ids []ID
	for _, id := range All {
		if s.enabled[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Set[T]) Len() int {
	n := 0
	for _, ok := range s.enabled {
		if ok {
			n++
		}
	}
	return n
}
