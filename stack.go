package cauce

// stack holds saved snapshots of one piece of pipeline state.
type stack[T any] struct {
	name  string
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return top, true
}

func (s *stack[T]) len() int { return len(s.items) }
