package cauce

import "fmt"

// fail logs a contract violation and panics with it. Callers must not have
// mutated any state before calling fail.
func (c *Cauce) fail(err error) {
	c.log.Errorf("%v", err)
	panic(err)
}

// ready returns the linked program, failing fast when Activate has not run.
func (c *Cauce) ready(op string) *shaderProgram {
	if c.prog == nil {
		c.fail(fmt.Errorf("%w: %s", ErrNotReady, op))
	}
	return c.prog
}

// popTop removes the top entry of s, failing fast when s is empty.
func popTop[T any](c *Cauce, s *stack[T]) T {
	v, ok := s.pop()
	if !ok {
		c.fail(fmt.Errorf("%w: %s", ErrEmptyStack, s.name))
	}
	return v
}
