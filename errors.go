package cauce

import "errors"

var (
	// ErrNotReady is raised when the pipeline is used before Activate has
	// compiled the shader program.
	ErrNotReady = errors.New("cauce: shader program not initialized")
	// ErrEmptyStack is raised by a pop on a stack with no saved entries.
	ErrEmptyStack = errors.New("cauce: pop on empty stack")
	// ErrLightCount is raised when a light collection is empty or larger
	// than MaxLights.
	ErrLightCount = errors.New("cauce: invalid light collection size")
	// ErrInvalidLight reports a light with a zero direction, a w other than
	// 0 or 1, or a negative color.
	ErrInvalidLight = errors.New("cauce: invalid light")
	// ErrInvalidMaterial reports a negative material coefficient.
	ErrInvalidMaterial = errors.New("cauce: invalid material")
	// ErrProgram wraps shader compile and link failures.
	ErrProgram = errors.New("cauce: shader program")
	// ErrTexture wraps texture decode and creation failures.
	ErrTexture = errors.New("cauce: texture")
	// ErrBuffer wraps GPU buffer creation failures.
	ErrBuffer = errors.New("cauce: buffer")
	// ErrUnbalanced is returned by Balanced when a stack still holds entries.
	ErrUnbalanced = errors.New("cauce: unbalanced state stacks")
)
