// Package input turns raw pointer and key input into viewer gestures and
// hands them to the render goroutine.
package input

import "sync"

type Kind int

const (
	// Drag is a one pointer motion; DX and DY are fractions of the viewport,
	// with DY positive upwards.
	Drag Kind = iota
	// Pan is the motion of the centroid of two pointers.
	Pan
	// Pinch scales the view by Factor; above 1 zooms in.
	Pinch
	// LongPress is a pointer held still.
	LongPress
	NextObject
	// ParamS adds Delta to the S parameter.
	ParamS
	// Resize reports a new viewport size in pixels.
	Resize
)

func (k Kind) String() string {
	switch k {
	case Drag:
		return "drag"
	case Pan:
		return "pan"
	case Pinch:
		return "pinch"
	case LongPress:
		return "long press"
	case NextObject:
		return "next object"
	case ParamS:
		return "param s"
	case Resize:
		return "resize"
	}
	return "unknown"
}

type Event struct {
	Kind   Kind
	DX, DY float32
	Factor float32
	Delta  float32

	Width, Height int
}

// Queue passes events from the goroutine that receives them to the render
// goroutine. It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Drain removes and returns every queued event in arrival order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

const (
	zoomStep   = 1.1
	paramSStep = 0.05
)

// Key maps a key press to an event: n or space selects the next object,
// + and - zoom, s and a raise and lower the S parameter.
func Key(r rune) (Event, bool) {
	switch r {
	case 'n', 'N', ' ':
		return Event{Kind: NextObject}, true
	case '+', '=':
		return Event{Kind: Pinch, Factor: zoomStep}, true
	case '-':
		return Event{Kind: Pinch, Factor: 1 / zoomStep}, true
	case 's', 'S':
		return Event{Kind: ParamS, Delta: paramSStep}, true
	case 'a', 'A':
		return Event{Kind: ParamS, Delta: -paramSStep}, true
	}
	return Event{}, false
}
