package input

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type Phase int

const (
	Down Phase = iota
	Move
	Up
)

// Pointer is one raw touch or mouse sample in window pixels, Y down.
type Pointer struct {
	ID    int64
	Phase Phase
	X, Y  float32
	At    time.Time
}

const (
	DefaultLongPress = 600 * time.Millisecond
	// DefaultSlop is how far, in pixels, a pointer may wander and still
	// count as held still.
	DefaultSlop = 12
)

// Recognizer turns pointer samples into Drag, Pan, Pinch and LongPress
// events pushed to a Queue. It is safe for concurrent use, so a host may
// feed samples from its event goroutine and call Tick from the render one.
type Recognizer struct {
	LongPress time.Duration
	Slop      float32

	mu       sync.Mutex
	q        *Queue
	w, h     float32
	pointers map[int64]mgl32.Vec2
	order    []int64

	// press tracks the candidate long press of a lone pointer.
	pressAt    time.Time
	pressFrom  mgl32.Vec2
	pressArmed bool
}

func NewRecognizer(q *Queue) *Recognizer {
	return &Recognizer{
		LongPress: DefaultLongPress,
		Slop:      DefaultSlop,
		q:         q,
		w:         1,
		h:         1,
		pointers:  map[int64]mgl32.Vec2{},
	}
}

// SetViewport sets the size used to normalize motion. It does not queue a
// Resize event.
func (r *Recognizer) SetViewport(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width > 0 && height > 0 {
		r.w, r.h = float32(width), float32(height)
	}
}

func (r *Recognizer) Feed(p Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := mgl32.Vec2{p.X, p.Y}
	switch p.Phase {
	case Down:
		if _, ok := r.pointers[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.pointers[p.ID] = pos
		r.pressArmed = len(r.pointers) == 1
		r.pressAt, r.pressFrom = p.At, pos
	case Move:
		prev, ok := r.pointers[p.ID]
		if !ok {
			return
		}
		if r.pressArmed && pos.Sub(r.pressFrom).Len() > r.Slop {
			r.pressArmed = false
		}
		switch len(r.pointers) {
		case 1:
			r.pointers[p.ID] = pos
			d := pos.Sub(prev)
			if d.X() != 0 || d.Y() != 0 {
				r.q.Push(Event{Kind: Drag, DX: d.X() / r.w, DY: -d.Y() / r.h})
			}
		default:
			r.twoPointer(p.ID, pos)
		}
		r.checkLongPress(p.At)
	case Up:
		if _, ok := r.pointers[p.ID]; !ok {
			return
		}
		r.checkLongPress(p.At)
		delete(r.pointers, p.ID)
		for i, id := range r.order {
			if id == p.ID {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		r.pressArmed = false
	}
}

// twoPointer handles a move of id while at least two pointers are down.
// Only the first two pointers take part.
func (r *Recognizer) twoPointer(id int64, pos mgl32.Vec2) {
	a, b := r.order[0], r.order[1]
	if id != a && id != b {
		r.pointers[id] = pos
		return
	}
	pa, pb := r.pointers[a], r.pointers[b]
	before := pb.Sub(pa).Len()
	centerBefore := pa.Add(pb).Mul(0.5)
	r.pointers[id] = pos
	pa, pb = r.pointers[a], r.pointers[b]
	after := pb.Sub(pa).Len()
	center := pa.Add(pb).Mul(0.5)

	if before > 0 && after > 0 && !mgl32.FloatEqual(before, after) {
		r.q.Push(Event{Kind: Pinch, Factor: after / before})
	}
	d := center.Sub(centerBefore)
	if d.X() != 0 || d.Y() != 0 {
		r.q.Push(Event{Kind: Pan, DX: d.X() / r.w, DY: -d.Y() / r.h})
	}
}

// Tick fires a pending long press once its hold time has elapsed. Hosts
// call it every frame since a still pointer sends no samples.
func (r *Recognizer) Tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkLongPress(now)
}

func (r *Recognizer) checkLongPress(now time.Time) {
	if r.pressArmed && len(r.pointers) == 1 && now.Sub(r.pressAt) >= r.LongPress {
		r.pressArmed = false
		r.q.Push(Event{Kind: LongPress})
	}
}
