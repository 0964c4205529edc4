package input

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func newRecognizer() (*Recognizer, *Queue) {
	q := &Queue{}
	r := NewRecognizer(q)
	r.SetViewport(200, 100)
	return r, q
}

func TestQueue_DrainInOrder(t *testing.T) {
	q := &Queue{}
	q.Push(Event{Kind: Drag}, Event{Kind: Pinch})
	q.Push(Event{Kind: NextObject})

	assert.Equal(t, 3, q.Len())
	events := q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, []Kind{Drag, Pinch, NextObject}, []Kind{events[0].Kind, events[1].Kind, events[2].Kind})
	assert.Empty(t, q.Drain())
}

func TestQueue_Concurrent(t *testing.T) {
	q := &Queue{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(Event{Kind: ParamS, Delta: 1})
			}
		}()
	}
	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		total += len(q.Drain())
		select {
		case <-done:
			total += len(q.Drain())
			assert.Equal(t, 800, total)
			return
		default:
		}
	}
}

func TestRecognizer_Drag(t *testing.T) {
	r, q := newRecognizer()

	r.Feed(Pointer{ID: 1, Phase: Down, X: 100, Y: 50, At: at(0)})
	r.Feed(Pointer{ID: 1, Phase: Move, X: 150, Y: 40, At: at(10)})
	r.Feed(Pointer{ID: 1, Phase: Move, X: 150, Y: 40, At: at(20)})
	r.Feed(Pointer{ID: 1, Phase: Up, X: 150, Y: 40, At: at(30)})

	events := q.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, Drag, events[0].Kind)
	assert.InDelta(t, 0.25, events[0].DX, 1e-6)
	assert.InDelta(t, 0.1, events[0].DY, 1e-6)
}

func TestRecognizer_PinchAndPan(t *testing.T) {
	r, q := newRecognizer()

	r.Feed(Pointer{ID: 1, Phase: Down, X: 50, Y: 50, At: at(0)})
	r.Feed(Pointer{ID: 2, Phase: Down, X: 70, Y: 50, At: at(5)})
	r.Feed(Pointer{ID: 2, Phase: Move, X: 90, Y: 50, At: at(10)})

	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, Pinch, events[0].Kind)
	assert.InDelta(t, 2, events[0].Factor, 1e-6)
	assert.Equal(t, Pan, events[1].Kind)
	assert.InDelta(t, 0.05, events[1].DX, 1e-6)
	assert.InDelta(t, 0, events[1].DY, 1e-6)

	// A third pointer does not take part.
	r.Feed(Pointer{ID: 3, Phase: Down, X: 0, Y: 0, At: at(20)})
	r.Feed(Pointer{ID: 3, Phase: Move, X: 10, Y: 10, At: at(30)})
	assert.Empty(t, q.Drain())
}

func TestRecognizer_LongPress(t *testing.T) {
	r, q := newRecognizer()

	r.Feed(Pointer{ID: 1, Phase: Down, X: 100, Y: 50, At: at(0)})
	r.Feed(Pointer{ID: 1, Phase: Move, X: 105, Y: 52, At: at(100)})
	r.Tick(at(500))
	assert.Equal(t, []Event{{Kind: Drag, DX: 5.0 / 200, DY: -2.0 / 100}}, q.Drain())

	r.Tick(at(600))
	r.Tick(at(900))
	assert.Equal(t, []Event{{Kind: LongPress}}, q.Drain())
}

func TestRecognizer_NoLongPress(t *testing.T) {
	tests := []struct {
		name  string
		feed  []Pointer
		check time.Time
	}{
		{
			name: "moved past slop",
			feed: []Pointer{
				{ID: 1, Phase: Down, X: 100, Y: 50, At: at(0)},
				{ID: 1, Phase: Move, X: 130, Y: 50, At: at(100)},
			},
			check: at(1000),
		},
		{
			name: "released early",
			feed: []Pointer{
				{ID: 1, Phase: Down, X: 100, Y: 50, At: at(0)},
				{ID: 1, Phase: Up, X: 100, Y: 50, At: at(200)},
			},
			check: at(1000),
		},
		{
			name: "second pointer",
			feed: []Pointer{
				{ID: 1, Phase: Down, X: 100, Y: 50, At: at(0)},
				{ID: 2, Phase: Down, X: 120, Y: 50, At: at(10)},
			},
			check: at(1000),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, q := newRecognizer()
			for _, p := range tt.feed {
				r.Feed(p)
			}
			r.Tick(tt.check)
			for _, e := range q.Drain() {
				assert.NotEqual(t, LongPress, e.Kind)
			}
		})
	}
}

func TestKey(t *testing.T) {
	e, ok := Key('n')
	assert.True(t, ok)
	assert.Equal(t, NextObject, e.Kind)

	e, ok = Key('-')
	assert.True(t, ok)
	assert.InDelta(t, 1/1.1, e.Factor, 1e-6)

	e, ok = Key('a')
	assert.True(t, ok)
	assert.Equal(t, Event{Kind: ParamS, Delta: -paramSStep}, e)

	_, ok = Key('x')
	assert.False(t, ok)
}
