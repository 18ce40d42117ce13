package accuracy

import (
	"sync"

	"github.com/petermattis/goid"
)

// Stack is a LIFO of parsing frames, kept separately for every goroutine.
//
// A single Stack may be shared by goroutines; each one only ever sees the
// frames it pushed itself. There is no locking on the frames: the lane map
// is the only shared structure.
type Stack struct {
	lanes sync.Map // goroutine id -> *lane
}

type lane struct {
	frames []*Context
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) current(create bool) *lane {
	id := goid.Get()
	if l, ok := s.lanes.Load(id); ok {
		return l.(*lane)
	}
	if !create {
		return nil
	}
	l := &lane{}
	s.lanes.Store(id, l)
	return l
}

// Push opens a frame on the calling goroutine.
func (s *Stack) Push(ctx *Context) {
	l := s.current(true)
	l.frames = append(l.frames, ctx)
}

// Pop removes and returns the top frame. It reports false when the
// calling goroutine has no open frame, so it is safe in cleanup paths.
func (s *Stack) Pop() (*Context, bool) {
	l := s.current(false)
	if l == nil || len(l.frames) == 0 {
		return nil, false
	}
	n := len(l.frames) - 1
	ctx := l.frames[n]
	l.frames[n] = nil
	l.frames = l.frames[:n]
	if n == 0 {
		s.lanes.Delete(goid.Get())
	}
	return ctx, true
}

// Peek returns the top frame without removing it.
// Reading with no open frame is a caller bug and returns ErrEmptyStack.
func (s *Stack) Peek() (*Context, error) {
	l := s.current(false)
	if l == nil || len(l.frames) == 0 {
		return nil, ErrEmptyStack
	}
	return l.frames[len(l.frames)-1], nil
}

// IsEmpty reports whether the calling goroutine has no open frame.
func (s *Stack) IsEmpty() bool {
	return s.Depth() == 0
}

// Depth returns the number of frames open on the calling goroutine.
func (s *Stack) Depth() int {
	l := s.current(false)
	if l == nil {
		return 0
	}
	return len(l.frames)
}
