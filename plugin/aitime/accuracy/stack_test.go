package accuracy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_Sequence(t *testing.T) {
	s := NewStack()

	_, err := s.Peek()
	assert.True(t, errors.Is(err, ErrEmptyStack))

	ctx1 := NewContext(Year)
	ctx2 := NewContext(Hour)
	s.Push(ctx1)
	s.Push(ctx2)
	assert.Equal(t, 2, s.Depth())

	top, err := s.Peek()
	require.NoError(t, err)
	assert.Same(t, ctx2, top)

	got, ok := s.Pop()
	require.True(t, ok)
	assert.Same(t, ctx2, got)

	got, ok = s.Pop()
	require.True(t, ok)
	assert.Same(t, ctx1, got)

	got, ok = s.Pop()
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.True(t, s.IsEmpty())
}

func TestStack_PopEmptyIsSafe(t *testing.T) {
	s := NewStack()
	for i := 0; i < 3; i++ {
		_, ok := s.Pop()
		assert.False(t, ok)
	}
	assert.True(t, s.IsEmpty())

	// The stack is still usable after speculative pops.
	ctx := NewContext(Day)
	s.Push(ctx)
	got, ok := s.Pop()
	require.True(t, ok)
	assert.Same(t, ctx, got)
}

func TestStack_PeekDoesNotRemove(t *testing.T) {
	s := NewStack()
	ctx := NewContext(0)
	s.Push(ctx)

	for i := 0; i < 2; i++ {
		top, err := s.Peek()
		require.NoError(t, err)
		top.Update(Min)
	}
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, Min, ctx.Accuracy())
}

func TestStack_EmptyAfterBalancedOps(t *testing.T) {
	s := NewStack()
	for n := 1; n <= 5; n++ {
		for i := 0; i < n; i++ {
			s.Push(NewContext(0))
		}
		for i := 0; i < n-1; i++ {
			s.Pop()
			assert.False(t, s.IsEmpty())
		}
		s.Pop()
		assert.True(t, s.IsEmpty())
	}
}

func TestStack_GoroutineIsolation(t *testing.T) {
	s := NewStack()
	outer := NewContext(Year)
	s.Push(outer)

	const workers = 16
	var wg sync.WaitGroup
	results := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if !s.IsEmpty() {
				return
			}
			if _, err := s.Peek(); !errors.Is(err, ErrEmptyStack) {
				return
			}
			mine := NewContext(Flag(1) << (i % 9))
			s.Push(mine)
			s.Push(NewContext(0))
			s.Pop()
			top, err := s.Peek()
			if err != nil || top != mine {
				return
			}
			got, ok := s.Pop()
			results[i] = ok && got == mine && s.IsEmpty()
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "worker %d", i)
	}
	top, err := s.Peek()
	require.NoError(t, err)
	assert.Same(t, outer, top)
	assert.Equal(t, 1, s.Depth())
}
