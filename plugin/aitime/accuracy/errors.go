package accuracy

import "github.com/pkg/errors"

var (
	// ErrUnknownLabel is returned for a unit label outside the label table.
	ErrUnknownLabel = errors.New("unknown accuracy label")
	// ErrEmptyStack is returned by Stack.Peek when no frame is open.
	ErrEmptyStack = errors.New("context stack is empty")
)
