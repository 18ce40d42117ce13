package accuracy

// Context holds the accuracy reached by one parsing frame.
//
// A Context is owned by a single frame and is not safe for concurrent use.
type Context struct {
	accuracy Flag
}

// NewContext creates a context starting at the given mask.
func NewContext(initial Flag) *Context {
	return &Context{accuracy: initial}
}

// Accuracy returns the raw mask.
func (c *Context) Accuracy() Flag {
	return c.accuracy
}

// Update ORs flags into the mask. Bits are never cleared.
func (c *Context) Update(flags ...Flag) {
	for _, f := range flags {
		c.accuracy |= f
	}
}

// UpdateLabels resolves each label and ORs the result into the mask.
// If any label is unknown, no bits are changed.
func (c *Context) UpdateLabels(labels ...string) error {
	var acc Flag
	for _, label := range labels {
		f, err := ParseLabel(label)
		if err != nil {
			return err
		}
		acc |= f
	}
	c.accuracy |= acc
	return nil
}

// Merge folds a finished child frame into c.
func (c *Context) Merge(other *Context) {
	if other == nil {
		return
	}
	c.Update(other.accuracy)
}

// HasDate reports whether the context is accurate to a date.
func (c *Context) HasDate() bool {
	return c.accuracy.Has(Date)
}

// HasTime reports whether the context is accurate to a time of day.
func (c *Context) HasTime() bool {
	return c.accuracy.Has(Time)
}

// HasDateOrTime reports whether any accuracy was established.
func (c *Context) HasDateOrTime() bool {
	return c.accuracy != 0
}

// DateTimeFlag returns the legacy code: 0 none, 1 date, 2 time, 3 both.
func (c *Context) DateTimeFlag() int {
	code := 0
	if c.HasDate() {
		code |= 1
	}
	if c.HasTime() {
		code |= 2
	}
	return code
}

// Equal compares masks only.
func (c *Context) Equal(other *Context) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.accuracy == other.accuracy
}

func (c *Context) String() string {
	if c.accuracy == 0 {
		return "Context()"
	}
	return "Context(accuracy=" + c.accuracy.String() + ")"
}
