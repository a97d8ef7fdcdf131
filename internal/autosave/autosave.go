package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle of the buffered content.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSaving  State = "saving"
	StateSaved   State = "saved"
	StateError   State = "error"
)

// DefaultDebounce is the pause after the last edit before a save fires.
const DefaultDebounce = time.Second

// SaveFunc persists the buffered content of a page.
type SaveFunc func(ctx context.Context, pageID string, content []byte) error

// Controller coalesces a burst of edits into a single save per page. Edits
// buffer the latest content and arm a timer; the timer firing, an explicit
// Flush, or switching to another page all persist the buffer. A failed
// save keeps the buffer so the next edit or flush retries it.
type Controller struct {
	save     SaveFunc
	debounce time.Duration

	mu      sync.Mutex
	state   State
	pageID  string
	content []byte
	timer   *time.Timer
	closed  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = d
	}
}

// NewController creates a controller that persists through save.
func NewController(save SaveFunc, opts ...Option) *Controller {
	c := &Controller{
		save:     save,
		debounce: DefaultDebounce,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Set buffers new content for a page and arms the debounce timer. Setting
// content for a different page first flushes the buffered edit, pending or
// failed, so edits never land on the wrong page.
func (c *Controller) Set(pageID string, content []byte) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if (c.state == StatePending || c.state == StateError) && c.pageID != pageID {
		c.mu.Unlock()
		if err := c.Flush(); err != nil {
			return err
		}
		c.mu.Lock()
	}

	c.pageID = pageID
	c.content = content
	c.state = StatePending
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.fire)
	c.mu.Unlock()
	return nil
}

// Select switches the active page. A pending or failed buffer for another
// page is flushed before the switch.
func (c *Controller) Select(pageID string) error {
	c.mu.Lock()
	pending := (c.state == StatePending || c.state == StateError) && c.pageID != pageID
	c.mu.Unlock()

	if pending {
		if err := c.Flush(); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.pageID = pageID
	c.mu.Unlock()
	return nil
}

// Flush synchronously persists the pending buffer, if any.
func (c *Controller) Flush() error {
	c.mu.Lock()
	if c.state != StatePending && c.state != StateError {
		c.mu.Unlock()
		return nil
	}
	if c.content == nil {
		c.mu.Unlock()
		return nil
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	pageID, content := c.pageID, c.content
	c.state = StateSaving
	c.mu.Unlock()

	return c.persist(pageID, content)
}

// Close flushes any pending buffer and stops the controller. Further Set
// calls are ignored.
func (c *Controller) Close() error {
	err := c.Flush()

	c.mu.Lock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	return err
}

// fire runs on the debounce timer.
func (c *Controller) fire() {
	c.mu.Lock()
	if c.state != StatePending || c.closed {
		c.mu.Unlock()
		return
	}
	pageID, content := c.pageID, c.content
	c.state = StateSaving
	c.mu.Unlock()

	if err := c.persist(pageID, content); err != nil {
		logrus.Errorf("autosave of page %s failed: %v", pageID, err)
	}
}

func (c *Controller) persist(pageID string, content []byte) error {
	err := c.save(context.Background(), pageID, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSaving {
		// a new edit arrived while saving, leave its pending state alone
		return err
	}
	if err != nil {
		c.state = StateError
		return err
	}
	c.state = StateSaved
	c.content = nil
	return nil
}
