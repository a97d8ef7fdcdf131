package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type saveRecorder struct {
	mu    sync.Mutex
	saves []save
	fail  bool
}

type save struct {
	pageID  string
	content string
}

func (r *saveRecorder) save(_ context.Context, pageID string, content []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("db down")
	}
	r.saves = append(r.saves, save{pageID: pageID, content: string(content)})
	return nil
}

func (r *saveRecorder) all() []save {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]save(nil), r.saves...)
}

func (r *saveRecorder) setFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func TestController_DebouncedBurst(t *testing.T) {
	rec := &saveRecorder{}
	c := NewController(rec.save, WithDebounce(20*time.Millisecond))
	defer c.Close()

	// a burst of edits collapses into one save carrying the last content
	assert.NoError(t, c.Set("page-1", []byte("a")))
	assert.NoError(t, c.Set("page-1", []byte("ab")))
	assert.NoError(t, c.Set("page-1", []byte("abc")))
	assert.Equal(t, StatePending, c.State())

	assert.Eventually(t, func() bool {
		return c.State() == StateSaved
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []save{{pageID: "page-1", content: "abc"}}, rec.all())
}

func TestController_FlushOnPageSwitch(t *testing.T) {
	rec := &saveRecorder{}
	c := NewController(rec.save, WithDebounce(time.Minute))
	defer c.Close()

	assert.NoError(t, c.Set("page-1", []byte("draft")))

	// editing another page flushes the buffer before the timer fires
	assert.NoError(t, c.Set("page-2", []byte("other")))

	saves := rec.all()
	assert.Equal(t, []save{{pageID: "page-1", content: "draft"}}, saves)

	assert.NoError(t, c.Flush())
	assert.Equal(t, []save{
		{pageID: "page-1", content: "draft"},
		{pageID: "page-2", content: "other"},
	}, rec.all())
}

func TestController_SelectFlushes(t *testing.T) {
	rec := &saveRecorder{}
	c := NewController(rec.save, WithDebounce(time.Minute))
	defer c.Close()

	assert.NoError(t, c.Set("page-1", []byte("draft")))
	assert.NoError(t, c.Select("page-2"))

	assert.Equal(t, []save{{pageID: "page-1", content: "draft"}}, rec.all())
	assert.Equal(t, StateSaved, c.State())

	// selecting the current page is not a flush
	assert.NoError(t, c.Set("page-2", []byte("other")))
	assert.NoError(t, c.Select("page-2"))
	assert.Equal(t, StatePending, c.State())
}

func TestController_RetryAfterError(t *testing.T) {
	rec := &saveRecorder{fail: true}
	c := NewController(rec.save, WithDebounce(time.Minute))
	defer c.Close()

	assert.NoError(t, c.Set("page-1", []byte("draft")))
	assert.Error(t, c.Flush())
	assert.Equal(t, StateError, c.State())
	assert.Empty(t, rec.all())

	// the buffer survives the failure, so the next flush retries it
	rec.setFail(false)
	assert.NoError(t, c.Flush())
	assert.Equal(t, StateSaved, c.State())
	assert.Equal(t, []save{{pageID: "page-1", content: "draft"}}, rec.all())
}

func TestController_SwitchAfterError(t *testing.T) {
	rec := &saveRecorder{fail: true}
	c := NewController(rec.save, WithDebounce(time.Minute))
	defer c.Close()

	assert.NoError(t, c.Set("page-1", []byte("draft")))
	assert.Error(t, c.Flush())
	assert.Equal(t, StateError, c.State())

	// while the failed buffer is stuck, a switch must not adopt it for the
	// new page or drop it
	assert.Error(t, c.Select("page-2"))
	assert.Error(t, c.Set("page-2", []byte("other")))
	assert.Empty(t, rec.all())

	rec.setFail(false)
	assert.NoError(t, c.Set("page-2", []byte("other")))
	assert.Equal(t, []save{{pageID: "page-1", content: "draft"}}, rec.all())

	assert.NoError(t, c.Flush())
	assert.Equal(t, []save{
		{pageID: "page-1", content: "draft"},
		{pageID: "page-2", content: "other"},
	}, rec.all())
}

func TestController_Close(t *testing.T) {
	rec := &saveRecorder{}
	c := NewController(rec.save, WithDebounce(time.Minute))

	assert.NoError(t, c.Set("page-1", []byte("draft")))
	assert.NoError(t, c.Close())
	assert.Equal(t, []save{{pageID: "page-1", content: "draft"}}, rec.all())

	// edits after close are dropped
	assert.NoError(t, c.Set("page-1", []byte("late")))
	assert.NoError(t, c.Flush())
	assert.Equal(t, []save{{pageID: "page-1", content: "draft"}}, rec.all())
}
