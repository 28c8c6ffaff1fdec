package buffer

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/errors"
)

// InsertResult is the outcome of an asynchronous insertion.
type InsertResult struct {
	// Units and Symbols count what was actually applied. On a cancelled
	// insertion they describe the consistent prefix left in the
	// container; on any other failure they are zero.
	Units   int
	Symbols int
	// Cancelled is set when the task observed its cancel request before
	// finishing. Err then matches errors.CodeCancelled.
	Cancelled bool
	Err       error
}

// InsertTask is a handle to an insertion running on its own goroutine.
// The container must not be used, by the caller or by another task,
// until the task completes; containers are not synchronized.
//
// A task handle may be polled, waited on, and cancelled from any
// goroutine.
type InsertTask struct {
	c      *Container
	cancel atomic.Bool
	result InsertResult // written by the worker before done closes
	done   chan struct{}
}

// Cancel requests cooperative cancellation. The worker samples the
// request before each symbol it writes; whatever was already written
// stays as a consistent prefix. Cancelling a finished task has no
// effect. Cancel does not wait; use Done or Wait to observe completion.
func (t *InsertTask) Cancel() {
	t.cancel.Store(true)
}

// Done returns a channel closed when the task completes.
func (t *InsertTask) Done() <-chan struct{} {
	return t.done
}

// Poll reports the task's result if it has completed.
func (t *InsertTask) Poll() (InsertResult, bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return InsertResult{}, false
	}
}

// Wait blocks until the task completes or ctx expires. A context error
// does not cancel the task; call Cancel for that.
func (t *InsertTask) Wait(ctx context.Context) (InsertResult, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return InsertResult{}, ctx.Err()
	}
}

// Container returns the container the task operates on.
func (t *InsertTask) Container() *Container {
	return t.c
}

// dispatch runs spec on its own goroutine and returns the task handle.
func dispatch(c *Container, spec insertSpec) *InsertTask {
	t := &InsertTask{c: c, done: make(chan struct{})}
	Logger().Debug("insert task dispatched",
		zap.Int("leftPos", spec.leftPos),
		zap.Bool("reserve", spec.reserve))
	go func() {
		defer close(t.done)
		out, err := c.runInsert(spec, t.cancel.Load)
		t.result = InsertResult{
			Units:     out.Units,
			Symbols:   out.Symbols,
			Cancelled: errors.CodeOf(err) == errors.CodeCancelled,
			Err:       err,
		}
	}()
	return t
}

// InsertAnsiAsync is InsertAnsi running on its own goroutine.
func (c *Container) InsertAnsiAsync(leftPos int, items []byte, count int, reserve bool) *InsertTask {
	return dispatch(c, c.specAnsi(leftPos, items, count, nil, reserve))
}

// InsertAnsiCharmapAsync is InsertAnsiCharmap running on its own goroutine.
func (c *Container) InsertAnsiCharmapAsync(leftPos int, items []byte, count int, cm *charmap.Charmap, reserve bool) *InsertTask {
	return dispatch(c, c.specAnsi(leftPos, items, count, cm, reserve))
}

// InsertUTF8Async is InsertUTF8 running on its own goroutine.
func (c *Container) InsertUTF8Async(leftPos int, items []byte, count int, reserve bool) *InsertTask {
	return dispatch(c, c.specUTF8(leftPos, items, count, reserve))
}

// InsertUTF16Async is InsertUTF16 running on its own goroutine.
func (c *Container) InsertUTF16Async(leftPos int, items []byte, count int, endian textbuf.Endianness, reserve bool) *InsertTask {
	return dispatch(c, c.specUTF16(leftPos, items, count, endian, reserve))
}

// InsertUTF32Async is InsertUTF32 running on its own goroutine.
func (c *Container) InsertUTF32Async(leftPos int, items []byte, count int, endian textbuf.Endianness, reserve bool) *InsertTask {
	return dispatch(c, c.specUTF32(leftPos, items, count, endian, reserve))
}

// InsertWideAsync is InsertWide running on its own goroutine.
func (c *Container) InsertWideAsync(leftPos int, items []byte, count, wideWidth int, reserve bool) *InsertTask {
	return dispatch(c, c.specWide(leftPos, items, count, wideWidth, reserve))
}

// InsertStringAsync is InsertString running on its own goroutine.
func (c *Container) InsertStringAsync(leftPos int, src *Container, reserve bool) *InsertTask {
	return dispatch(c, c.specString(leftPos, src, reserve))
}
