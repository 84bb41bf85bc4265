package page

import (
	"context"
	"sync"
)

// MountHook runs an action exactly once, the first time its view is attached
// to a display context. Later attachments are no-ops.
type MountHook struct {
	once     sync.Once
	done     chan struct{}
	attached chan struct{}
}

func NewMountHook() *MountHook {
	return &MountHook{done: make(chan struct{}), attached: make(chan struct{})}
}

// Attach starts action in its own goroutine on the first call and reports
// whether this call was the one that started it. The action's context carries
// ctx's values but not its cancellation: detaching the view does not abort it.
func (h *MountHook) Attach(ctx context.Context, action func(context.Context)) bool {
	started := false
	h.once.Do(func() {
		started = true
		close(h.attached)
		go func() {
			defer close(h.done)
			action(context.WithoutCancel(ctx))
		}()
	})
	return started
}

// Attached reports whether Attach has been called.
func (h *MountHook) Attached() bool {
	select {
	case <-h.attached:
		return true
	default:
		return false
	}
}

// Done is closed after the mount action returned.
func (h *MountHook) Done() <-chan struct{} { return h.done }
