package page

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestMountHook_ConcurrentAttachRunsOnce(t *testing.T) {
	h := NewMountHook()
	var runs, starters int32

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h.Attach(context.Background(), func(context.Context) { atomic.AddInt32(&runs, 1) }) {
				atomic.AddInt32(&starters, 1)
			}
		}()
	}
	wg.Wait()

	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("mount action did not finish")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	assert.Equal(t, int32(1), atomic.LoadInt32(&starters))
	assert.True(t, h.Attached())
}

func TestMountHook_ActionKeepsValuesDropsCancel(t *testing.T) {
	h := NewMountHook()
	assert.False(t, h.Attached())

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
	cancel()

	got := make(chan context.Context, 1)
	require.True(t, h.Attach(ctx, func(c context.Context) { got <- c }))
	c := <-got
	assert.Equal(t, "v", c.Value(ctxKey{}))
	assert.NoError(t, c.Err())
}
