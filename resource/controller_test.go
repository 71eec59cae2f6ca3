package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_NilIsUnlimited(t *testing.T) {
	var c *Controller

	ctx := context.Background()
	assert.NoError(t, c.AcquireBackground(ctx))
	c.ReleaseBackground()
	assert.NoError(t, c.AcquireIO(ctx, 1<<30))
}

func TestController_BackgroundSlots(t *testing.T) {
	c := NewController(Config{MaxBackgroundWorkers: 1})

	ctx := context.Background()
	require.NoError(t, c.AcquireBackground(ctx))

	// Second acquire must block until released; a canceled context
	// surfaces the block as an error.
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, c.AcquireBackground(canceled))

	c.ReleaseBackground()
	require.NoError(t, c.AcquireBackground(ctx))
	c.ReleaseBackground()
}

func TestController_IOLimitSplitsOversizedRequests(t *testing.T) {
	// Request larger than the burst: must be split, not rejected.
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	assert.NoError(t, c.AcquireIO(context.Background(), (1<<20)+123))
}

func TestController_IOUnlimitedByDefault(t *testing.T) {
	c := NewController(Config{})
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}
