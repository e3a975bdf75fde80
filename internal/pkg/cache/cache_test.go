package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// The app must run without redis, so a nil cache behaves as an empty one.
func TestNilCacheIsNoOp(t *testing.T) {
	c := New(nil)
	assert.Nil(t, c)

	ctx := context.Background()

	var target map[string]string
	assert.ErrorIs(t, c.Get(ctx, "key", &target), ErrMiss)
	assert.NoError(t, c.Set(ctx, "key", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, c.DeletePrefix(ctx, "key"))
}
