package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestService_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	c := NewService(nil)

	assert.False(t, c.IsAvailable())
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)

	var dest map[string]string
	assert.ErrorIs(t, c.Get(ctx, "k", &dest), ErrUnavailable)
	assert.ErrorIs(t, c.GetMenu(ctx, "header", &dest), ErrUnavailable)

	// writes are no-ops
	assert.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	assert.NoError(t, c.SetMenu(ctx, "header", []string{}))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.InvalidateMenus(ctx))
}

func TestMenuKey(t *testing.T) {
	assert.Equal(t, "menu:header", MenuKey("header"))
}
