package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pizza-orders/internal/config"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

func newTestCache(t *testing.T) *Cache {
	srv := miniredis.RunT(t)
	c, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: srv.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestCache_SetGetInvalidate(t *testing.T) {
	c := newTestCache(t)

	menu := []models.MenuItem{
		{ID: 1, Title: "Veggie", Description: "A garden of delight", Image: "pizza1.png", Price: 0.0038},
		{ID: 2, Title: "Pepperoni", Description: "Spicy treat", Image: "pizza2.png", Price: 0.0042},
	}

	require.NoError(t, c.Set("menu", menu, time.Hour))

	var got []models.MenuItem
	found, err := c.Get("menu", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, menu, got)

	require.NoError(t, c.Invalidate("menu"))

	got = nil
	found, err = c.Get("menu", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestCache_GetMissingKey(t *testing.T) {
	c := newTestCache(t)

	var got []models.MenuItem
	found, err := c.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_GetCorruptedValue(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Db.Set(context.Background(), "menu", "not-json", time.Hour).Err())

	var got []models.MenuItem
	found, err := c.Get("menu", &got)
	assert.Error(t, err)
	assert.False(t, found)
}
