package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("stock:item:1", "pixel")

	v, found := c.Get("stock:item:1")
	assert.True(t, found)
	assert.Equal(t, "pixel", v)

	_, found = c.Get("stock:item:2")
	assert.False(t, found)
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	c.Set("stock:list", "items", 10*time.Millisecond)

	_, found := c.Get("stock:list")
	assert.True(t, found)

	time.Sleep(20 * time.Millisecond)
	_, found = c.Get("stock:list")
	assert.False(t, found)
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("stock:list", 1)
	c.Set("stock:item:1", 2)
	c.Set("other:key", 3)

	c.DeleteByPrefix("stock:")

	_, found := c.Get("stock:list")
	assert.False(t, found)
	_, found = c.Get("stock:item:1")
	assert.False(t, found)
	_, found = c.Get("other:key")
	assert.True(t, found)
	assert.Equal(t, 1, c.Len())
}

func TestDelete(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v")
	c.Delete("k")

	_, found := c.Get("k")
	assert.False(t, found)
}
