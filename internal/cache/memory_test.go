package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory(time.Hour)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	assert.NoError(t, c.Set("key", "value"))

	val, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
	assert.Equal(t, 1, c.Len())
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)

	assert.NoError(t, c.Set("key", "value"))

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_NoExpiry(t *testing.T) {
	c := NewMemory(0)

	assert.NoError(t, c.Set("key", "value"))

	val, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestMemory_Overwrite(t *testing.T) {
	c := NewMemory(time.Hour)

	assert.NoError(t, c.Set("key", "first"))
	assert.NoError(t, c.Set("key", "second"))

	val, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "second", val)
	assert.Equal(t, 1, c.Len())
}

func TestKey(t *testing.T) {
	a := Key("en", "es", "hello")
	b := Key("en", "es", "hello")
	c := Key("en", "fr", "hello")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
