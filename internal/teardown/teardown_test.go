package teardown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriggerRunsCallbacksOnce(t *testing.T) {
	h := New(func(int) {})

	var order []int

	h.Register(func() { order = append(order, 1) })
	h.Register(func() { order = append(order, 2) })

	assert.True(t, h.Trigger())
	assert.False(t, h.Trigger())
	assert.True(t, h.Fired())
	assert.Equal(t, []int{1, 2}, order)
}
