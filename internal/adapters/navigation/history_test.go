package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/jobsync/internal/adapters/navigation"
)

func TestHistory_NavigateAndBack(t *testing.T) {
	h := navigation.NewHistory("")
	var seen []string
	h.Subscribe(func(f string) { seen = append(seen, f) })

	h.Navigate("#/1")
	h.Navigate("#/1")
	h.Navigate("#/2")
	assert.Equal(t, "#/2", h.Fragment())

	assert.True(t, h.Back())
	assert.Equal(t, "#/1", h.Fragment())
	assert.True(t, h.Back())
	assert.Empty(t, h.Fragment())
	assert.False(t, h.Back())

	assert.Equal(t, []string{"#/1", "#/2", "#/1", ""}, seen)
}

func TestHistory_Unsubscribe(t *testing.T) {
	h := navigation.NewHistory("#/5")
	var calls int
	unsubscribe := h.Subscribe(func(string) { calls++ })
	unsubscribe()

	h.Navigate("#/6")
	assert.Zero(t, calls)
	assert.Equal(t, "#/6", h.Fragment())
}
