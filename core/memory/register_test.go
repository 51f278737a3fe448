package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	r := NewRegister()
	assert.False(t, r.Stored())
	assert.Zero(t, r.Recall())

	assert.Equal(t, 5.0, r.Add(5))
	assert.Equal(t, 2.5, r.Add(-2.5))
	assert.True(t, r.Stored())
	assert.Equal(t, 2.5, r.Recall())

	r.Clear()
	assert.False(t, r.Stored())
	assert.Zero(t, r.Recall())
}
