package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifyKeys(t *testing.T) {
	j := NewJoypad()

	j.ModifyKeys(KeyA|KeyUp, 0)
	assert.Equal(t, uint16(KeyA|KeyUp), j.PressedKeys())

	j.ModifyKeys(KeyB, KeyUp)
	assert.Equal(t, uint16(KeyA|KeyB), j.PressedKeys())

	assert.Equal(t, j.PressedKeys(), j.AutoRead())
}

func TestEmptyControllerAlwaysZero(t *testing.T) {
	var e Empty
	assert.Equal(t, uint16(0), e.AutoRead())
}
