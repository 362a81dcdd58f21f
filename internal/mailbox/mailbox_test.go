package mailbox_test

import (
	"testing"

	"github.com/loomaudio/graph/internal/mailbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeOnEmptyMailboxReturnsFalse(t *testing.T) {
	var m mailbox.Mailbox[int]
	v, ok := m.Take()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestPostThenTakeReturnsThePostedValue(t *testing.T) {
	var m mailbox.Mailbox[int]
	x := 7
	m.Post(&x)
	v, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, 7, *v)
}

func TestTakeClearsThePendingValue(t *testing.T) {
	var m mailbox.Mailbox[int]
	x := 7
	m.Post(&x)
	m.Take()
	_, ok := m.Take()
	assert.False(t, ok)
}

func TestPostOverwritesAnUnclaimedValue(t *testing.T) {
	var m mailbox.Mailbox[int]
	a, b := 1, 2
	m.Post(&a)
	m.Post(&b)
	v, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, 2, *v)
}

func TestPeekDoesNotClearThePendingValue(t *testing.T) {
	var m mailbox.Mailbox[int]
	x := 9
	m.Post(&x)
	v, ok := m.Peek()
	require.True(t, ok)
	assert.Equal(t, 9, *v)
	v2, ok2 := m.Take()
	require.True(t, ok2)
	assert.Equal(t, 9, *v2)
}
