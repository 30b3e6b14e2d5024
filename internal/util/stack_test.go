package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Stack_pushPopPeek(t *testing.T) {
	assert := assert.New(t)

	s := Stack[string]{}
	assert.True(s.Empty())
	assert.Equal(0, s.Len())

	s.Push("a")
	s.Push("b")
	s.Push("c")

	assert.Equal(3, s.Len())
	assert.Equal("c", s.Peek())
	assert.Equal("c", s.Pop())
	assert.Equal("b", s.Pop())
	assert.Equal(1, s.Len())
	assert.False(s.Empty())
	assert.Equal("a", s.Peek())
}

func Test_Stack_initializedWithOf(t *testing.T) {
	assert := assert.New(t)

	s := Stack[int]{Of: []int{1, 2, 3}}
	assert.Equal(3, s.Peek())
	assert.Equal(3, s.Pop())
	assert.Equal(2, s.Peek())
}

func Test_Stack_panics(t *testing.T) {
	assert := assert.New(t)

	s := Stack[int]{}
	assert.Panics(func() { s.Pop() })
	assert.Panics(func() { s.Peek() })
}

func Test_Stack_String(t *testing.T) {
	assert := assert.New(t)

	s := Stack[int]{Of: []int{1, 2}}
	assert.Equal("Stack[2, 1]", s.String())
}
