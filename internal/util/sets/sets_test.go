package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	assert.True(t, s.Insert("c"))
	assert.False(t, s.Insert("c"))
	assert.Equal(t, 3, s.Len())

	s.Delete("a")
	assert.False(t, s.Has("a"))

	var nilSet Set[int]
	assert.False(t, nilSet.Has(1))
	assert.Equal(t, 0, nilSet.Len())
}

func TestSorted(t *testing.T) {
	assert.Equal(t, []string{"a.yaml", "b.yaml", "c.yaml"}, Sorted(New("c.yaml", "a.yaml", "b.yaml")))
	assert.Empty(t, Sorted(Set[int]{}))
}
