package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgsPairs(t *testing.T) {
	a := Args("a", 1, "b", 2)

	v, ok := a.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, a.Len())

	assert.Panics(t, func() { Args("a") })
	assert.Panics(t, func() { Args(1, 2) })
}

func TestArgumentsWithKeepsPosition(t *testing.T) {
	base := Args("a", 1, "b", 2)
	updated := base.With("a", 10).With("c", 3)

	p := updated.pool()
	assert.Equal(t, []any{10, 2, 3}, p.leftovers())

	v, _ := base.Get("a")
	assert.Equal(t, 1, v, "With must not mutate the receiver")
}

func TestPoolTakeAndLeftovers(t *testing.T) {
	p := Args("a", 1, "b", 2).Append(3).pool()

	v, ok := p.take("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = p.take("b")
	assert.False(t, ok)

	_, ok = p.take("")
	assert.False(t, ok)

	assert.Equal(t, []any{1, 3}, p.leftovers())
}
