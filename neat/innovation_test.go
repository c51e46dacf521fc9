package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInnovationList(t *testing.T) {
	il := NewInnovationList(2, 1)
	assert.Equal(t, 3, il.Len())

	inn, ok := il.FindLink(2, 3)
	require.True(t, ok)
	assert.Equal(t, 2, inn.ID)
	assert.Equal(t, InnovationLink, inn.Type)

	_, ok = il.FindLink(3, 0)
	assert.False(t, ok)
	created := il.FindOrCreateLink(3, 0)
	assert.Equal(t, 3, created.ID)
	assert.Same(t, created, il.FindOrCreateLink(3, 0))

	n := il.CreateNeuron(0, 3)
	assert.Equal(t, InnovationNeuron, n.Type)
	assert.Equal(t, 4, n.ID)
	assert.Equal(t, 4, n.NeuronID)
	found, ok := il.FindNeuron(0, 3)
	require.True(t, ok)
	assert.Same(t, n, found)

	again := il.CreateNeuron(0, 3)
	assert.Equal(t, 5, again.NeuronID)
	found, _ = il.FindNeuron(0, 3)
	assert.Same(t, again, found)
}

func TestComparator(t *testing.T) {
	maximize, minimize := Comparator{}, Comparator{Minimize: true}

	assert.True(t, maximize.IsBetterThan(2, 1))
	assert.False(t, maximize.IsBetterThan(1, 1))
	assert.True(t, minimize.IsBetterThan(1, 2))
	assert.Equal(t, -1, maximize.Compare(2, 1))
	assert.Equal(t, 1, minimize.Compare(2, 1))
	assert.Equal(t, 0, minimize.Compare(2, 2))

	assert.InDelta(t, 13.0, maximize.ApplyBonus(10, 0.3), 1e-12)
	assert.InDelta(t, 7.0, maximize.ApplyPenalty(10, 0.3), 1e-12)
	assert.InDelta(t, 7.0, minimize.ApplyBonus(10, 0.3), 1e-12)
	assert.InDelta(t, 13.0, minimize.ApplyPenalty(10, 0.3), 1e-12)

	assert.True(t, maximize.IsBetterThan(-1e300, maximize.WorstScore()))
	assert.True(t, minimize.IsBetterThan(1e300, minimize.WorstScore()))
}
