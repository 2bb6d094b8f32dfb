package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRange() map[int]struct{} {
	ids := make(map[int]struct{}, productIDSpace)
	for id := MinProductID; id <= MaxProductID; id++ {
		ids[id] = struct{}{}
	}
	return ids
}

func TestAllocate_InRangeAndUnique(t *testing.T) {
	t.Parallel()
	alloc := NewIDAllocator()
	existing := map[int]struct{}{}

	for range 500 {
		id, err := alloc.Allocate(existing)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, id, MinProductID)
		assert.LessOrEqual(t, id, MaxProductID)
		assert.NotContains(t, existing, id)
		existing[id] = struct{}{}
	}
	assert.Len(t, existing, 500)
}

func TestAllocate_RedrawsTakenIDs(t *testing.T) {
	t.Parallel()
	draws := []int{0, 0, 1, 5}
	alloc := &randomAllocator{
		intN: func(int) int {
			v := draws[0]
			draws = draws[1:]
			return v
		},
		maxDraws: 10,
	}

	id, err := alloc.Allocate(map[int]struct{}{1001: {}, 1002: {}})
	require.NoError(t, err)
	assert.Equal(t, 1006, id)
}

func TestAllocate_FallsBackAfterDrawBudget(t *testing.T) {
	t.Parallel()
	existing := fullRange()
	delete(existing, 4242)

	alloc := &randomAllocator{
		intN:     func(int) int { return 0 },
		maxDraws: 3,
	}
	id, err := alloc.Allocate(existing)
	require.NoError(t, err)
	assert.Equal(t, 4242, id)
}

func TestAllocate_Exhausted(t *testing.T) {
	t.Parallel()
	existing := fullRange()
	// ids outside the range do not make room
	existing[42] = struct{}{}

	_, err := NewIDAllocator().Allocate(existing)
	assert.ErrorIs(t, err, ErrIdentifierExhausted)
}
