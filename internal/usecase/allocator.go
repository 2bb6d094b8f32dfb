package usecase

import (
	"errors"
	"math/rand/v2"
)

const (
	MinProductID = 1001
	MaxProductID = 9999

	productIDSpace  = MaxProductID - MinProductID + 1
	defaultMaxDraws = 128
)

var ErrIdentifierExhausted = errors.New("every product id is already taken")

type IDAllocator interface {
	// Allocate returns an id in [MinProductID, MaxProductID] absent from existing.
	Allocate(existing map[int]struct{}) (int, error)
}

type randomAllocator struct {
	intN     func(n int) int
	maxDraws int
}

func NewIDAllocator() IDAllocator {
	return &randomAllocator{
		intN:     rand.IntN,
		maxDraws: defaultMaxDraws,
	}
}

func (a *randomAllocator) Allocate(existing map[int]struct{}) (int, error) {
	if countInRange(existing) >= productIDSpace {
		return 0, ErrIdentifierExhausted
	}

	for range a.maxDraws {
		id := MinProductID + a.intN(productIDSpace)
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}

	// Draw budget spent on a crowded set: walk the range from a random offset.
	start := a.intN(productIDSpace)
	for i := range productIDSpace {
		id := MinProductID + (start+i)%productIDSpace
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
	return 0, ErrIdentifierExhausted
}

func countInRange(ids map[int]struct{}) int {
	if len(ids) < productIDSpace {
		return len(ids)
	}
	n := 0
	for id := range ids {
		if id >= MinProductID && id <= MaxProductID {
			n++
		}
	}
	return n
}
