package memory

import (
	"sync/atomic"

	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
)

// Clock is a logical clock that ticks once per reading.
type Clock struct {
	now atomic.Uint64
}

// NewClock starts the clock so that the first reading is start+1.
func NewClock(start kernel.Timestamp) *Clock {
	c := &Clock{}
	c.now.Store(uint64(start))
	return c
}

func (c *Clock) Now() kernel.Timestamp {
	return kernel.Timestamp(c.now.Add(1))
}
