package world

import (
	"math"
	"strconv"

	"github.com/samdwyer/gokarel/internal/logger"
)

// Unbounded is the beeper count of an inexhaustible supply. No finite count or
// delta can reach it, and it is a fixed point of AddCount.
const Unbounded = math.MinInt

// AddCount adds delta to a beeper count, leaving Unbounded untouched.
func AddCount(count, delta int) int {
	if count == Unbounded {
		return Unbounded
	}
	return count + delta
}

// FormatCount renders a count for display, using the infinity sign for Unbounded.
func FormatCount(count int) string {
	if count == Unbounded {
		return "∞"
	}
	return strconv.Itoa(count)
}

// BeeperStack is a pile of beepers on a single cell. Count is at least 1 or Unbounded;
// an empty cell has no stack at all.
type BeeperStack struct {
	Location Location `json:"location"`
	Count    int      `json:"count"`
}

// NewBeeperStack creates a stack, raising invalid counts to 1.
func NewBeeperStack(loc Location, count int) BeeperStack {
	if count < 1 && count != Unbounded {
		logger.Log.WithField("beepers", count).Warn("invalid amount of beepers, setting to 1")
		count = 1
	}
	return BeeperStack{Location: loc, Count: count}
}

// Unbounded reports whether the stack never runs out.
func (b BeeperStack) Unbounded() bool {
	return b.Count == Unbounded
}
