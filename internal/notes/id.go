package notes

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const idPrefix = "note-"

// NewID returns a fresh note identifier: a fixed prefix followed by the
// base-36 creation time in epoch milliseconds and a base-36 random
// component. Uniqueness only needs to hold within a single user's
// collection, so a timestamp plus 64 random bits is ample.
func NewID() string {
	timePart := strconv.FormatInt(time.Now().UnixMilli(), 36)
	randPart := strconv.FormatUint(rand.Uint64(), 36)
	return idPrefix + timePart + randPart
}
