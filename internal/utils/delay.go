package utils

import (
	"math/rand"
	"time"
)

// RandomDelay returns a random duration in [min, max). Consecutive profile
// visits get irregular spacing so the traffic pattern does not look
// scripted.
func RandomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
