package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomName returns a letters-only string with length in [minLen, maxLen].
func RandomName(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	n := minLen + intn(maxLen-minLen+1)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = nameAlphabet[intn(len(nameAlphabet))]
	}
	return string(buf)
}

// RandomPhone returns a phone number in the 555-XXXX test range.
func RandomPhone() string {
	return fmt.Sprintf("555-%04d", intn(10000))
}

func intn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
