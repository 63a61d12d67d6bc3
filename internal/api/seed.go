package api

import "math/rand/v2"

// maxAutoSeed bounds server-drawn seeds so they stay exact under the legacy
// sine algorithm.
const maxAutoSeed = 1 << 31

func randomSeed() int64 {
	return rand.Int64N(maxAutoSeed)
}
