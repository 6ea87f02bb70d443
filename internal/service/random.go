package service

import "math/rand/v2"

// globalRandomizer draws from the auto-seeded, goroutine-safe math/rand/v2 source.
type globalRandomizer struct{}

func (globalRandomizer) IntN(n int) int {
	return rand.IntN(n)
}

func (globalRandomizer) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// DefaultRandomizer is used to deal roles, moderators and word sides.
var DefaultRandomizer = globalRandomizer{}
