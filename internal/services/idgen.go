package services

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrIDSpaceExhausted means the generator kept colliding with existing
// identifiers. With 3-digit suffixes this fires long before the space
// is truly full, which is the signal to widen the format.
var ErrIDSpaceExhausted = errors.New("could not derive a unique identifier")

const maxIDAttempts = 100

// generateID derives a zero-padded random identifier like T042 or
// ACC001234567 and retries until it does not collide with an existing
// record. Collision checking replaces the legacy fire-and-hope
// generation, which could silently mint duplicates.
func generateID(prefix string, digits int, exists func(string) bool) (string, error) {
	bound := 1
	for i := 0; i < digits; i++ {
		bound *= 10
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := fmt.Sprintf("%s%0*d", prefix, digits, rand.Intn(bound))
		if !exists(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}
