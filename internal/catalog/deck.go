package catalog

import (
	"math/rand/v2"

	"github.com/Conceptual-Machines/cogito-api/internal/models"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

// DefaultRNG delegates to math/rand/v2 (auto-seeded).
var DefaultRNG RNG = stdRNG{}

// Shuffle returns a Fisher-Yates shuffled copy of qs. The input is left untouched.
func Shuffle(qs []models.Question, rng RNG) []models.Question {
	if rng == nil {
		rng = DefaultRNG
	}
	out := make([]models.Question, len(qs))
	copy(out, qs)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Next returns the index after current in a deck of the given length.
// It stays on the last card instead of wrapping around.
func Next(current, length int) int {
	if length <= 0 {
		return 0
	}
	if current+1 < length {
		return current + 1
	}
	return length - 1
}
