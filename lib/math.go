package lib

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

type SignedNumber interface {
	constraints.Signed | constraints.Float
}

func Abs[T SignedNumber](i T) T {
	if i >= T(0) {
		return i
	}
	return -i
}

// Works only for positive arguments.
func DivRoundUp(n, d int) int {
	return (n + (d - 1)) / d
}

func Min[T constraints.Ordered](i0, i1 T) T {
	if i0 <= i1 {
		return i0
	}
	return i1
}

func Max[T constraints.Ordered](i0, i1 T) T {
	if i0 >= i1 {
		return i0
	}
	return i1
}

func Clamp[T constraints.Ordered](v, min, max T) T {
	if v <= min {
		return min
	}
	if v >= max {
		return max
	}
	return v
}

func Round[T constraints.Float](v T) int {
	return int(math.Round(float64(v)))
}

func Rand(n int, rnd *rand.Rand) int {
	if n == 0 {
		return 0
	}
	return rnd.Intn(n)
}

// A single six-sided die.
func RollDie(rnd *rand.Rand) int {
	return Rand(6, rnd) + 1
}

// Sum of two six-sided dice, 2..12.
func Roll2d6(rnd *rand.Rand) int {
	return RollDie(rnd) + RollDie(rnd)
}
