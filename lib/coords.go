package lib

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Axial hex coordinates. The third cube coordinate is implied by Q+R+S == 0.
type HexCoords struct {
	Q, R int
}

func (c HexCoords) S() int { return -c.Q - c.R }

func (c HexCoords) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

func (c HexCoords) Add(o HexCoords) HexCoords {
	return HexCoords{c.Q + o.Q, c.R + o.R}
}

func (c HexCoords) Sub(o HexCoords) HexCoords {
	return HexCoords{c.Q - o.Q, c.R - o.R}
}

func (c HexCoords) Scale(k int) HexCoords {
	return HexCoords{c.Q * k, c.R * k}
}

func (c HexCoords) Distance(o HexCoords) int {
	d := c.Sub(o)
	return (Abs(d.Q) + Abs(d.R) + Abs(d.S())) / 2
}

var hexNeighbourOffsets = [6]HexCoords{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

func (c HexCoords) IthNeighbour(i int) HexCoords {
	return c.Add(hexNeighbourOffsets[i%6])
}

// Cube coordinates with fractional components, used when walking a line.
type fracCoords struct {
	q, r, s float64
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// The small nudge keeps lines running exactly along hex edges from
// flip-flopping between the two candidate hexes.
func hexLerp(a, b HexCoords, t float64) fracCoords {
	const eps = 1e-6
	return fracCoords{
		q: lerp(float64(a.Q)+eps, float64(b.Q)+eps, t),
		r: lerp(float64(a.R)+eps, float64(b.R)+eps, t),
		s: lerp(float64(a.S())-2*eps, float64(b.S())-2*eps, t),
	}
}

func (f fracCoords) round() HexCoords {
	q, r, s := Round(f.q), Round(f.r), Round(f.s)
	dq := Abs(float64(q) - f.q)
	dr := Abs(float64(r) - f.r)
	ds := Abs(float64(s) - f.s)
	if dq > dr && dq > ds {
		q = -r - s
	} else if dr > ds {
		r = -q - s
	}
	return HexCoords{q, r}
}

func (c HexCoords) less(o HexCoords) bool {
	if c.Q != o.Q {
		return c.Q < o.Q
	}
	return c.R < o.R
}

// Hexes on the straight line from a to b, both ends included.
// The line from b to a is the same line reversed.
func hexLine(a, b HexCoords) []HexCoords {
	n := a.Distance(b)
	if n == 0 {
		return []HexCoords{a}
	}
	from, to := a, b
	if b.less(a) {
		from, to = b, a
	}
	line := make([]HexCoords, 0, n+1)
	for i := 0; i <= n; i++ {
		line = append(line, hexLerp(from, to, float64(i)/float64(n)).round())
	}
	if from != a {
		slices.Reverse(line)
	}
	return line
}
