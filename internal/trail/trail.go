// Package trail keeps the bounded screen-space history of each body.
package trail

import "github.com/san-kum/threebody/internal/vec"

// DefaultCapacity is the number of points kept per body.
const DefaultCapacity = 2000

// Point is a projected screen coordinate.
type Point struct {
	X, Y int
}

// Buffer is a FIFO of points capped at a fixed capacity. When a push would
// exceed the capacity the oldest point is dropped.
//
// Points are stored in a ring so Push is O(1); Points returns them oldest
// first.
type Buffer struct {
	points []Point
	head   int
	size   int
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{points: make([]Point, capacity)}
}

func (b *Buffer) Push(p Point) {
	c := len(b.points)
	if b.size < c {
		b.points[(b.head+b.size)%c] = p
		b.size++
		return
	}
	b.points[b.head] = p
	b.head = (b.head + 1) % c
}

func (b *Buffer) Len() int { return b.size }
func (b *Buffer) Cap() int { return len(b.points) }

// At returns the i-th point, oldest first.
func (b *Buffer) At(i int) Point {
	return b.points[(b.head+i)%len(b.points)]
}

// Last returns the newest point and false when the buffer is empty.
func (b *Buffer) Last() (Point, bool) {
	if b.size == 0 {
		return Point{}, false
	}
	return b.At(b.size - 1), true
}

// Points returns a copy of the buffered points, oldest first.
func (b *Buffer) Points() []Point {
	out := make([]Point, b.size)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

func (b *Buffer) Reset() {
	b.head = 0
	b.size = 0
}

// Projector maps world positions (meters) to screen points. Scale is meters
// per pixel; the world origin lands at the viewport centre. The z component
// is dropped.
type Projector struct {
	Scale  float64
	Width  int
	Height int
}

// Project truncates toward zero before offsetting, so points either side of
// the origin share the centre pixel.
func (p Projector) Project(pos vec.Vec3) Point {
	return Point{
		X: int(pos.X/p.Scale) + p.Width/2,
		Y: int(pos.Y/p.Scale) + p.Height/2,
	}
}
