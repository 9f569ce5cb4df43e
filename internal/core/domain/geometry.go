package domain

// Point is the cell position of a pointer event.
type Point struct {
	X int
	Y int
}

// Region is a rectangular area of the screen.
// A zero-sized region contains nothing.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies inside r.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ClickEvent is a pointer press delivered by a ClickSource.
type ClickEvent struct {
	Target Point
}
