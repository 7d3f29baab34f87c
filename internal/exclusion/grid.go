package exclusion

// Point is an integer cell coordinate on the grid.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum. The result is not wrapped.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Directions is the move set: the four orthogonal neighbours, no null move.
var Directions = [4]Point{
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}

// Grid is an implicit res x res torus. Only occupied cells are ever tracked,
// so the grid itself carries nothing but its size.
type Grid struct {
	Res int
}

// Cells is the number of cells on the torus.
func (g Grid) Cells() int {
	return g.Res * g.Res
}

// Center is the cell the original setup stacks every particle on.
func (g Grid) Center() Point {
	return Point{g.Res / 2, g.Res / 2}
}

// Wrap folds p back onto the torus, independently in each axis.
// Offsets of any size are handled, not just a single step off the edge.
func (g Grid) Wrap(p Point) Point {
	return Point{wrap(p.X, g.Res), wrap(p.Y, g.Res)}
}

// Key packs a wrapped position into y*res + x.
func (g Grid) Key(p Point) int {
	return p.Y*g.Res + p.X
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
