package board

// localCell is a cell offset within a piece's bounding box, in the
// top-down row convention standard SRS diagrams use: row 0 is the top row
// of the box, row increasing downward. cellsFor converts this into board
// space (Y increasing upward) via the box's size.
type localCell struct{ Col, Row int }

// boxSize is the bounding-box side length used for a kind's rotation
// states: 4 for I, 3 for everything else (O is drawn in a 3x3 box with a
// fixed 2x2 footprint so its rotation states share the same coordinate
// frame as J/L/S/T/Z).
func boxSize(k Kind) int {
	if k == I {
		return 4
	}
	return 3
}

// shapeTable holds the four rotation states (spawn, CW, 180, CCW) for every
// kind, as the standard Tetris Guideline SRS cell layout.
var shapeTable = map[Kind][4][4]localCell{
	I: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	O: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	T: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	S: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	Z: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	J: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	L: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// cellsFor converts a kind/rotation/position into board-space cells.
func cellsFor(k Kind, r Rotation, x, y int) [4]Point {
	size := boxSize(k)
	local := shapeTable[k][r]
	var out [4]Point
	for i, c := range local {
		out[i] = Point{X: x + c.Col, Y: y + (size - 1 - c.Row)}
	}
	return out
}

// tSpinFrontCorners and tSpinBackCorners identify the two front
// (point-facing) and two back corners of a T piece's 3x3 box, per
// rotation state, used by the T-spin corner rule.
var tSpinFrontCorners = [4][2]localCell{
	{{0, 0}, {2, 0}}, // spawn: point faces up
	{{2, 0}, {2, 2}}, // R: point faces right
	{{0, 2}, {2, 2}}, // 2: point faces down
	{{0, 0}, {0, 2}}, // L: point faces left
}

var tSpinBackCorners = [4][2]localCell{
	{{0, 2}, {2, 2}},
	{{0, 0}, {0, 2}},
	{{0, 0}, {2, 0}},
	{{2, 0}, {2, 2}},
}

// kickOffset is a single wall-kick test: a candidate (dx, dy) translation
// to try after a raw rotation, dy positive meaning upward (board space).
type kickOffset struct{ DX, DY int }

type rotationPair struct{ From, To Rotation }

// jlstzKicks is the standard 5-test SRS kick table shared by J, L, S, T, Z.
var jlstzKicks = map[rotationPair][5]kickOffset{
	{0, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{1, 0}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{1, 2}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{2, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{2, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{3, 2}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{3, 0}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{0, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

// iKicks is the standard 5-test SRS kick table for I.
var iKicks = map[rotationPair][5]kickOffset{
	{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

// kicksFor returns the kick table to try for a rotation attempt. O never
// needs kicks: its footprint is identical in every orientation.
func kicksFor(k Kind, from, to Rotation) ([5]kickOffset, bool) {
	switch k {
	case O:
		return [5]kickOffset{}, false
	case I:
		t, ok := iKicks[rotationPair{from, to}]
		return t, ok
	default:
		t, ok := jlstzKicks[rotationPair{from, to}]
		return t, ok
	}
}
