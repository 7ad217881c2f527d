package voxel

import (
	"math"
	"math/bits"
)

// Area is an inclusive box of voxel coordinates laid out with X varying
// fastest, then Y, then Z.
type Area struct {
	Min, Max Pos
}

// NewArea returns the area spanning min..max inclusive.
func NewArea(min, max Pos) Area {
	return Area{Min: min, Max: max}
}

// Empty reports whether the area contains no voxels.
func (a Area) Empty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Extent returns the size of the area along each axis.
func (a Area) Extent() Pos {
	if a.Empty() {
		return Pos{}
	}
	return Pos{
		X: a.Max.X - a.Min.X + 1,
		Y: a.Max.Y - a.Min.Y + 1,
		Z: a.Max.Z - a.Min.Z + 1,
	}
}

// Volume returns the number of voxels in the area, saturating at
// math.MaxInt when the count does not fit in an int.
func (a Area) Volume() int {
	if a.Empty() {
		return 0
	}
	v := uint64(1)
	for _, s := range [3][2]int{{a.Min.X, a.Max.X}, {a.Min.Y, a.Max.Y}, {a.Min.Z, a.Max.Z}} {
		n := uint64(s[1]) - uint64(s[0])
		if n == math.MaxUint64 {
			return math.MaxInt
		}
		hi, lo := bits.Mul64(v, n+1)
		if hi != 0 || lo > math.MaxInt {
			return math.MaxInt
		}
		v = lo
	}
	return int(v)
}

// Contains reports whether p lies inside the area.
func (a Area) Contains(p Pos) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Index returns the flat offset of (x, y, z). The result is only
// meaningful for coordinates inside the area.
func (a Area) Index(x, y, z int) int {
	e := a.Extent()
	return (z-a.Min.Z)*e.Y*e.X + (y-a.Min.Y)*e.X + (x - a.Min.X)
}

// stride returns the offset distance between neighbours along axis.
func (a Area) stride(axis Axis) int {
	e := a.Extent()
	switch axis {
	case AxisY:
		return e.X
	case AxisZ:
		return e.X * e.Y
	default:
		return 1
	}
}

// Buffer is an in-memory Grid over an Area. New buffers are filled with
// ContentIgnore.
type Buffer struct {
	area Area
	data []Node
}

// Compile-time interface check.
var _ Grid = (*Buffer)(nil)

// NewBuffer allocates a buffer covering area.
func NewBuffer(area Area) *Buffer {
	data := make([]Node, area.Volume())
	for i := range data {
		data[i] = Node{Content: ContentIgnore}
	}
	return &Buffer{area: area, data: data}
}

// Area returns the buffer's extent.
func (b *Buffer) Area() Area { return b.area }

// Len returns the number of voxels in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Index implements Grid.
func (b *Buffer) Index(x, y, z int) int { return b.area.Index(x, y, z) }

// ContentAt implements Grid.
func (b *Buffer) ContentAt(i int) Content { return b.data[i].Content }

// SetNode implements Grid.
func (b *Buffer) SetNode(i int, n Node) { b.data[i] = n }

// Advance implements Grid.
func (b *Buffer) Advance(i int, axis Axis, delta int) int {
	return i + delta*b.area.stride(axis)
}

// NodeAt returns the node at p and whether p is inside the buffer.
func (b *Buffer) NodeAt(p Pos) (Node, bool) {
	if !b.area.Contains(p) {
		return Node{}, false
	}
	return b.data[b.area.Index(p.X, p.Y, p.Z)], true
}

// Set stores n at p. Positions outside the buffer are ignored.
func (b *Buffer) Set(p Pos, n Node) {
	if b.area.Contains(p) {
		b.data[b.area.Index(p.X, p.Y, p.Z)] = n
	}
}

// Count returns how many voxels hold content c.
func (b *Buffer) Count(c Content) int {
	n := 0
	for _, node := range b.data {
		if node.Content == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]Node, len(b.data))
	copy(data, b.data)
	return &Buffer{area: b.area, data: data}
}

// Equal reports whether two buffers have the same area and contents.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.area != o.area || len(b.data) != len(o.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
