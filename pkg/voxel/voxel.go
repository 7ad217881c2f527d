// Package voxel defines the voxel grid and material registry the terrain
// sampler writes through, together with in-memory implementations of both.
package voxel

import "fmt"

// Content identifies a material in a grid.
type Content uint16

const (
	// ContentAir is the builtin empty material.
	ContentAir Content = 126
	// ContentIgnore marks a voxel no generation pass has written yet.
	// It is distinct from every real material.
	ContentIgnore Content = 127
)

// LightSun is the full daylight level.
const LightSun uint8 = 15

// Node is one voxel: its material and light level.
type Node struct {
	Content Content
	Light   uint8
}

// Pos is an integer voxel coordinate.
type Pos struct {
	X, Y, Z int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Axis selects a grid axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Grid is mutable voxel storage addressed by flat offsets.
//
// Implementations must tolerate concurrent SetNode calls on distinct
// offsets. Bounds checking against world limits is the grid's concern.
type Grid interface {
	// Index returns the offset of (x, y, z).
	Index(x, y, z int) int
	// ContentAt returns the material stored at offset i.
	ContentAt(i int) Content
	// SetNode stores n at offset i.
	SetNode(i int, n Node)
	// Advance moves offset i by delta voxels along axis.
	Advance(i int, axis Axis, delta int) int
}
