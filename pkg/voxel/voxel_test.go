package voxel

import (
	"math"
	"testing"
)

func TestAreaExtentAndVolume(t *testing.T) {
	tests := []struct {
		name   string
		area   Area
		extent Pos
		volume int
		empty  bool
	}{
		{"single voxel", NewArea(Pos{1, 2, 3}, Pos{1, 2, 3}), Pos{1, 1, 1}, 1, false},
		{"cube", NewArea(Pos{-2, -2, -2}, Pos{1, 1, 1}), Pos{4, 4, 4}, 64, false},
		{"inverted x", NewArea(Pos{2, 0, 0}, Pos{1, 5, 5}), Pos{}, 0, true},
		{"inverted z", NewArea(Pos{0, 0, 3}, Pos{5, 5, 2}), Pos{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.area.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
			if got := tt.area.Extent(); got != tt.extent {
				t.Errorf("Extent() = %v, want %v", got, tt.extent)
			}
			if got := tt.area.Volume(); got != tt.volume {
				t.Errorf("Volume() = %d, want %d", got, tt.volume)
			}
		})
	}
}

func TestAreaVolumeSaturates(t *testing.T) {
	const big = 1<<31 - 1
	tests := []struct {
		name string
		area Area
		want int
	}{
		{"fits", NewArea(Pos{0, 0, 0}, Pos{big, big, 0}), 1 << 62},
		{"product overflows", NewArea(Pos{0, 0, 0}, Pos{big, big, 1}), math.MaxInt},
		{"wraps to zero", NewArea(Pos{0, 0, 0}, Pos{1<<32 - 1, 1<<32 - 1, 1<<32 - 1}), math.MaxInt},
		{"full axis", NewArea(Pos{math.MinInt, 0, 0}, Pos{math.MaxInt, 0, 0}), math.MaxInt},
		{"extent overflows", NewArea(Pos{-1, 0, 0}, Pos{math.MaxInt, 0, 0}), math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.area.Volume(); got != tt.want {
				t.Errorf("Volume() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAreaIndexIsDense(t *testing.T) {
	a := NewArea(Pos{-1, 10, 4}, Pos{2, 12, 5})
	seen := make(map[int]bool)
	for z := a.Min.Z; z <= a.Max.Z; z++ {
		for y := a.Min.Y; y <= a.Max.Y; y++ {
			for x := a.Min.X; x <= a.Max.X; x++ {
				i := a.Index(x, y, z)
				if i < 0 || i >= a.Volume() {
					t.Fatalf("Index(%d,%d,%d) = %d out of range", x, y, z, i)
				}
				if seen[i] {
					t.Fatalf("Index(%d,%d,%d) = %d reused", x, y, z, i)
				}
				seen[i] = true
			}
		}
	}
}

func TestBufferAdvance(t *testing.T) {
	b := NewBuffer(NewArea(Pos{0, 0, 0}, Pos{3, 4, 5}))
	i := b.Index(1, 1, 1)
	tests := []struct {
		axis    Axis
		delta   int
		x, y, z int
	}{
		{AxisX, 1, 2, 1, 1},
		{AxisY, 1, 1, 2, 1},
		{AxisY, 3, 1, 4, 1},
		{AxisZ, 2, 1, 1, 3},
		{AxisX, -1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got, want := b.Advance(i, tt.axis, tt.delta), b.Index(tt.x, tt.y, tt.z); got != want {
			t.Errorf("Advance(%s, %d) = %d, want %d", tt.axis, tt.delta, got, want)
		}
	}
}

func TestNewBufferIsUnassigned(t *testing.T) {
	b := NewBuffer(NewArea(Pos{0, 0, 0}, Pos{2, 2, 2}))
	if got := b.Count(ContentIgnore); got != 27 {
		t.Errorf("Count(ignore) = %d, want 27", got)
	}
	if b.Len() != 27 {
		t.Errorf("Len() = %d, want 27", b.Len())
	}
}

func TestBufferSetAndNodeAt(t *testing.T) {
	b := NewBuffer(NewArea(Pos{0, 0, 0}, Pos{1, 1, 1}))
	stone := Node{Content: 3, Light: LightSun}
	b.Set(Pos{1, 0, 1}, stone)
	b.Set(Pos{9, 9, 9}, stone) // ignored

	got, ok := b.NodeAt(Pos{1, 0, 1})
	if !ok || got != stone {
		t.Errorf("NodeAt = %v, %v; want %v, true", got, ok, stone)
	}
	if _, ok := b.NodeAt(Pos{9, 9, 9}); ok {
		t.Error("NodeAt outside the area reported ok")
	}
	if b.ContentAt(b.Index(1, 0, 1)) != 3 {
		t.Error("ContentAt disagrees with Set")
	}
}

func TestBufferCloneAndEqual(t *testing.T) {
	b := NewBuffer(NewArea(Pos{0, 0, 0}, Pos{1, 1, 1}))
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c.Set(Pos{0, 0, 0}, Node{Content: ContentAir})
	if b.Equal(c) {
		t.Fatal("modified clone should differ")
	}
	if got, _ := b.NodeAt(Pos{0, 0, 0}); got.Content != ContentIgnore {
		t.Error("modifying the clone changed the original")
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{MaterialAir, MaterialStone, MaterialWater} {
		m, ok := r.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missing", name)
		}
		if m.ID == ContentIgnore {
			t.Errorf("%s uses the ignore sentinel", name)
		}
		if m.Light != LightSun {
			t.Errorf("%s light = %d, want %d", name, m.Light, LightSun)
		}
	}
	if air, _ := r.Lookup(MaterialAir); air.ID != ContentAir {
		t.Errorf("air id = %d, want %d", air.ID, ContentAir)
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register(MaterialStone, 0); err == nil {
		t.Error("registering a duplicate name should fail")
	}
	if _, err := r.Register("", 0); err == nil {
		t.Error("registering an empty name should fail")
	}
	seen := map[Content]string{}
	for _, n := range r.Names() {
		m, _ := r.Lookup(n)
		seen[m.ID] = n
	}
	for i := 0; i < 200; i++ {
		m, err := r.Register(string(rune('a'+i%26))+string(rune('a'+i/26)), 0)
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if m.ID == ContentAir || m.ID == ContentIgnore {
			t.Fatalf("Register handed out reserved id %d", m.ID)
		}
		if prev, ok := seen[m.ID]; ok {
			t.Fatalf("id %d reused (%s)", m.ID, prev)
		}
		seen[m.ID] = m.Name
	}
}
