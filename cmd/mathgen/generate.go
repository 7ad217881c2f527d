package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chazu/mathgen/pkg/sampler"
	"github.com/chazu/mathgen/pkg/voxel"
	"github.com/spf13/cobra"
)

// maxVolume caps the region generate will allocate.
const maxVolume = 64 << 20

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		minCorner, maxCorner []int
		water                int
		workers              int
		slice                int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample a region and print what was written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := regionFromFlags(minCorner, maxCorner, water)
			if err != nil {
				return err
			}
			if vol := r.Area().Volume(); vol > maxVolume {
				return fmt.Errorf("region holds %d voxels, limit is %d", vol, maxVolume)
			}

			p, err := opts.parameters(cmd.Context())
			if err != nil {
				return err
			}
			s, err := sampler.New(p, voxel.NewRegistry(), sampler.WithLogger(opts.logger))
			if err != nil {
				return err
			}

			buf := voxel.NewBuffer(r.Area())
			var st sampler.Stats
			if workers == 1 {
				st = s.Sample(r, buf)
			} else {
				st, err = s.SampleParallel(cmd.Context(), r, buf, workers)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			b := s.Shape(r).BoundingBox()
			fmt.Fprintf(out, "generator  %s\n", p.Kind)
			fmt.Fprintf(out, "region     %s..%s water=%d\n", r.Min, r.Max, r.WaterLevel)
			fmt.Fprintf(out, "fractal    (%g,%g,%g)..(%g,%g,%g)\n", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
			fmt.Fprintf(out, "stone      %d\n", st.Stone)
			fmt.Fprintf(out, "kept       %d\n", st.Kept)
			fmt.Fprintf(out, "water      %d\n", st.Water)
			fmt.Fprintf(out, "air        %d\n", st.Air)

			if cmd.Flags().Changed("slice") {
				return renderSlice(out, buf, slice)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&minCorner, "min", []int{-32, -32, -32}, "region minimum corner x,y,z")
	f.IntSliceVar(&maxCorner, "max", []int{31, 31, 31}, "region maximum corner x,y,z")
	f.IntVar(&water, "water", 1, "water level")
	f.IntVar(&workers, "workers", 0, "sampling goroutines (0 = GOMAXPROCS, 1 = sequential)")
	f.IntVar(&slice, "slice", 0, "print the x/y slice at this z")
	return cmd
}

func regionFromFlags(lo, hi []int, water int) (sampler.Region, error) {
	if len(lo) != 3 || len(hi) != 3 {
		return sampler.Region{}, fmt.Errorf("--min and --max take three comma-separated integers")
	}
	return sampler.Region{
		Min:        voxel.Pos{X: lo[0], Y: lo[1], Z: lo[2]},
		Max:        voxel.Pos{X: hi[0], Y: hi[1], Z: hi[2]},
		WaterLevel: water,
	}, nil
}

// sliceGlyphs maps builtin materials to the characters renderSlice prints.
var sliceGlyphs = map[string]byte{
	voxel.MaterialStone: '#',
	voxel.MaterialWater: '~',
	voxel.MaterialAir:   '.',
}

// renderSlice prints the x/y plane at z with y increasing upwards.
// Unassigned voxels print as a space and unknown materials as '?'.
func renderSlice(w io.Writer, buf *voxel.Buffer, z int) error {
	a := buf.Area()
	if z < a.Min.Z || z > a.Max.Z {
		return fmt.Errorf("slice z=%d outside region %s..%s", z, a.Min, a.Max)
	}

	reg := voxel.NewRegistry()
	glyphs := map[voxel.Content]byte{voxel.ContentIgnore: ' '}
	for name, g := range sliceGlyphs {
		if m, ok := reg.Lookup(name); ok {
			glyphs[m.ID] = g
		}
	}

	var line strings.Builder
	for y := a.Max.Y; y >= a.Min.Y; y-- {
		line.Reset()
		for x := a.Min.X; x <= a.Max.X; x++ {
			n, _ := buf.NodeAt(voxel.Pos{X: x, Y: y, Z: z})
			g, ok := glyphs[n.Content]
			if !ok {
				g = '?'
			}
			line.WriteByte(g)
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
