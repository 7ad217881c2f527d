package sampler

import (
	"time"

	"github.com/chazu/mathgen/pkg/voxel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// materialKept labels solid voxels that were already assigned.
const materialKept = "kept"

var (
	voxelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathgen_voxels_total",
		Help: "Voxels visited by the sampler by generator kind and resulting material",
	}, []string{"kind", "material"})

	sampleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mathgen_sample_duration_seconds",
		Help:    "Wall time of one sampling call",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"kind"})
)

func record(kind string, st Stats, d time.Duration) {
	voxelsTotal.WithLabelValues(kind, voxel.MaterialStone).Add(float64(st.Stone))
	voxelsTotal.WithLabelValues(kind, materialKept).Add(float64(st.Kept))
	voxelsTotal.WithLabelValues(kind, voxel.MaterialWater).Add(float64(st.Water))
	voxelsTotal.WithLabelValues(kind, voxel.MaterialAir).Add(float64(st.Air))
	sampleDuration.WithLabelValues(kind).Observe(d.Seconds())
}
