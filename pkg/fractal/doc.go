// Package fractal defines the escape-time and distance-estimator functions
// used to decide whether a point of fractal space is solid terrain.
// Every evaluator is a pure function of its arguments and may be called
// concurrently on disjoint inputs.
package fractal
