// Package geom provides the 2-D geometry behind loop diagram connectors.
//
// # Overview
//
// The central type is [Connector]: a curved line between two fixed points that
// bows away from a diagram origin, plus the [Arrow] that marks its destination.
// [Connect] computes both from the two endpoints:
//
//  1. The straight-line midpoint M of P0 and P1 becomes the control point.
//  2. If M is not at the origin, it is pushed outward along the origin->M ray by
//     the bow factor (1.3 by default).
//  3. The quadratic Bézier (P0, M, P1) is sampled at evenly spaced t values
//     (0, 0.5 and 1 by default).
//  4. The arrow direction is the vector from the second-to-last sample to P1,
//     and the arrow tail sits a fixed length (0.4) behind P1 along it.
//
// Basic usage:
//
//	c := geom.Connect(geom.Pt(0, 4.5), geom.Pt(5, 0), geom.Origin)
//	for _, p := range c.Curve.Samples {
//	    // draw polyline through p
//	}
//	head := c.Arrow.Head(0.35, 0.18)
//
// Everything in this package is a pure function of its inputs; there is no
// shared state and no error path.
package geom
