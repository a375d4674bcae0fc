// Package diagram renders labeled box-and-arrow diagrams.
//
// A diagram is described by immutable spec values (shapes, arrows, a legend and
// free text annotations) collected in a Builder. Render replays them onto a
// drawing Surface in a fixed layering order and flushes the surface to a file.
// Coordinates are data coordinates: the origin is the bottom-left corner of the
// Canvas and y grows upward.
package diagram
