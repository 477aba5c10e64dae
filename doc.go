// Package cmap implements an ordered map that stores values with adjacent
// keys contiguously.
//
// Keys that form an unbroken run are kept in a single region backed by one
// slice, so dense runs of values can be read and written in bulk. Regions
// are merged and split automatically as keys are inserted and removed: the
// map always stores every contiguous run as exactly one region.
//
// A Map is not safe for concurrent use. Accessors that return slices or
// pointers expose the map's own storage; such views are valid only until
// the next mutating call on the map.
package cmap
