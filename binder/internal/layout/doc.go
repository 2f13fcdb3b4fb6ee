// Package layout computes packed member offsets for compound descriptors.
//
// Offsets are always the running sum of preceding member sizes, with no
// alignment padding. The extractor recomputes them instead of reading the
// backend's raw offsets, so the descriptor layout matches the packed
// buffers produced by the codec even for files written with internal
// padding.
package layout
