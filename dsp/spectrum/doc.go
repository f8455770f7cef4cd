// Package spectrum converts complex spectrum bins to and from polar form.
//
// Split and Join are the glue between a [transform.Transform] and the
// magnitude-domain processing in the exciter. Magnitudes go through
// algo-vecmath, which dispatches to AVX2, SSE2 or NEON kernels when available.
package spectrum
