// Package buffer provides a fixed-capacity ring of equally sized sample
// blocks. The exciter keeps its scrolling output history in a Ring so the
// audio path never allocates once the ring is built.
package buffer
