// Package exciter implements a spectral harmonic exciter.
//
// Each hop the processor transforms a windowed frame, finds spectral peaks,
// and adds magnitude at integer multiples (2nd, 3rd and 5th order) of every
// peak before resynthesizing. Two chains run per hop: the current frame and
// the previous hop's processed output, which is transformed and excited a
// second time. The hop's output is the tail of the previous chain plus the
// head of the current one.
//
// Live controls are held in [Params], which is safe to mutate from another
// goroutine while audio runs. Everything else is owned by the audio
// goroutine. [Snapshot] exposes a copy of the latest buffers and spectrum
// for display without ever blocking the audio path.
package exciter
