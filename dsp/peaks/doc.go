// Package peaks finds spectral peaks in a magnitude half spectrum.
//
// Two strategies are provided. [Fixed] compares each local maximum against
// a fraction of the frame maximum. [Adaptive] tracks a smoothed per-bin
// floor curve and reports local maxima that rise above it.
//
// Detectors search bins [1, len(mask)) where len(mask) is normally N/4.
// Each detector instance carries its own state, so the exciter builds one
// per processing chain through a [Factory].
package peaks
