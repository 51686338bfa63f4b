// Package analysis inspects recorded trajectories in the frequency domain.
//
// [JudderSpectrum] looks at the frame-to-frame displacement of a run. Smooth
// motion changes displacement slowly, so after removing the linear trend
// almost no energy is left. Uneven frame pacing or a stuttering velocity
// shows up as peaks toward the Nyquist frequency:
//
//	spectrum, err := analysis.JudderSpectrum(ys, 60)
//	if spectrum.HighBandRatio() > 0.2 {
//	    // visible judder
//	}
package analysis
