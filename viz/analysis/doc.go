// Package analysis decomposes the playback collaborator's sample snapshots
// into the signals that drive the visual pipeline: five perceptual frequency
// bands, a normalized time-domain waveform, an average volume, and beat
// events detected against a rolling bass-energy history.
//
// For offline use, PCMSource computes the frequency snapshot itself from raw
// PCM frames using a Hann-windowed FFT.
package analysis
