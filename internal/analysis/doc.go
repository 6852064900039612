// Package analysis turns recorded series into summaries.
//
//   - [PowerSpectrum] and [DominantFrequency]: oscillation analysis, for
//     example the period of a pendulum bob
//   - [Portrait]: one recorded quantity plotted against another
package analysis
