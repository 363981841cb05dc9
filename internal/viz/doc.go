// Package viz renders solver results in the terminal and to image files.
//
//   - [PlotTraces]: asciigraph line plots of labeled signals
//   - [Sparkline]: one-row signal summary for tables
//   - [SavePNG]: gonum/plot export of selected traces
//
// The live transient viewer lives in the live package; viz is the
// batch-rendering half.
package viz
