// Package pipeline runs the analysis end to end: load, clean, report,
// render and the optional exports, in that order and exactly once.
//
// Each stage gets its own span and duration measurement. A failing stage
// stops the run; stages after it stay pending. A missing input file
// therefore never produces chart files.
package pipeline
