// Package charts renders the interactive HTML charts of the analysis:
// capacity per type as bars and as a pie, capacity per project as one line
// per type, and the per-type series as a stacked area.
//
// Chart builders are pure functions over domain.ChartData; Renderer writes
// each document as a standalone HTML file, optionally in parallel.
package charts
