// Package model defines the data structures shared by the scan reporter and
// the histogram extractor.
//
// This package contains the following main types:
//   - MassRange: the half-open [low, high) interval encoded in an object name
//   - ScanPoint: one (mass range, scan parameter, log-likelihood) triple
//   - ResultSet: the ordered two-level mapping built across all input files
//   - Curve: one mass range after sorting, baseline subtraction and filtering
//   - HistogramSpec and Expression: what the extractor bins and how
//
// It also holds the parsers that turn file names, object names and
// auxiliary-item titles into these values. Parsers never skip input: every
// failure is returned as an error wrapping one of the sentinel errors below.
//
// The types are serializable to JSON for reports and for the run history.
package model
