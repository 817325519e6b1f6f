// Package plot renders profile-likelihood curves into one multi-page PDF,
// one page per mass range, and previews extracted histograms.
//
// Plots are built with go-hep's hplot on top of gonum/plot and drawn onto a
// single vgpdf canvas that gets a new page per curve.
package plot
