// Package hist fills a one-dimensional histogram from a branch of a ROOT
// tree and stores it in a new ROOT file.
package hist
