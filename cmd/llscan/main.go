// Package main provides the entry point for the llscan CLI.
//
// llscan turns likelihood-scan ROOT files into profile-likelihood plots and
// extracts angular histograms from event trees.
//
// Usage:
//
//	llscan scan 0.0.root 0.5.root 1.0.root
//	llscan hist in.root out.root
//
// See --help for all available options.
package main

// main is the entry point for llscan.
func main() {
	Execute()
}
