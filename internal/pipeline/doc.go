// Package pipeline provides a framework for executing scan steps in sequence.
//
// Every scan-result file goes through the same steps: parse the scan
// parameter from the file name, list the stored objects, extract one scan
// point per object and record the points in the shared ResultSet. Each
// stage is a Step that receives the per-file record and adds to it.
//
// The Runner drives one pipeline per input file, strictly in command-line
// order and on a single goroutine. The first error aborts the whole run;
// nothing is skipped.
package pipeline
