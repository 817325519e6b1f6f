// Package rootfile adapts go-hep's groot to the few operations llscan needs
// on ROOT files:
//   - list every stored object of a scan-result file with the names and
//     titles of the functions attached to it
//   - open a tree and stream one numeric branch as float64 values
//   - write a histogram to a freshly created file
//
// The ROOT format itself is handled entirely by groot. Callers depend on the
// ObjectReader and TreeReader interfaces so that tests can run without files.
package rootfile
