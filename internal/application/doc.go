// Package application wires the filter run together: it loads the pattern
// set, walks the input directory, applies substitutions to each file and
// writes the results, keeping main focused on CLI parsing and exit codes.
package application
