// Package export writes logistic map data as CSV, JSON or SVG to any
// io.Writer. JSON output encodes non-finite values as null.
package export
