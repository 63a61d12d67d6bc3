// Package worksheet turns one generation configuration into a printable
// batch of problems. Row i is generated from the outer seed plus i, so a
// sheet can be rebuilt from its settings alone.
package worksheet
