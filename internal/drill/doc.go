// Package drill plays a generated problem as a live ticking number: the
// start value first, then one operand per cadence interval.
package drill
