// Package task runs units of work on a bounded pool of goroutines fed by a
// buffered queue. Worksheet generation uses it to build rows concurrently.
package task
