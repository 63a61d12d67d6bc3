// Package store defines the persistence interfaces for worksheets and live
// challenges, the sentinel errors every implementation returns, and the
// transaction helper the services run writes through.
package store
