// Package domain contains the persisted entities of the application:
// worksheets and live challenges. Both store generation settings rather
// than generated problems, which are rebuilt deterministically from the
// seed by package soroban.
package domain
