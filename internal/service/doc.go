// Package service provides the application services behind the HTTP API:
// single-problem generation, worksheets and live challenges. Services
// validate input, regenerate problems from stored settings and coordinate
// persistence through the store interfaces.
package service
