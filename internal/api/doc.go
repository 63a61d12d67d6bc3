// Package api exposes problem generation, worksheets and live challenges
// over HTTP. Handlers decode and validate requests, call the services, and
// map service errors to status codes without leaking internal detail.
package api
