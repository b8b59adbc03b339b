// Package server holds the HTTP server settings shared by the start command and
// the middleware stack.
package server
