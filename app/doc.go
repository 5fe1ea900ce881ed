// Package app wires configuration, reference data, caches and services into
// the object graph shared by the HTTP server, the CLI and the terminal
// front-end.
package app
