// Package ws streams the live evaluation snapshots to dashboard clients
// over WebSocket, broadcasting the full snapshot set on a fixed interval.
package ws
