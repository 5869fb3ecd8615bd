// Package api is the HTTP JSON surface a dashboard talks to. It accepts row
// tables of nodes and edges, resolves them through the team boundary
// (dropping edges with unknown member names), runs the engine, and returns
// metrics, intervention suggestions or robustness reports.
//
// Shape errors from the engine surface as HTTP 422 with a "simulation
// error" message naming the mismatch; they never crash the process.
package api
