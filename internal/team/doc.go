// Package team defines the in-memory data model the engine operates on:
// members with their three scalar attributes, the symmetric pairwise
// compatibility matrix, and the Team snapshot tying the two together.
//
// A Team is treated as immutable for the duration of one evaluation.
// Perturbation code never edits a snapshot in place — it works on copies
// produced by Clone or Without.
//
// resolve.go implements the presentation-boundary contract: row tables of
// nodes and edges (as a dashboard submits them) are resolved into a Team,
// silently dropping edges that reference unknown member names.
package team
