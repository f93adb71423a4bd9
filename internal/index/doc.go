// Package index builds the in-memory catalog of skill packages. It scans
// source roots for directories carrying a SKILL.md manifest, parses each
// manifest, and assembles a deterministic, duplicate-checked index keyed by
// package identity (the directory name). Parsing failures are collected as
// findings so one malformed package never aborts the catalog build.
package index
