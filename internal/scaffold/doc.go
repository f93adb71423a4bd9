// Package scaffold generates new skill packages from embedded templates. It
// powers the create command: a directory named after the package with a
// SKILL.md front-matter manifest and starter resource directories, validated
// against the manifest schema before being handed back to the user.
package scaffold
