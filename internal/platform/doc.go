// Package platform wraps the filesystem operations that differ across
// operating systems: symlink creation for link-mode installs and permission
// bits for package scripts. On Windows, symlinks need developer mode, so
// callers get a clear error telling them to use copy mode instead.
package platform
