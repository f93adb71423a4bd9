// Package cli wires the skillset command tree. Each command lives in its own
// file and registers itself on the root command in init(). Commands resolve
// catalog sources from flags, then user config, then the default home
// catalog, and print machine findings through the findings report.
package cli
