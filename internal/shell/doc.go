// Package shell persists an install's executable directory into the
// mechanism the host uses to locate commands by name.
//
// On Unix-like systems that means appending a PATH-exporting line to each
// recognized shell's startup file, exactly once per directory no matter
// how often registration runs. On Windows it means editing the Path value
// under the per-user Environment registry key, treating the value as a
// discrete semicolon-separated list rather than a substring.
//
// Both backends expose the same Registrar interface and both support the
// inverse operation; removing a directory that was never registered is a
// no-op. The concrete backend is chosen once at startup by host platform.
package shell
