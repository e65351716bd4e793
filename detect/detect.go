// File: detect/detect.go
// Author: momentics <momentics@gmail.com>
//
// Package detect implements the platform-specific topology builder (C3):
// three mutually exclusive implementations, chosen at build time by the
// Go toolchain's GOOS selection, that each parse or query a
// platform-specific source of truth into the single canonical
// topology.CPU model. Detect is the only exported entry point; callers
// outside this module reach it through the gdtcpus facade, which
// memoizes the result for the life of the process.

package detect

import "github.com/WildPixelGames/gdt-cpus/topology"

// Detect builds the topology of the running host. It is safe to call more
// than once, but each call re-queries the OS; callers that want a single
// process-wide, memoized result should use the gdtcpus facade instead.
func Detect() (*topology.CPU, error) {
	return platformDetect()
}
