//go:build !amd64 && !arm64

// File: detect/internal/cpufeatures/cpufeatures_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for architectures outside the specification's scope (x86_64,
// AArch64). Returns an empty feature set rather than guessing.

package cpufeatures

import "github.com/WildPixelGames/gdt-cpus/topology"

// Detect returns an empty feature set on unsupported architectures.
func Detect() (vendor, brand string, features topology.FeatureSet) {
	return "", "", 0
}
