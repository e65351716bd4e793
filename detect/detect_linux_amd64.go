//go:build linux && amd64

// File: detect/detect_linux_amd64.go
// Author: momentics <momentics@gmail.com>
//
// CPUID-based fallback grouping for sysfs cpu topology trees that are
// missing or incomplete, e.g. a minimal container image whose cpuN
// directories carry no topology/ subdirectory at all.

package detect

import "github.com/WildPixelGames/gdt-cpus/detect/internal/cpufeatures"

// coreTopologyFallback reconstructs a single-package, evenly-sized core
// grouping from CPUID's own physical/logical core counts, used only when
// physical_package_id or core_id cannot be read for an online processor.
func coreTopologyFallback(online []int) map[int]coreKey {
	physical, logical := cpufeatures.PhysicalAndLogicalCores()
	if physical <= 0 || logical <= 0 {
		return nil
	}
	threadsPerCore := logical / physical
	if threadsPerCore <= 0 {
		threadsPerCore = 1
	}
	out := make(map[int]coreKey, len(online))
	for i, id := range online {
		out[id] = coreKey{pkg: 0, core: i / threadsPerCore}
	}
	return out
}
