//go:build amd64

// File: detect/internal/cpufeatures/cpufeatures_amd64.go
// Author: momentics <momentics@gmail.com>
//
// x86_64 ISA feature detection via the CPUID instruction, identical on
// Windows, Linux, and macOS. It is the only source of the feature bitset
// on all three; no OS-reported feature list is read or compared with it.

package cpufeatures

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/WildPixelGames/gdt-cpus/topology"
)

// Detect returns the vendor string, brand string, and ISA feature bitset
// reported by CPUID for the executing logical processor.
func Detect() (vendor, brand string, features topology.FeatureSet) {
	cpuid.Detect()
	c := cpuid.CPU

	type pair struct {
		id cpuid.FeatureID
		f  topology.Feature
	}
	for _, p := range []pair{
		{cpuid.SSE, topology.SSE},
		{cpuid.SSE2, topology.SSE2},
		{cpuid.SSE3, topology.SSE3},
		{cpuid.SSSE3, topology.SSSE3},
		{cpuid.SSE4, topology.SSE41},
		{cpuid.SSE42, topology.SSE42},
		{cpuid.FMA3, topology.FMA3},
		{cpuid.AVX, topology.AVX},
		{cpuid.AVX2, topology.AVX2},
		{cpuid.AVX512F, topology.AVX512F},
		{cpuid.AESNI, topology.AES},
		{cpuid.SHA, topology.SHA},
	} {
		if c.Has(p.id) {
			features = features.Set(p.f)
		}
	}

	return c.VendorString, c.BrandName, features
}

// PhysicalAndLogicalCores returns CPUID's own core-count accounting, used
// as a sanity fallback when an OS topology source is unavailable or
// incomplete.
func PhysicalAndLogicalCores() (physical, logical int) {
	cpuid.Detect()
	return cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores
}
