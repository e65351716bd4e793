//go:build arm64

// File: detect/internal/cpufeatures/cpufeatures_arm64.go
// Author: momentics <momentics@gmail.com>
//
// AArch64 ISA feature detection via golang.org/x/sys/cpu, which reads
// HWCAP/HWCAP2 on Linux and the environment's reported capabilities on
// Darwin. Vendor/brand strings are not available through this path; the
// per-OS detector supplies them from its own topology source.

package cpufeatures

import (
	"golang.org/x/sys/cpu"

	"github.com/WildPixelGames/gdt-cpus/topology"
)

// Detect returns the ISA feature bitset reported for this AArch64 host.
// vendor and brand are always empty; arm64 platforms identify the CPU
// through OS-specific means (sysctl on Darwin, /proc/cpuinfo on Linux).
func Detect() (vendor, brand string, features topology.FeatureSet) {
	if cpu.ARM64.HasASIMD {
		features = features.Set(topology.NEON)
	}
	if cpu.ARM64.HasSVE {
		features = features.Set(topology.SVE)
	}
	if cpu.ARM64.HasCRC32 {
		features = features.Set(topology.CRC32)
	}
	if cpu.ARM64.HasAES {
		features = features.Set(topology.AES)
	}
	if cpu.ARM64.HasSHA1 || cpu.ARM64.HasSHA2 {
		features = features.Set(topology.SHA)
	}
	return "", "", features
}
