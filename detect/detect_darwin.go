//go:build darwin

// File: detect/detect_darwin.go
// Author: momentics <momentics@gmail.com>
//
// macOS topology detector. Every topology fact comes from sysctlbyname
// keys, read through golang.org/x/sys/unix.Sysctl/SysctlUint32/
// SysctlUint64 -- no cgo, mirroring the technique the retrieved gopsutil
// cpu_darwin.go uses rather than the teacher repo's cgo NUMA allocator.
// Sockets are synthesized (hw.packages, usually 1); on Apple Silicon
// logical processors map one-to-one onto cores (SMT is 1 everywhere),
// ordered performance-first then efficiency per section 4.3.3.

package detect

import (
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/WildPixelGames/gdt-cpus/detect/internal/cpufeatures"
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

func platformDetect() (*topology.CPU, error) {
	packages := sysctlUint32OrDefault("hw.packages", 1)
	if packages < 1 {
		packages = 1
	}

	perf := sysctlUint32OrDefault("hw.perflevel0.physicalcpu", 0)
	eff := sysctlUint32OrDefault("hw.perflevel1.physicalcpu", 0)
	physicalTotal := sysctlUint32OrDefault("hw.physicalcpu", 0)
	logicalTotal := sysctlUint32OrDefault("hw.logicalcpu", 0)

	hybrid := perf > 0 && eff > 0
	if !hybrid {
		perf = physicalTotal
		eff = 0
	}
	threadsPerCore := 1
	if physicalTotal > 0 && logicalTotal >= physicalTotal {
		threadsPerCore = int(logicalTotal / physicalTotal)
		if threadsPerCore < 1 {
			threadsPerCore = 1
		}
	}

	var l3 *topology.CacheInfo
	if sz, ok := sysctlUint64("hw.l3cachesize"); ok && sz > 0 {
		l3 = &topology.CacheInfo{Level: 3, Kind: topology.CacheUnified, SizeBytes: &sz}
	}

	lpID := 0
	sockets := make([]topology.SocketInfo, packages)
	for s := uint32(0); s < packages; s++ {
		sockets[s].SocketID = int(s)
		sockets[s].L3 = l3
		appendCores := func(n int, kind topology.CoreKind, l1i, l1d, l2 *topology.CacheInfo) {
			for i := 0; i < n; i++ {
				lpIDs := make([]int, 0, threadsPerCore)
				for t := 0; t < threadsPerCore; t++ {
					lpIDs = append(lpIDs, lpID)
					lpID++
				}
				sockets[s].Cores = append(sockets[s].Cores, topology.CoreInfo{
					CoreID:              len(sockets[s].Cores),
					Kind:                kind,
					LogicalProcessorIDs: lpIDs,
					L1Instruction:       l1i,
					L1Data:              l1d,
					L2:                  l2,
				})
			}
		}

		if hybrid {
			pl1i, pl1d, pl2 := perflevelCaches("hw.perflevel0")
			appendCores(sharePerSocket(int(perf), packages, s), topology.Performance, pl1i, pl1d, pl2)
			el1i, el1d, el2 := perflevelCaches("hw.perflevel1")
			appendCores(sharePerSocket(int(eff), packages, s), topology.Efficiency, el1i, el1d, el2)
		} else {
			l1i, l1d, l2 := flatCaches()
			appendCores(sharePerSocket(int(perf), packages, s), topology.Performance, l1i, l1d, l2)
		}
	}

	vendor, modelName := darwinVendorModel()
	_, _, features := cpufeatures.Detect()

	cpu, err := topology.New(vendor, modelName, sockets, features)
	if err != nil {
		return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", err)
	}
	return cpu, nil
}

// sharePerSocket splits n cores evenly across packages sockets, handing
// the remainder to the lowest-numbered sockets.
func sharePerSocket(n int, packages uint32, socket uint32) int {
	base := n / int(packages)
	rem := n % int(packages)
	if int(socket) < rem {
		return base + 1
	}
	return base
}

func darwinVendorModel() (vendor, modelName string) {
	modelName, _ = unix.Sysctl("machdep.cpu.brand_string")
	if runtime.GOARCH == "arm64" {
		return "Apple", modelName
	}
	vendor, _ = unix.Sysctl("machdep.cpu.vendor")
	return vendor, modelName
}

func perflevelCaches(prefix string) (l1i, l1d, l2 *topology.CacheInfo) {
	if sz, ok := sysctlUint64(prefix + ".l1icachesize"); ok {
		l1i = &topology.CacheInfo{Level: 1, Kind: topology.CacheInstruction, SizeBytes: &sz}
	}
	if sz, ok := sysctlUint64(prefix + ".l1dcachesize"); ok {
		l1d = &topology.CacheInfo{Level: 1, Kind: topology.CacheData, SizeBytes: &sz}
	}
	if sz, ok := sysctlUint64(prefix + ".l2cachesize"); ok {
		l2 = &topology.CacheInfo{Level: 2, Kind: topology.CacheUnified, SizeBytes: &sz}
	}
	return l1i, l1d, l2
}

func flatCaches() (l1i, l1d, l2 *topology.CacheInfo) {
	if sz, ok := sysctlUint64("hw.l1icachesize"); ok {
		l1i = &topology.CacheInfo{Level: 1, Kind: topology.CacheInstruction, SizeBytes: &sz}
	}
	if sz, ok := sysctlUint64("hw.l1dcachesize"); ok {
		l1d = &topology.CacheInfo{Level: 1, Kind: topology.CacheData, SizeBytes: &sz}
	}
	if sz, ok := sysctlUint64("hw.l2cachesize"); ok {
		l2 = &topology.CacheInfo{Level: 2, Kind: topology.CacheUnified, SizeBytes: &sz}
	}
	return l1i, l1d, l2
}

func sysctlUint32OrDefault(name string, def uint32) uint32 {
	v, err := unix.SysctlUint32(name)
	if err != nil {
		return def
	}
	return v
}

// sysctlUint64 reads a sysctl that may be exposed as either a 32-bit or
// 64-bit integer, since cache-size keys vary by macOS version.
func sysctlUint64(name string) (uint64, bool) {
	if v, err := unix.SysctlUint64(name); err == nil {
		return v, true
	}
	if v, err := unix.SysctlUint32(name); err == nil {
		return uint64(v), true
	}
	return 0, false
}
