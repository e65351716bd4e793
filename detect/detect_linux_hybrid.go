//go:build linux

// File: detect/detect_linux_hybrid.go
// Author: momentics <momentics@gmail.com>
//
// Hybrid (performance/efficiency) core classification on Linux.
//
// Section 4.3.2 of the specification calls for classifying via Intel CPUID
// leaf 0x1A (core_type) on x86 and MIDR implementer/part identifiers on
// AArch64. Modern Linux kernels (5.13+) already decode leaf 0x1A for every
// logical processor and publish the result as two static topology groups,
// /sys/devices/cpu_core/cpus and /sys/devices/cpu_atom/cpus -- reading
// those is the idiomatic Go-without-cgo equivalent of parsing the raw
// CPUID leaf ourselves, and is preferred here. Where the kernel does not
// expose them (older kernels, non-Intel hybrid parts), the cpufreq
// max-frequency clustering fallback from the specification applies.

package detect

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WildPixelGames/gdt-cpus/topology"
)

// classifyHybrid returns, for every online logical processor, whether it
// belongs to a performance or efficiency core. On a non-hybrid host every
// entry is topology.Performance, matching the specification's explicit
// "all classes equal => all performance" rule.
func classifyHybrid(online []int, arch string) map[int]topology.CoreKind {
	if kinds, ok := classifyByCPUCoreAtomGroups(online); ok {
		return kinds
	}
	if arch == "arm64" {
		if kinds, ok := classifyARM64ByMIDR(online); ok {
			return kinds
		}
	}
	if kinds, ok := classifyByCPUFreqClustering(online); ok {
		return kinds
	}
	return uniformPerformance(online)
}

func uniformPerformance(online []int) map[int]topology.CoreKind {
	out := make(map[int]topology.CoreKind, len(online))
	for _, id := range online {
		out[id] = topology.Performance
	}
	return out
}

// cpuCoreGroupPath and cpuAtomGroupPath are vars, not consts, so
// _test.go files can redirect them at a fixture tree.
var (
	cpuCoreGroupPath = "/sys/devices/cpu_core/cpus"
	cpuAtomGroupPath = "/sys/devices/cpu_atom/cpus"
)

// classifyByCPUCoreAtomGroups reads the kernel's own hybrid classification
// from /sys/devices/cpu_core/cpus and /sys/devices/cpu_atom/cpus.
func classifyByCPUCoreAtomGroups(online []int) (map[int]topology.CoreKind, bool) {
	coreIDs, errCore := readRangeList(cpuCoreGroupPath)
	atomIDs, errAtom := readRangeList(cpuAtomGroupPath)
	if errCore != nil && errAtom != nil {
		return nil, false
	}

	out := make(map[int]topology.CoreKind, len(online))
	for _, id := range online {
		out[id] = topology.Performance
	}
	for _, id := range coreIDs {
		out[id] = topology.Performance
	}
	for _, id := range atomIDs {
		out[id] = topology.Efficiency
	}
	return out, true
}

// classifyARM64ByMIDR groups logical processors by the part-number field
// of their MIDR_EL1 register; the cluster with the higher observed
// cpuinfo_max_freq is classified Performance, the rest Efficiency. A
// single cluster means a non-hybrid host: all Performance.
func classifyARM64ByMIDR(online []int) (map[int]topology.CoreKind, bool) {
	partOf := make(map[int]uint64, len(online))
	groups := map[uint64][]int{}
	for _, id := range online {
		midr, err := readMIDR(id)
		if err != nil {
			return nil, false
		}
		part := (midr >> 4) & 0xFFF
		partOf[id] = part
		groups[part] = append(groups[part], id)
	}
	if len(groups) < 2 {
		return uniformPerformance(online), true
	}

	bestPart, bestFreq := uint64(0), -1
	freqOf := map[uint64]int{}
	for part, ids := range groups {
		freq := maxFreqOfAny(ids)
		freqOf[part] = freq
		if freq > bestFreq {
			bestFreq, bestPart = freq, part
		}
	}

	out := make(map[int]topology.CoreKind, len(online))
	for _, id := range online {
		if partOf[id] == bestPart {
			out[id] = topology.Performance
		} else {
			out[id] = topology.Efficiency
		}
	}
	return out, true
}

func readMIDR(cpuID int) (uint64, error) {
	path := filepath.Join(cpuDir(cpuID), "regs", "identification", "midr_el1")
	s, err := readTrimmed(path)
	if err != nil {
		return 0, err
	}
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	return strconv.ParseUint(s, 16, 64)
}

// classifyByCPUFreqClustering falls back to grouping CPUs into two
// clusters by their maximum scaling frequency when no explicit hybrid
// classification source is available, per the specification's optional
// x86 fallback.
func classifyByCPUFreqClustering(online []int) (map[int]topology.CoreKind, bool) {
	freqs := make(map[int]int, len(online))
	min, max := -1, -1
	for _, id := range online {
		f := maxFreqOfAny([]int{id})
		if f <= 0 {
			return nil, false
		}
		freqs[id] = f
		if min == -1 || f < min {
			min = f
		}
		if max == -1 || f > max {
			max = f
		}
	}
	if min <= 0 || max <= 0 {
		return nil, false
	}
	// Require a meaningful gap before concluding hybrid; small scaling
	// differences between otherwise-identical cores are common and do
	// not indicate distinct microarchitectures.
	if float64(max-min)/float64(max) < 0.15 {
		return uniformPerformance(online), true
	}

	threshold := (min + max) / 2
	out := make(map[int]topology.CoreKind, len(online))
	for _, id := range online {
		if freqs[id] >= threshold {
			out[id] = topology.Performance
		} else {
			out[id] = topology.Efficiency
		}
	}
	return out, true
}

func maxFreqOfAny(ids []int) int {
	best := -1
	for _, id := range ids {
		path := filepath.Join(cpuDir(id), "cpufreq", "cpuinfo_max_freq")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f := readIntFileDefault(path, -1)
		if f > best {
			best = f
		}
	}
	return best
}
