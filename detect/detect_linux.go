//go:build linux

// File: detect/detect_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux topology detector. Sources: the /sys/devices/system/cpu topology
// and cache trees, /proc/cpuinfo for vendor/model, and CPUID (amd64) or
// HWCAP (arm64) for the ISA feature bitset, per section 4.3.2 of the
// specification. /sys/devices/system/cpu/online is the universe for every
// id this detector reports: a cgroup- or namespace-limited process must
// never see, or be told to pin to, a logical processor it cannot use.

package detect

import (
	"runtime"
	"sort"

	"github.com/WildPixelGames/gdt-cpus/detect/internal/cpufeatures"
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

type coreKey struct{ pkg, core int }

func platformDetect() (*topology.CPU, error) {
	online, err := onlineCPUs()
	if err != nil {
		return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", err)
	}
	if len(online) == 0 {
		return nil, gdterrors.New(gdterrors.KindDetectionFailed, "detect.platformDetect", "no online logical processors reported")
	}

	coreLPs := map[coreKey][]int{}
	var fallback map[int]coreKey
	for _, cpuID := range online {
		pkg, pkgErr := readIntFile(cpuTopologyFile(cpuID, "physical_package_id"))
		core, coreErr := readIntFile(cpuTopologyFile(cpuID, "core_id"))
		if pkgErr != nil || coreErr != nil {
			if fallback == nil {
				fallback = coreTopologyFallback(online)
			}
			key, ok := fallback[cpuID]
			if !ok {
				if pkgErr != nil {
					return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", pkgErr)
				}
				return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", coreErr)
			}
			coreLPs[key] = append(coreLPs[key], cpuID)
			continue
		}
		if pkg < 0 {
			pkg = 0
		}
		if core < 0 {
			core = 0
		}
		key := coreKey{pkg, core}
		coreLPs[key] = append(coreLPs[key], cpuID)
	}

	hybrid := classifyHybrid(online, runtime.GOARCH)
	caches, err := readCaches(online)
	if err != nil {
		return nil, err
	}

	packages := map[int][]coreKey{}
	for k := range coreLPs {
		packages[k.pkg] = append(packages[k.pkg], k)
	}
	var pkgIDs []int
	for p := range packages {
		pkgIDs = append(pkgIDs, p)
	}
	sort.Ints(pkgIDs)

	var sockets []topology.SocketInfo
	for _, pkgID := range pkgIDs {
		keys := packages[pkgID]
		sort.Slice(keys, func(i, j int) bool { return keys[i].core < keys[j].core })

		var cores []topology.CoreInfo
		for _, k := range keys {
			lps := append([]int(nil), coreLPs[k]...)
			sort.Ints(lps)

			core := topology.CoreInfo{
				CoreID:              len(cores),
				Kind:                hybrid[lps[0]],
				LogicalProcessorIDs: lps,
				L1Instruction:       caches.l1i[lps[0]],
				L1Data:              caches.l1d[lps[0]],
				L2:                  caches.l2[lps[0]],
			}
			cores = append(cores, core)
		}

		sock := topology.SocketInfo{SocketID: len(sockets), Cores: cores}
		if len(keys) > 0 {
			if rep := coreLPs[keys[0]]; len(rep) > 0 {
				sort.Ints(rep)
				sock.L3 = caches.l3[rep[0]]
			}
		}
		sockets = append(sockets, sock)
	}

	vendor, modelName := readProcCPUInfo()
	features, cpuidVendor, cpuidBrand := detectFeaturesLinux()
	if vendor == "" {
		vendor = cpuidVendor
	}
	if modelName == "" {
		modelName = cpuidBrand
	}

	cpu, err := topology.New(vendor, modelName, sockets, features)
	if err != nil {
		return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", err)
	}
	return cpu, nil
}

func detectFeaturesLinux() (topology.FeatureSet, string, string) {
	vendor, brand, features := cpufeatures.Detect()
	return features, vendor, brand
}
