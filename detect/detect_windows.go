//go:build windows

// File: detect/detect_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows topology detector: GetLogicalProcessorInformationEx(RelationAll)
// for cores/packages/caches, the registry for vendor/model, and CPUID
// (amd64) for the feature bitset. The CPUID vendor and brand strings are
// used only where the registry value is empty; the two sources are not
// compared, and the registry is not read for feature information. The efficiency-class rule implements the
// specification's documented fix for the historical bug of misclassifying
// non-hybrid hosts: equal classes across every core means every core is
// Performance, never Efficiency.

package detect

import (
	"sort"

	"github.com/WildPixelGames/gdt-cpus/detect/internal/cpufeatures"
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

func platformDetect() (*topology.CPU, error) {
	buf, err := fetchLogicalProcessorInformationEx()
	if err != nil {
		return nil, err
	}
	coreRecs, pkgRecs, cacheRecs, err := parseSLPIEx(buf)
	if err != nil {
		return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", err)
	}
	if len(pkgRecs) == 0 || len(coreRecs) == 0 {
		return nil, gdterrors.New(gdterrors.KindDetectionFailed, "detect.platformDetect", "no processor package/core records reported")
	}

	counts, err := activeProcessorCounts()
	if err != nil {
		return nil, err
	}

	type coreEntry struct {
		lpIDs []int
		eff   byte
	}
	var coreEntries []coreEntry
	for _, c := range coreRecs {
		ids := globalIDsFromGroupMasks(c.groupMasks, counts)
		if len(ids) == 0 {
			continue
		}
		sort.Ints(ids)
		coreEntries = append(coreEntries, coreEntry{lpIDs: ids, eff: c.efficiencyClass})
	}
	sort.Slice(coreEntries, func(i, j int) bool { return coreEntries[i].lpIDs[0] < coreEntries[j].lpIDs[0] })

	maxEff := byte(0)
	minEff := byte(255)
	for _, c := range coreEntries {
		if c.eff > maxEff {
			maxEff = c.eff
		}
		if c.eff < minEff {
			minEff = c.eff
		}
	}
	hybridHost := maxEff != minEff

	type pkgEntry struct {
		socketID int
		lpSet    map[int]struct{}
	}
	var pkgEntries []pkgEntry
	for i, p := range pkgRecs {
		ids := globalIDsFromGroupMasks(p.groupMasks, counts)
		set := make(map[int]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		pkgEntries = append(pkgEntries, pkgEntry{socketID: i, lpSet: set})
	}
	sort.Slice(pkgEntries, func(i, j int) bool {
		return minInt(keysOf(pkgEntries[i].lpSet)) < minInt(keysOf(pkgEntries[j].lpSet))
	})
	for i := range pkgEntries {
		pkgEntries[i].socketID = i
	}

	var sockets []topology.SocketInfo
	for _, pkg := range pkgEntries {
		var cores []topology.CoreInfo
		coreID := 0
		for _, ce := range coreEntries {
			if !intersects(ce.lpIDs, pkg.lpSet) {
				continue
			}
			kind := topology.Performance
			if hybridHost && ce.eff < maxEff {
				kind = topology.Efficiency
			}
			cores = append(cores, topology.CoreInfo{
				CoreID:              coreID,
				Kind:                kind,
				LogicalProcessorIDs: ce.lpIDs,
			})
			coreID++
		}
		sockets = append(sockets, topology.SocketInfo{SocketID: pkg.socketID, Cores: cores})
	}

	attachWindowsCaches(sockets, cacheRecs, counts)

	regVendor, regModel := readCentralProcessorRegistry()
	features, cpuidVendor, cpuidBrand := cpufeatures.Detect()
	vendor := regVendor
	if vendor == "" {
		vendor = cpuidVendor
	}
	modelName := regModel
	if modelName == "" {
		modelName = cpuidBrand
	}

	cpu, err := topology.New(vendor, modelName, sockets, features)
	if err != nil {
		return nil, gdterrors.Wrap(gdterrors.KindDetectionFailed, "detect.platformDetect", err)
	}
	return cpu, nil
}

func attachWindowsCaches(sockets []topology.SocketInfo, cacheRecs []slpiCache, counts []int) {
	for _, c := range cacheRecs {
		base := globalIDBase(counts, c.mask.group)
		var ids []int
		for bit := 0; bit < 64; bit++ {
			if c.mask.mask&(1<<uint(bit)) != 0 {
				ids = append(ids, base+bit)
			}
		}
		if len(ids) == 0 {
			continue
		}

		kind, ok := windowsCacheKind(c.kind)
		if !ok {
			continue
		}
		info := &topology.CacheInfo{Level: int(c.level), Kind: kind}
		sz := uint64(c.size)
		info.SizeBytes = &sz
		ls := uint64(c.lineSize)
		info.LineSizeBytes = &ls

		for si := range sockets {
			sock := &sockets[si]
			if int(c.level) == 3 {
				if socketIntersects(sock, ids) {
					sock.L3 = info
				}
				continue
			}
			for ci := range sock.Cores {
				core := &sock.Cores[ci]
				if intersectsIDs(core.LogicalProcessorIDs, ids) {
					switch {
					case int(c.level) == 1 && kind == topology.CacheData:
						core.L1Data = info
					case int(c.level) == 1 && kind == topology.CacheInstruction:
						core.L1Instruction = info
					case int(c.level) == 2:
						core.L2 = info
					}
				}
			}
		}
	}
}

func windowsCacheKind(t byte) (topology.CacheKind, bool) {
	switch t {
	case winCacheUnified:
		return topology.CacheUnified, true
	case winCacheInstruction:
		return topology.CacheInstruction, true
	case winCacheData:
		return topology.CacheData, true
	default:
		return 0, false
	}
}

func intersects(ids []int, set map[int]struct{}) bool {
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func intersectsIDs(a, b []int) bool {
	set := make(map[int]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	for _, id := range a {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func socketIntersects(sock *topology.SocketInfo, ids []int) bool {
	for _, core := range sock.Cores {
		if intersectsIDs(core.LogicalProcessorIDs, ids) {
			return true
		}
	}
	return false
}

func keysOf(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func minInt(ids []int) int {
	if len(ids) == 0 {
		return 0
	}
	m := ids[0]
	for _, id := range ids[1:] {
		if id < m {
			m = id
		}
	}
	return m
}
