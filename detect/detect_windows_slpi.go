//go:build windows

// File: detect/detect_windows_slpi.go
// Author: momentics <momentics@gmail.com>
//
// Raw parsing of the SYSTEM_LOGICAL_PROCESSOR_INFORMATION_EX array
// returned by GetLogicalProcessorInformationEx(RelationAll, ...). The
// kernel32 entry points are declared the way the teacher repo declares
// Windows syscalls throughout (affinity/affinity_windows.go,
// pool/numa_windows.go): windows.NewLazySystemDLL + NewProc + Call,
// rather than pulling in a cgo dependency for a handful of calls.
//
// Field offsets below follow the documented layout of
// PROCESSOR_RELATIONSHIP and CACHE_RELATIONSHIP (Windows 10 1607+, the
// layout every supported Windows release still uses): each record's own
// Size field is authoritative for how far to advance, so a mismatch in
// how we interpret optional trailing fields never desyncs the walk.

package detect

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
)

const (
	relationProcessorCore    = 0
	relationNumaNode         = 1
	relationCache            = 2
	relationProcessorPackage = 3
	relationGroup            = 4
	relationAll              = 0xffff
)

const (
	ltpPCSMT = 0x1 // PROCESSOR_RELATIONSHIP.Flags bit: core exposes SMT
)

// winCacheUnified etc. mirror the PROCESSOR_CACHE_TYPE enum.
const (
	winCacheUnified = iota
	winCacheInstruction
	winCacheData
	winCacheTrace
)

var (
	modkernel32                      = windows.NewLazySystemDLL("kernel32.dll")
	procGetLogicalProcessorInfoEx    = modkernel32.NewProc("GetLogicalProcessorInformationEx")
	procGetActiveProcessorGroupCount = modkernel32.NewProc("GetActiveProcessorGroupCount")
	procGetActiveProcessorCount      = modkernel32.NewProc("GetActiveProcessorCount")
)

// slpiProcessor is the subset of PROCESSOR_RELATIONSHIP this detector
// needs: whether the core is SMT-capable, its hybrid efficiency class,
// and the (group, mask) pairs naming its logical processors.
type slpiProcessor struct {
	flags           byte
	efficiencyClass byte
	groupMasks      []groupAffinity
}

type groupAffinity struct {
	mask  uint64
	group uint16
}

type slpiCache struct {
	level    byte
	kind     byte
	lineSize uint16
	size     uint32
	mask     groupAffinity
}

// fetchLogicalProcessorInformationEx calls GetLogicalProcessorInformationEx
// twice: once to size the buffer, once to fill it.
func fetchLogicalProcessorInformationEx() ([]byte, error) {
	var needed uint32
	r, _, _ := procGetLogicalProcessorInfoEx.Call(
		uintptr(relationAll), 0, uintptr(unsafe.Pointer(&needed)))
	if r != 0 {
		return nil, gdterrors.New(gdterrors.KindSystemCall, "GetLogicalProcessorInformationEx", "unexpected success sizing buffer")
	}
	if needed == 0 {
		return nil, gdterrors.New(gdterrors.KindSystemCall, "GetLogicalProcessorInformationEx", "kernel reported zero buffer size")
	}

	buf := make([]byte, needed)
	r, _, err := procGetLogicalProcessorInfoEx.Call(
		uintptr(relationAll), uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&needed)))
	if r == 0 {
		return nil, gdterrors.Wrap(gdterrors.KindSystemCall, "GetLogicalProcessorInformationEx", err)
	}
	return buf, nil
}

// parseSLPIEx walks the buffer returned by
// GetLogicalProcessorInformationEx, returning the processor-core,
// processor-package, and cache records it contains.
func parseSLPIEx(buf []byte) (cores, packages []slpiProcessor, caches []slpiCache, err error) {
	off := 0
	for off+8 <= len(buf) {
		relationship := binary.LittleEndian.Uint32(buf[off:])
		size := binary.LittleEndian.Uint32(buf[off+4:])
		if size < 8 || int(off)+int(size) > len(buf) {
			return nil, nil, nil, gdterrors.New(gdterrors.KindParse, "GetLogicalProcessorInformationEx", "malformed record size")
		}
		rec := buf[off : off+int(size)]

		switch relationship {
		case relationProcessorCore:
			p, perr := parseProcessorRelationship(rec)
			if perr == nil {
				cores = append(cores, p)
			}
		case relationProcessorPackage:
			p, perr := parseProcessorRelationship(rec)
			if perr == nil {
				packages = append(packages, p)
			}
		case relationCache:
			c, cerr := parseCacheRelationship(rec)
			if cerr == nil {
				caches = append(caches, c)
			}
		}

		off += int(size)
	}
	return cores, packages, caches, nil
}

func parseProcessorRelationship(rec []byte) (slpiProcessor, error) {
	// Offsets relative to the start of the union (rec[8:]), per
	// PROCESSOR_RELATIONSHIP: Flags(1) EfficiencyClass(1) Reserved[20]
	// GroupCount(2) GroupMask[]...
	const base = 8
	if len(rec) < base+24 {
		return slpiProcessor{}, fmt.Errorf("record too short for PROCESSOR_RELATIONSHIP")
	}
	flags := rec[base+0]
	eff := rec[base+1]
	groupCount := binary.LittleEndian.Uint16(rec[base+22:])
	const groupMaskStart = base + 24
	const groupAffinitySize = 16

	var masks []groupAffinity
	for i := 0; i < int(groupCount); i++ {
		o := groupMaskStart + i*groupAffinitySize
		if o+16 > len(rec) {
			break
		}
		masks = append(masks, groupAffinity{
			mask:  binary.LittleEndian.Uint64(rec[o:]),
			group: binary.LittleEndian.Uint16(rec[o+8:]),
		})
	}
	return slpiProcessor{flags: flags, efficiencyClass: eff, groupMasks: masks}, nil
}

func parseCacheRelationship(rec []byte) (slpiCache, error) {
	// Offsets relative to rec[8:]: Level(1) Associativity(1) LineSize(2)
	// CacheSize(4) Type(4) Reserved[18] GroupCount(2) GroupMask...
	const base = 8
	if len(rec) < base+32+16 {
		return slpiCache{}, fmt.Errorf("record too short for CACHE_RELATIONSHIP")
	}
	level := rec[base+0]
	lineSize := binary.LittleEndian.Uint16(rec[base+2:])
	cacheSize := binary.LittleEndian.Uint32(rec[base+4:])
	cacheType := binary.LittleEndian.Uint32(rec[base+8:])
	const groupMaskOff = base + 32
	mask := groupAffinity{
		mask:  binary.LittleEndian.Uint64(rec[groupMaskOff:]),
		group: binary.LittleEndian.Uint16(rec[groupMaskOff+8:]),
	}
	return slpiCache{level: level, kind: byte(cacheType), lineSize: lineSize, size: cacheSize, mask: mask}, nil
}

// activeProcessorCounts returns, for each processor group present on the
// host, the number of logical processors it contains, used to translate
// a (group, per-group bit) pair into the dense global numbering this
// library reports everywhere else.
func activeProcessorCounts() ([]int, error) {
	r, _, _ := procGetActiveProcessorGroupCount.Call()
	groupCount := int(int16(r))
	if groupCount <= 0 {
		return nil, gdterrors.New(gdterrors.KindSystemCall, "GetActiveProcessorGroupCount", "no processor groups reported")
	}
	counts := make([]int, groupCount)
	for g := 0; g < groupCount; g++ {
		r, _, _ := procGetActiveProcessorCount.Call(uintptr(g))
		counts[g] = int(r)
	}
	return counts, nil
}

// globalIDBase returns the cumulative count of logical processors in every
// group before g, the offset added to a per-group bit index to obtain the
// dense global logical-processor id this library reports.
func globalIDBase(counts []int, g uint16) int {
	base := 0
	for i := 0; i < int(g) && i < len(counts); i++ {
		base += counts[i]
	}
	return base
}

func globalIDsFromGroupMasks(masks []groupAffinity, counts []int) []int {
	var ids []int
	for _, gm := range masks {
		base := globalIDBase(counts, gm.group)
		for bit := 0; bit < 64; bit++ {
			if gm.mask&(1<<uint(bit)) != 0 {
				ids = append(ids, base+bit)
			}
		}
	}
	return ids
}
