//go:build linux

// File: detect/detect_linux_cache.go
// Author: momentics <momentics@gmail.com>
//
// Parses /sys/devices/system/cpu/cpu<N>/cache/index<K>/* into CacheInfo
// values, one representative per cpu id so the main detector can attach
// L1/L2 to a core and L3 to a socket by looking up any one of its
// logical processors.

package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

type linuxCaches struct {
	l1i, l1d, l2, l3 map[int]*topology.CacheInfo
}

// readCaches walks every cache/index<K> directory under each online cpu
// and classifies entries by level and type.
func readCaches(online []int) (linuxCaches, error) {
	out := linuxCaches{
		l1i: map[int]*topology.CacheInfo{},
		l1d: map[int]*topology.CacheInfo{},
		l2:  map[int]*topology.CacheInfo{},
		l3:  map[int]*topology.CacheInfo{},
	}

	for _, cpuID := range online {
		cacheDir := filepath.Join(cpuDir(cpuID), "cache")
		entries, err := os.ReadDir(cacheDir)
		if err != nil {
			// Not every kernel/container exposes cache info; absence is
			// not fatal, the CacheInfo fields simply stay nil.
			continue
		}
		for _, e := range entries {
			if !strings.HasPrefix(e.Name(), "index") {
				continue
			}
			idxDir := filepath.Join(cacheDir, e.Name())
			level, err := readIntFile(filepath.Join(idxDir, "level"))
			if err != nil {
				continue
			}
			kindStr, err := readTrimmed(filepath.Join(idxDir, "type"))
			if err != nil {
				continue
			}
			kind, ok := parseCacheKind(kindStr)
			if !ok {
				continue
			}
			sizeStr, _ := readTrimmed(filepath.Join(idxDir, "size"))
			sizeBytes, sizeErr := parseSizeString(sizeStr)
			lineSize, lineErr := readIntFile(filepath.Join(idxDir, "coherency_line_size"))

			info := &topology.CacheInfo{Level: level, Kind: kind}
			if sizeErr == nil {
				sb := sizeBytes
				info.SizeBytes = &sb
			}
			if lineErr == nil {
				lb := uint64(lineSize)
				info.LineSizeBytes = &lb
			}

			switch {
			case level == 1 && kind == topology.CacheData:
				out.l1d[cpuID] = info
			case level == 1 && kind == topology.CacheInstruction:
				out.l1i[cpuID] = info
			case level == 2:
				out.l2[cpuID] = info
			case level == 3:
				out.l3[cpuID] = info
			}
		}
	}
	return out, nil
}

func parseCacheKind(s string) (topology.CacheKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "data":
		return topology.CacheData, true
	case "instruction":
		return topology.CacheInstruction, true
	case "unified":
		return topology.CacheUnified, true
	default:
		return 0, false
	}
}

// parseSizeString parses sysfs cache sizes like "32K" or "1M" into bytes.
func parseSizeString(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, gdterrors.ParseError("cache size", fmt.Errorf("empty size"))
	}
	mult := uint64(1)
	suffix := s[len(s)-1]
	numPart := s
	switch suffix {
	case 'K', 'k':
		mult = 1024
		numPart = s[:len(s)-1]
	case 'M', 'm':
		mult = 1024 * 1024
		numPart = s[:len(s)-1]
	case 'G', 'g':
		mult = 1024 * 1024 * 1024
		numPart = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(numPart), 10, 64)
	if err != nil {
		return 0, gdterrors.ParseError("cache size "+s, err)
	}
	return n * mult, nil
}
