// File: topology/cache.go
// Author: momentics <momentics@gmail.com>

package topology

// CacheKind classifies a CacheInfo.
type CacheKind int

const (
	CacheData CacheKind = iota
	CacheInstruction
	CacheUnified
)

func (k CacheKind) String() string {
	switch k {
	case CacheData:
		return "Data"
	case CacheInstruction:
		return "Instruction"
	case CacheUnified:
		return "Unified"
	default:
		return "Unknown"
	}
}

// CacheInfo describes one cache level. SizeBytes and LineSizeBytes are
// pointers because a platform source may report one without the other;
// a missing attribute is encoded as a nil pointer, never as zero.
type CacheInfo struct {
	Level         int
	Kind          CacheKind
	SizeBytes     *uint64
	LineSizeBytes *uint64
}

// SizeKB returns the cache size in whole kilobytes, and false if the size
// is not known.
func (c *CacheInfo) SizeKB() (uint64, bool) {
	if c == nil || c.SizeBytes == nil {
		return 0, false
	}
	return *c.SizeBytes / 1024, true
}

func uint64p(v uint64) *uint64 { return &v }

// NewCacheInfo builds a CacheInfo with both size attributes present.
func NewCacheInfo(level int, kind CacheKind, sizeBytes, lineSizeBytes uint64) CacheInfo {
	return CacheInfo{
		Level:         level,
		Kind:          kind,
		SizeBytes:     uint64p(sizeBytes),
		LineSizeBytes: uint64p(lineSizeBytes),
	}
}
