//go:build linux && !amd64

// File: detect/detect_linux_other.go
// Author: momentics <momentics@gmail.com>
//
// Non-amd64 Linux has no CPUID-based fallback source for core grouping;
// a missing sysfs topology tree is a hard detection failure there.

package detect

func coreTopologyFallback(online []int) map[int]coreKey {
	return nil
}
