// File: thread/priority.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for thread scheduling priority. Platform-specific
// implementations live in priority_linux.go, priority_windows.go,
// priority_darwin_cgo.go, and priority_darwin_nocgo.go, guarded by build tags, the same split affinity.go
// uses in the teacher repo.

package thread

// Priority is a portable scheduling hint, translated to the native
// priority scheme of the host OS.
type Priority int

const (
	PriorityBackground Priority = iota
	PriorityLowest
	PriorityBelowNormal
	PriorityNormal
	PriorityAboveNormal
	PriorityHighest
	PriorityTimeCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityBackground:
		return "Background"
	case PriorityLowest:
		return "Lowest"
	case PriorityBelowNormal:
		return "BelowNormal"
	case PriorityNormal:
		return "Normal"
	case PriorityAboveNormal:
		return "AboveNormal"
	case PriorityHighest:
		return "Highest"
	case PriorityTimeCritical:
		return "TimeCritical"
	default:
		return "Unknown"
	}
}

// SetCurrentThreadPriority sets the scheduling priority of the calling
// OS thread. Callers that need this applied to a specific goroutine must
// first call runtime.LockOSThread.
func SetCurrentThreadPriority(p Priority) error {
	return setPriorityPlatform(p)
}
