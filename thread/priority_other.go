//go:build !linux && !windows && !darwin

// File: thread/priority_other.go
// Author: momentics <momentics@gmail.com>

package thread

import "github.com/WildPixelGames/gdt-cpus/gdterrors"

func setPriorityPlatform(p Priority) error {
	return gdterrors.New(gdterrors.KindUnsupportedPlatform, "thread.SetCurrentThreadPriority", "not supported on this platform")
}
