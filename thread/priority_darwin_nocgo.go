//go:build darwin && !cgo

// File: thread/priority_darwin_nocgo.go
// Author: momentics <momentics@gmail.com>
//
// Nice-based approximation used when cgo is disabled (CGO_ENABLED=0).
// pthread_setschedparam is unavailable without cgo on darwin, so the
// real-time bands fall back to the most favorable nice value instead of
// failing outright.

package thread

import (
	"golang.org/x/sys/unix"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
)

var niceByPriorityDarwin = map[Priority]int{
	PriorityBackground:   20,
	PriorityLowest:       10,
	PriorityBelowNormal:  5,
	PriorityNormal:       0,
	PriorityAboveNormal:  -5,
	PriorityHighest:      -15,
	PriorityTimeCritical: -20,
}

func setPriorityPlatform(p Priority) error {
	nice, ok := niceByPriorityDarwin[p]
	if !ok {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetCurrentThreadPriority", "unknown priority value")
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, nice); err != nil {
		return gdterrors.Wrap(gdterrors.KindSystemCall, "setpriority", err)
	}
	return nil
}
