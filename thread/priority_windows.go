//go:build windows

// File: thread/priority_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows priority translation via SetThreadPriority, declared the same
// way affinity_windows.go in the teacher repo declares kernel32 entry
// points: syscall.NewLazyDLL + NewProc + Call.

package thread

import (
	"syscall"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
)

const (
	threadPriorityIdle         = -15
	threadPriorityLowest       = -2
	threadPriorityBelowNormal  = -1
	threadPriorityNormal       = 0
	threadPriorityAboveNormal  = 1
	threadPriorityHighest      = 2
	threadPriorityTimeCritical = 15
)

var winPriorityByPriority = map[Priority]int32{
	PriorityBackground:   threadPriorityIdle,
	PriorityLowest:       threadPriorityLowest,
	PriorityBelowNormal:  threadPriorityBelowNormal,
	PriorityNormal:       threadPriorityNormal,
	PriorityAboveNormal:  threadPriorityAboveNormal,
	PriorityHighest:      threadPriorityHighest,
	PriorityTimeCritical: threadPriorityTimeCritical,
}

var (
	modkernel32thread              = syscall.NewLazyDLL("kernel32.dll")
	procSetThreadPriority          = modkernel32thread.NewProc("SetThreadPriority")
	procGetCurrentThreadForPriorty = modkernel32thread.NewProc("GetCurrentThread")
)

func setPriorityPlatform(p Priority) error {
	native, ok := winPriorityByPriority[p]
	if !ok {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetCurrentThreadPriority", "unknown priority value")
	}
	hThread, _, _ := procGetCurrentThreadForPriorty.Call()
	ret, _, err := procSetThreadPriority.Call(hThread, uintptr(int(native)))
	if ret == 0 {
		return gdterrors.Wrap(gdterrors.KindSystemCall, "SetThreadPriority", err)
	}
	return nil
}
