//go:build linux

// File: thread/priority_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux priority translation. Normal priorities map onto the nice range
// (-20..19) via unix.Setpriority. Highest and TimeCritical additionally
// attempt SCHED_FIFO real-time scheduling via a raw sched_setscheduler
// syscall -- golang.org/x/sys/unix does not wrap that call, so it is
// issued directly the way affinity_linux.go in the teacher repo reaches
// for a raw primitive rather than carrying a cgo dependency for one
// syscall. An unprivileged caller gets EPERM from the kernel; that is
// not an error here, it just falls back to the nice value mapped for
// that priority (-10 for Highest, -20 for TimeCritical).

package thread

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
)

const (
	schedOther = 0
	schedFIFO  = 1
)

// Real-time priorities for the two highest tiers, matching the 99/97
// split a SCHED_FIFO-aware scheduler reserves for the most latency
// sensitive work; 1 (the lowest RT priority) would make the two tiers
// indistinguishable from each other and from an ordinary nice(-20) task.
const (
	rtPriorityHighest      = 97
	rtPriorityTimeCritical = 99
)

type schedParam struct {
	priority int32
}

var niceByPriority = map[Priority]int{
	PriorityBackground:   19,
	PriorityLowest:       10,
	PriorityBelowNormal:  5,
	PriorityNormal:       0,
	PriorityAboveNormal:  -5,
	PriorityHighest:      -10,
	PriorityTimeCritical: -20,
}

func setPriorityPlatform(p Priority) error {
	if p == PriorityHighest || p == PriorityTimeCritical {
		prio := rtPriorityHighest
		if p == PriorityTimeCritical {
			prio = rtPriorityTimeCritical
		}
		if err := setSchedFIFO(prio); err == nil {
			return nil
		}
		// Fall through to the nice-based approximation below: the
		// caller asked for a real-time class it isn't permitted to
		// use, not for an error.
	}

	nice, ok := niceByPriority[p]
	if !ok {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetCurrentThreadPriority", "unknown priority value")
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, nice); err != nil {
		return gdterrors.Wrap(gdterrors.KindSystemCall, "setpriority", err)
	}
	return nil
}

func setSchedFIFO(priority int) error {
	param := schedParam{priority: int32(priority)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, uintptr(schedFIFO), uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		return gdterrors.Wrap(gdterrors.KindSystemCall, "sched_setscheduler", errno).WithNativeCode(int(errno))
	}
	return nil
}
