//go:build windows

// File: thread/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows affinity via SetThreadGroupAffinity, declared the same way
// affinity_windows.go in the teacher repo declares kernel32 entry
// points. A Windows thread can only run within a single processor
// group at a time, so a mask spanning more than one 64-bit word (more
// than one group) is rejected rather than silently truncated.

package thread

import (
	"syscall"
	"unsafe"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

type groupAffinityWin struct {
	mask     uint64
	group    uint16
	reserved [3]uint16
}

var (
	modkernel32affinity         = syscall.NewLazyDLL("kernel32.dll")
	procSetThreadGroupAffinity  = modkernel32affinity.NewProc("SetThreadGroupAffinity")
	procGetCurrentThreadForAff  = modkernel32affinity.NewProc("GetCurrentThread")
)

func setAffinityPlatform(m mask.AffinityMask) error {
	if m.IsEmpty() {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetAffinity", "mask is empty")
	}
	words := m.Words()
	group := -1
	for i, w := range words {
		if w != 0 {
			if group != -1 {
				return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetAffinity",
					"mask spans more than one processor group; Windows threads may run in only one group")
			}
			group = i
		}
	}
	if group == -1 {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetAffinity", "mask is empty")
	}

	ga := groupAffinityWin{mask: words[group], group: uint16(group)}
	hThread, _, _ := procGetCurrentThreadForAff.Call()
	ret, _, err := procSetThreadGroupAffinity.Call(hThread, uintptr(unsafe.Pointer(&ga)), 0)
	if ret == 0 {
		return gdterrors.Wrap(gdterrors.KindSystemCall, "SetThreadGroupAffinity", err)
	}
	return nil
}
