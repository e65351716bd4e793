//go:build linux

// File: thread/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux affinity via sched_setaffinity, through golang.org/x/sys/unix's
// CPUSet/SchedSetaffinity wrappers -- no cgo, unlike affinity_linux.go
// in the teacher repo, which reaches for pthread_setaffinity_np through
// a cgo shim because it only ever pins to a single core. Pinning to an
// arbitrary mask is a native, no-cgo syscall on Linux.

package thread

import (
	"golang.org/x/sys/unix"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

func setAffinityPlatform(m mask.AffinityMask) error {
	if m.IsEmpty() {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetAffinity", "mask is empty")
	}

	var set unix.CPUSet
	set.Zero()
	for _, id := range m.Iter() {
		set.Set(id)
	}

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return gdterrors.Wrap(gdterrors.KindSystemCall, "sched_setaffinity", err)
	}
	return nil
}
