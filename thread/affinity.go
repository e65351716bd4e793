// File: thread/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for pinning the calling OS thread to one or more
// logical processors. Mirrors the split the teacher repo uses in
// affinity/affinity.go, generalized from a single cpuID to a full mask
// so a caller can pin to every logical processor of a core (SMT
// siblings included) in one call.

package thread

import (
	"sync"

	"github.com/WildPixelGames/gdt-cpus/detect"
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

// universeDetectFn is a narrow test seam, the same role detectFn plays in
// gdtcpus.go: swappable only from _test.go files in this package.
var universeDetectFn = detect.Detect

var (
	universeOnce sync.Once
	universe     *topology.CPU
	universeErr  error
)

// onlineUniverse returns the topology this process can see -- exactly
// the online/cgroup-visible logical processors detect reports -- memoized
// for the life of the process like gdtcpus' own cache, but kept private
// to this package so thread has no dependency on the facade.
func onlineUniverse() (*topology.CPU, error) {
	universeOnce.Do(func() {
		universe, universeErr = universeDetectFn()
	})
	return universe, universeErr
}

// validateAgainstOnlineProcessors rejects a mask naming a logical
// processor id this process cannot see, so a caller pinning to an
// offline or cgroup-excluded CPU gets InvalidInput instead of reaching
// the OS call, which on Linux would otherwise surface as an opaque
// EINVAL (scenario: a 2-CPU cgroup asked to pin to logical processor 2).
func validateAgainstOnlineProcessors(m mask.AffinityMask) error {
	cpu, err := onlineUniverse()
	if err != nil {
		// Detection itself failed; let the platform syscall be the
		// final arbiter rather than blocking every affinity request.
		return nil
	}
	for _, id := range m.Iter() {
		if _, _, ok := cpu.LocateLogicalProcessor(id); !ok {
			return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetAffinity",
				"logical processor is not online or not visible to this process")
		}
	}
	return nil
}

// SetAffinity pins the calling OS thread to the logical processors named
// by m. Callers that need this applied to a specific goroutine must
// first call runtime.LockOSThread, since the OS thread a goroutine runs
// on can otherwise change between calls.
func SetAffinity(m mask.AffinityMask) error {
	if err := validateAgainstOnlineProcessors(m); err != nil {
		return err
	}
	return setAffinityPlatform(m)
}

// PinToLogicalProcessor is a convenience wrapper around SetAffinity for
// pinning to a single logical processor id.
func PinToLogicalProcessor(lpID int) error {
	return SetAffinity(mask.FromIndex(lpID))
}

// PinToCore pins the calling OS thread to every logical processor of the
// given core (its SMT siblings included, if any), as named by ids. ids
// need not already be sorted or deduplicated.
func PinToCore(ids []int) error {
	return SetAffinity(mask.FromIndices(mask.SortedIndices(ids)...))
}

// PinThreadToCore pins the calling OS thread to every logical processor
// of the core identified by globalCoreID, a dense index counting cores
// across every socket of cpu in order (topology.CPU.LogicalProcessorIDsForCore).
func PinThreadToCore(cpu *topology.CPU, globalCoreID int) error {
	ids, ok := cpu.LogicalProcessorIDsForCore(globalCoreID)
	if !ok {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.PinThreadToCore", "no such global core id")
	}
	return PinToCore(ids)
}
