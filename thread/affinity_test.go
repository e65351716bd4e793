// File: thread/affinity_test.go
// Author: momentics <momentics@gmail.com>

package thread

import (
	"errors"
	"sync"
	"testing"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

// withFixtureUniverse swaps onlineUniverse's backing detector for one that
// returns the given topology and error (the tests below pass a two-CPU
// topology, the shape of a 2-CPU cgroup), and restores the real memoized
// state afterward.
func withFixtureUniverse(t *testing.T, cpu *topology.CPU, err error) {
	t.Helper()
	universeOnce = sync.Once{}
	universe = nil
	universeErr = nil
	universeDetectFn = func() (*topology.CPU, error) { return cpu, err }
	t.Cleanup(func() {
		universeOnce = sync.Once{}
		universe = nil
		universeErr = nil
		universeDetectFn = universeDetectFnOriginal
	})
}

var universeDetectFnOriginal = universeDetectFn

func twoCPUFixture(t *testing.T) *topology.CPU {
	t.Helper()
	sockets := []topology.SocketInfo{
		{SocketID: 0, Cores: []topology.CoreInfo{
			{CoreID: 0, Kind: topology.Performance, LogicalProcessorIDs: []int{0}},
			{CoreID: 1, Kind: topology.Performance, LogicalProcessorIDs: []int{1}},
		}},
	}
	cpu, err := topology.New("GenuineIntel", "Test CPU", sockets, 0)
	if err != nil {
		t.Fatalf("topology.New: %v", err)
	}
	return cpu
}

func TestSetAffinityRejectsEmptyMask(t *testing.T) {
	if err := SetAffinity(mask.New()); err == nil {
		t.Fatal("expected an error pinning to an empty mask, got nil")
	}
}

func TestSetAffinityRejectsOfflineProcessor(t *testing.T) {
	withFixtureUniverse(t, twoCPUFixture(t), nil)

	err := SetAffinity(mask.FromIndex(2))
	if err == nil {
		t.Fatal("SetAffinity(mask={2}) on a 2-CPU topology: want InvalidInput, got nil")
	}
	if !errors.Is(err, gdterrors.InvalidInput) {
		t.Fatalf("SetAffinity(mask={2}) error = %v, want KindInvalidInput", err)
	}
}

func TestSetAffinityAcceptsOnlineProcessor(t *testing.T) {
	withFixtureUniverse(t, twoCPUFixture(t), nil)

	err := SetAffinity(mask.FromIndex(1))
	if err != nil && errors.Is(err, gdterrors.InvalidInput) {
		t.Fatalf("SetAffinity(mask={1}) on a 2-CPU topology rejected a valid id: %v", err)
	}
}

func TestPinToLogicalProcessorBuildsSingletonMask(t *testing.T) {
	// PinToLogicalProcessor must not itself reject a well-formed
	// request; whether the underlying syscall succeeds depends on the
	// host this runs on and is not asserted here.
	err := PinToLogicalProcessor(0)
	if err != nil {
		t.Logf("PinToLogicalProcessor(0) returned %v (host-dependent)", err)
	}
}
