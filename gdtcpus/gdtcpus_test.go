// File: gdtcpus/gdtcpus_test.go
// Author: momentics <momentics@gmail.com>

package gdtcpus

import (
	"errors"
	"sync"
	"testing"

	"github.com/WildPixelGames/gdt-cpus/detect"
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

func resetDetectionState(t *testing.T, fn func() (*topology.CPU, error)) {
	t.Helper()
	once = sync.Once{}
	cpu = nil
	detectErr = nil
	detectFn = fn
	t.Cleanup(func() {
		once = sync.Once{}
		cpu = nil
		detectErr = nil
		detectFn = detect.Detect
	})
}

func fakeHybridCPU(t *testing.T) *topology.CPU {
	t.Helper()
	sockets := []topology.SocketInfo{
		{
			SocketID: 0,
			Cores: []topology.CoreInfo{
				{CoreID: 0, Kind: topology.Performance, LogicalProcessorIDs: []int{0, 1}},
				{CoreID: 1, Kind: topology.Performance, LogicalProcessorIDs: []int{2, 3}},
				{CoreID: 2, Kind: topology.Efficiency, LogicalProcessorIDs: []int{4}},
				{CoreID: 3, Kind: topology.Efficiency, LogicalProcessorIDs: []int{5}},
			},
		},
	}
	c, err := topology.New("GenuineIntel", "Test CPU", sockets, 0)
	if err != nil {
		t.Fatalf("topology.New: %v", err)
	}
	return c
}

func TestCPUInfoCachesAcrossCalls(t *testing.T) {
	calls := 0
	want := fakeHybridCPU(t)
	resetDetectionState(t, func() (*topology.CPU, error) {
		calls++
		return want, nil
	})

	for i := 0; i < 3; i++ {
		got, err := CPUInfo()
		if err != nil {
			t.Fatalf("CPUInfo() error = %v", err)
		}
		if got != want {
			t.Fatalf("CPUInfo() returned a different pointer on call %d", i)
		}
	}
	if calls != 1 {
		t.Fatalf("detectFn called %d times, want 1", calls)
	}
}

func TestCPUInfoCachesDetectionError(t *testing.T) {
	wantErr := gdterrors.New(gdterrors.KindDetectionFailed, "test", "boom")
	calls := 0
	resetDetectionState(t, func() (*topology.CPU, error) {
		calls++
		return nil, wantErr
	})

	_, err1 := CPUInfo()
	_, err2 := CPUInfo()
	if !errors.Is(err1, gdterrors.DetectionFailed) || !errors.Is(err2, gdterrors.DetectionFailed) {
		t.Fatalf("expected cached DetectionFailed error, got %v / %v", err1, err2)
	}
	if calls != 1 {
		t.Fatalf("detectFn called %d times, want 1", calls)
	}
}

func TestAccessorsReflectHybridTopology(t *testing.T) {
	resetDetectionState(t, func() (*topology.CPU, error) { return fakeHybridCPU(t), nil })

	if !IsHybrid() {
		t.Error("IsHybrid() = false, want true")
	}
	if got := NumPerformanceCores(); got != 2 {
		t.Errorf("NumPerformanceCores() = %d, want 2", got)
	}
	if got := NumEfficiencyCores(); got != 2 {
		t.Errorf("NumEfficiencyCores() = %d, want 2", got)
	}
	if got := NumPhysicalCores(); got != 4 {
		t.Errorf("NumPhysicalCores() = %d, want 4", got)
	}
	if got := NumLogicalCores(); got != 6 {
		t.Errorf("NumLogicalCores() = %d, want 6", got)
	}
}

func TestAllLogicalProcessorsCoversEveryID(t *testing.T) {
	resetDetectionState(t, func() (*topology.CPU, error) { return fakeHybridCPU(t), nil })

	want := mask.FromIndices(0, 1, 2, 3, 4, 5)
	if got := AllLogicalProcessors(); !got.Equal(want) {
		t.Errorf("AllLogicalProcessors() = %v, want %v", got, want)
	}
}

func TestPerformanceAffinityMaskExcludesEfficiencyCores(t *testing.T) {
	resetDetectionState(t, func() (*topology.CPU, error) { return fakeHybridCPU(t), nil })

	want := mask.FromIndices(0, 1, 2, 3)
	if got := PerformanceAffinityMask(); !got.Equal(want) {
		t.Errorf("PerformanceAffinityMask() = %v, want %v", got, want)
	}
}

func TestAccessorsReturnZeroValueOnDetectionFailure(t *testing.T) {
	resetDetectionState(t, func() (*topology.CPU, error) {
		return nil, gdterrors.New(gdterrors.KindDetectionFailed, "test", "boom")
	})

	if NumPhysicalCores() != 0 || NumLogicalCores() != 0 || NumPerformanceCores() != 0 || NumEfficiencyCores() != 0 {
		t.Error("accessors did not return zero values after a failed detection")
	}
	if IsHybrid() {
		t.Error("IsHybrid() = true after a failed detection")
	}
	if PerformanceCoreIDs() != nil || EfficiencyCoreIDs() != nil {
		t.Error("core id accessors did not return nil after a failed detection")
	}
}
