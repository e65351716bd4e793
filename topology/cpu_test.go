package topology

import (
	"strings"
	"testing"
)

func ryzen5950x() []SocketInfo {
	cores := make([]CoreInfo, 16)
	for i := range cores {
		l1i := NewCacheInfo(1, CacheInstruction, 32*1024, 64)
		l1d := NewCacheInfo(1, CacheData, 32*1024, 64)
		l2 := NewCacheInfo(2, CacheUnified, 512*1024, 64)
		cores[i] = CoreInfo{
			CoreID:              i,
			Kind:                Performance,
			LogicalProcessorIDs: []int{i * 2, i*2 + 1},
			L1Instruction:       &l1i,
			L1Data:              &l1d,
			L2:                  &l2,
		}
	}
	l3 := NewCacheInfo(3, CacheUnified, 32*1024*1024, 64)
	return []SocketInfo{{SocketID: 0, Cores: cores, L3: &l3}}
}

func TestNewComputesTotals_Ryzen5950X(t *testing.T) {
	cpu, err := New("AuthenticAMD", "AMD Ryzen 9 5950X", ryzen5950x(), FeatureSet(0).Set(SSE).Set(SSE2).Set(AVX).Set(AVX2))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cpu.TotalPhysicalCores != 16 {
		t.Errorf("TotalPhysicalCores = %d, want 16", cpu.TotalPhysicalCores)
	}
	if cpu.TotalLogicalProcessors != 32 {
		t.Errorf("TotalLogicalProcessors = %d, want 32", cpu.TotalLogicalProcessors)
	}
	if cpu.TotalPerformanceCores != 16 || cpu.TotalEfficiencyCores != 0 {
		t.Errorf("perf=%d eff=%d, want 16/0", cpu.TotalPerformanceCores, cpu.TotalEfficiencyCores)
	}
	if cpu.IsHybrid {
		t.Error("non-hybrid host reported as hybrid")
	}
	core, ok := cpu.CoreByID(0, 3)
	if !ok || len(core.LogicalProcessorIDs) != 2 {
		t.Fatalf("CoreByID(0,3) = %+v, ok=%v", core, ok)
	}
	sid, cid, ok := cpu.LocateLogicalProcessor(7)
	if !ok || sid != 0 || cid != 3 {
		t.Fatalf("LocateLogicalProcessor(7) = (%d,%d,%v), want (0,3,true)", sid, cid, ok)
	}
}

func m3Max() []SocketInfo {
	var cores []CoreInfo
	for i := 0; i < 12; i++ {
		l1i := NewCacheInfo(1, CacheInstruction, 192*1024, 64)
		l1d := NewCacheInfo(1, CacheData, 128*1024, 64)
		l2 := NewCacheInfo(2, CacheUnified, 16384*1024, 128)
		cores = append(cores, CoreInfo{CoreID: i, Kind: Performance, LogicalProcessorIDs: []int{i}, L1Instruction: &l1i, L1Data: &l1d, L2: &l2})
	}
	for i := 12; i < 16; i++ {
		l1i := NewCacheInfo(1, CacheInstruction, 128*1024, 64)
		l1d := NewCacheInfo(1, CacheData, 64*1024, 64)
		l2 := NewCacheInfo(2, CacheUnified, 4096*1024, 128)
		cores = append(cores, CoreInfo{CoreID: i, Kind: Efficiency, LogicalProcessorIDs: []int{i}, L1Instruction: &l1i, L1Data: &l1d, L2: &l2})
	}
	return []SocketInfo{{SocketID: 0, Cores: cores}}
}

func TestNewComputesTotals_M3Max(t *testing.T) {
	cpu, err := New("Apple", "Apple M3 Max", m3Max(), FeatureSet(0).Set(NEON))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cpu.TotalPhysicalCores != 16 || cpu.TotalLogicalProcessors != 16 {
		t.Fatalf("physical=%d logical=%d, want 16/16", cpu.TotalPhysicalCores, cpu.TotalLogicalProcessors)
	}
	if cpu.TotalPerformanceCores != 12 || cpu.TotalEfficiencyCores != 4 {
		t.Fatalf("perf=%d eff=%d, want 12/4", cpu.TotalPerformanceCores, cpu.TotalEfficiencyCores)
	}
	if !cpu.IsHybrid {
		t.Error("hybrid host not reported as hybrid")
	}
	if got := cpu.PerformanceCoreIDs(); len(got) != 12 {
		t.Errorf("PerformanceCoreIDs() has %d entries, want 12", len(got))
	}
	if got := cpu.EfficiencyCoreIDs(); len(got) != 4 || got[0] != 12 {
		t.Errorf("EfficiencyCoreIDs() = %v, want [12,13,14,15]", got)
	}
}

func TestNewRejectsDuplicateLogicalProcessor(t *testing.T) {
	sockets := []SocketInfo{
		{SocketID: 0, Cores: []CoreInfo{
			{CoreID: 0, Kind: Performance, LogicalProcessorIDs: []int{0}},
			{CoreID: 1, Kind: Performance, LogicalProcessorIDs: []int{0}},
		}},
	}
	if _, err := New("Vendor", "Model", sockets, 0); err == nil {
		t.Fatal("expected error for duplicate logical processor id")
	}
}

func TestNewRejectsCoreWithNoLogicalProcessors(t *testing.T) {
	sockets := []SocketInfo{
		{SocketID: 0, Cores: []CoreInfo{{CoreID: 0, Kind: Performance}}},
	}
	if _, err := New("Vendor", "Model", sockets, 0); err == nil {
		t.Fatal("expected error for core with zero logical processors")
	}
}

func TestDisplayContainsExpectedSections(t *testing.T) {
	cpu, err := New("AuthenticAMD", "AMD Ryzen 9 5950X", ryzen5950x(), FeatureSet(0).Set(SSE2).Set(AVX2))
	if err != nil {
		t.Fatal(err)
	}
	out := cpu.Display()
	for _, want := range []string{
		"Vendor: AuthenticAMD",
		"Processor #0 (Socket ID: 0)",
		"Core #0: Performance core with 2 threads",
		"L1i Cache: 32 KB",
		"L3 Cache: 32768 KB",
		"CPU Features: SSE2, AVX2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Display() missing %q in:\n%s", want, out)
		}
	}
}

func TestFeatureSetAVX2ImpliesAVXAndSSE2(t *testing.T) {
	fs := FeatureSet(0).Set(SSE2).Set(AVX).Set(AVX2)
	if fs.Has(AVX2) && (!fs.Has(AVX) || !fs.Has(SSE2)) {
		t.Fatal("test fixture invalid")
	}
}
