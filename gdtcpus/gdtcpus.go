// File: gdtcpus/gdtcpus.go
// Author: momentics <momentics@gmail.com>
//
// Root facade. Detection runs exactly once, guarded by sync.Once, and
// the resulting *topology.CPU (or detection error) is cached for the
// life of the process -- host topology does not change at runtime.
// detectFn is a narrow test seam, the same role the teacher's
// control.ConfigStore plays for its single mutable knob: swappable only
// from _test.go files in this package, never exported.

package gdtcpus

import (
	"sync"

	"github.com/WildPixelGames/gdt-cpus/detect"
	"github.com/WildPixelGames/gdt-cpus/mask"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

var detectFn = detect.Detect

var (
	once     sync.Once
	cpu      *topology.CPU
	detectErr error
)

func ensureDetected() {
	once.Do(func() {
		cpu, detectErr = detectFn()
	})
}

// CPUInfo returns the detected host topology, performing detection on
// first call and caching the result for every call thereafter.
func CPUInfo() (*topology.CPU, error) {
	ensureDetected()
	return cpu, detectErr
}

// NumPhysicalCores returns the total physical core count, or 0 if
// detection failed.
func NumPhysicalCores() int {
	c, err := CPUInfo()
	if err != nil {
		return 0
	}
	return c.TotalPhysicalCores
}

// NumLogicalCores returns the total logical processor count, or 0 if
// detection failed.
func NumLogicalCores() int {
	c, err := CPUInfo()
	if err != nil {
		return 0
	}
	return c.TotalLogicalProcessors
}

// NumPerformanceCores returns the total Performance-class core count.
// On a non-hybrid host this equals NumPhysicalCores.
func NumPerformanceCores() int {
	c, err := CPUInfo()
	if err != nil {
		return 0
	}
	return c.TotalPerformanceCores
}

// NumEfficiencyCores returns the total Efficiency-class core count. On
// a non-hybrid host this is 0.
func NumEfficiencyCores() int {
	c, err := CPUInfo()
	if err != nil {
		return 0
	}
	return c.TotalEfficiencyCores
}

// IsHybrid reports whether the host exposes both Performance and
// Efficiency cores.
func IsHybrid() bool {
	c, err := CPUInfo()
	if err != nil {
		return false
	}
	return c.IsHybrid
}

// PerformanceCoreIDs returns the global core ids classified Performance
// (or every core id, on a non-hybrid host).
func PerformanceCoreIDs() []int {
	c, err := CPUInfo()
	if err != nil {
		return nil
	}
	return c.PerformanceCoreIDs()
}

// EfficiencyCoreIDs returns the global core ids classified Efficiency
// (empty on a non-hybrid host).
func EfficiencyCoreIDs() []int {
	c, err := CPUInfo()
	if err != nil {
		return nil
	}
	return c.EfficiencyCoreIDs()
}

// AllLogicalProcessors returns a mask covering every logical processor
// reported by the detected topology, or an empty mask if detection failed.
func AllLogicalProcessors() mask.AffinityMask {
	c, err := CPUInfo()
	if err != nil {
		return mask.New()
	}
	m := mask.New()
	for si := range c.Sockets {
		for ci := range c.Sockets[si].Cores {
			for _, lp := range c.Sockets[si].Cores[ci].LogicalProcessorIDs {
				m.Insert(lp)
			}
		}
	}
	return m
}

// PerformanceAffinityMask returns a mask covering every logical processor
// of every Performance-class core. It is built by starting from every
// logical processor and removing the Efficiency-core ones, so a caller
// can steer latency-sensitive work away from E-cores on a hybrid host.
func PerformanceAffinityMask() mask.AffinityMask {
	c, err := CPUInfo()
	if err != nil {
		return mask.New()
	}
	m := AllLogicalProcessors()
	for _, coreID := range c.EfficiencyCoreIDs() {
		ids, ok := c.LogicalProcessorIDsForCore(coreID)
		if !ok {
			continue
		}
		for _, id := range ids {
			m.Remove(id)
		}
	}
	return m
}
