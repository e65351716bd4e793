// File: topology/cpu.go
// Author: momentics <momentics@gmail.com>
//
// CPU is the canonical, read-only topology model: sockets -> cores ->
// logical processors, plus caches and ISA feature flags. It is built once
// by a detect package implementation and never mutated afterward; all
// traversal is through value copies or the root's own indices, so readers
// never need a lock.

package topology

import (
	"fmt"
	"sort"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
)

// lpLocation is the reverse-index entry for one logical processor.
type lpLocation struct {
	SocketID int
	CoreID   int
}

// CPU is the topology root. Every field is frozen at construction time by
// New; nothing in this package mutates a *CPU after it is returned.
type CPU struct {
	Vendor    string
	ModelName string
	Sockets   []SocketInfo
	Features  FeatureSet

	TotalPhysicalCores     int
	TotalLogicalProcessors int
	TotalPerformanceCores  int
	TotalEfficiencyCores   int
	IsHybrid               bool

	// coreIndex and lpIndex give O(1) lookup by construction; both are
	// built once in New and never touched again.
	coreIndex map[[2]int]*CoreInfo
	lpIndex   map[int]lpLocation
}

// New validates sockets for the cross-model invariants in section 3 of the
// specification, computes the derived totals, builds the O(1) lookup
// indices, and returns the frozen topology root.
func New(vendor, modelName string, sockets []SocketInfo, features FeatureSet) (*CPU, error) {
	c := &CPU{
		Vendor:    vendor,
		ModelName: modelName,
		Sockets:   sockets,
		Features:  features,
		coreIndex: make(map[[2]int]*CoreInfo),
		lpIndex:   make(map[int]lpLocation),
	}

	seenLP := make(map[int]struct{})
	for si := range c.Sockets {
		sock := &c.Sockets[si]
		for ci := range sock.Cores {
			core := &sock.Cores[ci]
			if len(core.LogicalProcessorIDs) == 0 {
				return nil, gdterrors.New(gdterrors.KindDetectionFailed, "topology.New",
					fmt.Sprintf("socket %d core %d has no logical processors", sock.SocketID, core.CoreID))
			}
			for _, lp := range core.LogicalProcessorIDs {
				if _, dup := seenLP[lp]; dup {
					return nil, gdterrors.New(gdterrors.KindDetectionFailed, "topology.New",
						fmt.Sprintf("logical processor %d reported by more than one core", lp))
				}
				seenLP[lp] = struct{}{}
				c.lpIndex[lp] = lpLocation{SocketID: sock.SocketID, CoreID: core.CoreID}
			}
			c.coreIndex[[2]int{sock.SocketID, core.CoreID}] = core

			c.TotalPhysicalCores++
			c.TotalLogicalProcessors += len(core.LogicalProcessorIDs)
			switch core.Kind {
			case Performance, Unknown:
				c.TotalPerformanceCores++
			case Efficiency:
				c.TotalEfficiencyCores++
			}
		}
	}
	c.IsHybrid = c.TotalPerformanceCores > 0 && c.TotalEfficiencyCores > 0

	return c, nil
}

// CoreByID returns the core identified by (socketID, coreID) in O(1).
func (c *CPU) CoreByID(socketID, coreID int) (*CoreInfo, bool) {
	core, ok := c.coreIndex[[2]int{socketID, coreID}]
	return core, ok
}

// LocateLogicalProcessor returns the (socketID, coreID) owning logical
// processor lpID, for fast reverse lookup during affinity validation.
func (c *CPU) LocateLogicalProcessor(lpID int) (socketID, coreID int, ok bool) {
	loc, ok := c.lpIndex[lpID]
	return loc.SocketID, loc.CoreID, ok
}

// LogicalProcessorIDsForCore resolves a global core index (counting cores
// across all sockets in socket, then core order) to its logical processor
// ids. Used by thread.PinThreadToCore, whose public contract addresses
// cores by a single dense core_id per spec.md section 4.4.
func (c *CPU) LogicalProcessorIDsForCore(globalCoreID int) ([]int, bool) {
	n := 0
	for si := range c.Sockets {
		for ci := range c.Sockets[si].Cores {
			if n == globalCoreID {
				return c.Sockets[si].Cores[ci].LogicalProcessorIDs, true
			}
			n++
		}
	}
	return nil, false
}

// PerformanceCoreIDs returns the dense global core ids (see
// LogicalProcessorIDsForCore) of every performance-classified core, in
// ascending order. On a non-hybrid host every core is classified
// Performance, so this returns every core id.
func (c *CPU) PerformanceCoreIDs() []int {
	return c.coreIDsByKind(Performance, true)
}

// EfficiencyCoreIDs returns the dense global core ids of every
// efficiency-classified core, in ascending order.
func (c *CPU) EfficiencyCoreIDs() []int {
	return c.coreIDsByKind(Efficiency, false)
}

func (c *CPU) coreIDsByKind(kind CoreKind, includeUnknown bool) []int {
	var out []int
	n := 0
	for si := range c.Sockets {
		for ci := range c.Sockets[si].Cores {
			k := c.Sockets[si].Cores[ci].Kind
			if k == kind || (includeUnknown && k == Unknown) {
				out = append(out, n)
			}
			n++
		}
	}
	sort.Ints(out)
	return out
}
