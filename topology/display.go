// File: topology/display.go
// Author: momentics <momentics@gmail.com>
//
// Display renders the stable pretty-text form of section 6 of the
// specification, used verbatim in tests: vendor, model name, the four
// totals, hybrid-yes/no, then per-socket headings, socket-level cache,
// core lines, per-core caches, and a final feature line.

package topology

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders the stable, human-readable topology report.
func (c *CPU) Display() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vendor: %s\n", c.Vendor)
	fmt.Fprintf(&b, "Model: %s\n", c.ModelName)
	fmt.Fprintf(&b, "Total Physical Cores: %d\n", c.TotalPhysicalCores)
	fmt.Fprintf(&b, "Total Logical Processors: %d\n", c.TotalLogicalProcessors)
	fmt.Fprintf(&b, "Total Performance Cores: %d\n", c.TotalPerformanceCores)
	fmt.Fprintf(&b, "Total Efficiency Cores: %d\n", c.TotalEfficiencyCores)
	fmt.Fprintf(&b, "Hybrid: %s\n", yesNo(c.IsHybrid))

	for si := range c.Sockets {
		sock := &c.Sockets[si]
		fmt.Fprintf(&b, "\nProcessor #%d (Socket ID: %d)\n", si, sock.SocketID)
		if kb, ok := sock.L3.SizeKB(); ok {
			fmt.Fprintf(&b, "  L3 Cache: %s KB\n", strconv.FormatUint(kb, 10))
		}
		for ci := range sock.Cores {
			core := &sock.Cores[ci]
			fmt.Fprintf(&b, "  Core #%d: %s core with %d threads\n", core.CoreID, core.Kind, len(core.LogicalProcessorIDs))
			if kb, ok := core.L1Instruction.SizeKB(); ok {
				fmt.Fprintf(&b, "    L1i Cache: %s KB\n", strconv.FormatUint(kb, 10))
			}
			if kb, ok := core.L1Data.SizeKB(); ok {
				fmt.Fprintf(&b, "    L1d Cache: %s KB\n", strconv.FormatUint(kb, 10))
			}
			if kb, ok := core.L2.SizeKB(); ok {
				fmt.Fprintf(&b, "    L2 Cache: %s KB\n", strconv.FormatUint(kb, 10))
			}
		}
	}

	b.WriteString("\nCPU Features: ")
	b.WriteString(strings.Join(c.Features.Strings(), ", "))
	b.WriteString("\n")

	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
