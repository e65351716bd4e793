//go:build linux

// File: detect/detect_linux_sysfs.go
// Author: momentics <momentics@gmail.com>
//
// Low-level /sys and /proc readers shared by the Linux detector.

package detect

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

// sysCPUDir is a var, not a const, so _test.go files in this package can
// redirect it at a fixture tree -- the same narrow test-seam idiom
// gdtcpus.go uses for detectFn.
var sysCPUDir = "/sys/devices/system/cpu"

func cpuDir(cpuID int) string {
	return filepath.Join(sysCPUDir, fmt.Sprintf("cpu%d", cpuID))
}

func cpuTopologyFile(cpuID int, name string) string {
	return filepath.Join(cpuDir(cpuID), "topology", name)
}

// readTrimmed reads a sysfs attribute file and returns its contents with
// surrounding whitespace removed.
func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// readIntFile reads a sysfs attribute file expected to hold a single
// decimal integer.
func readIntFile(path string) (int, error) {
	s, err := readTrimmed(path)
	if err != nil {
		return 0, gdterrors.ParseError(path, err)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, gdterrors.ParseError(path, err)
	}
	return n, nil
}

// readIntFileDefault is readIntFile with a fallback value for attributes
// that do not exist on every kernel/hardware combination (e.g. hybrid
// classification helpers).
func readIntFileDefault(path string, def int) int {
	n, err := readIntFile(path)
	if err != nil {
		return def
	}
	return n
}

// readRangeList parses the kernel's comma/range list format (e.g.
// "0-3,8,10-11"), identical to AffinityMask's Display form, into a sorted
// slice of ids.
func readRangeList(path string) ([]int, error) {
	s, err := readTrimmed(path)
	if err != nil {
		return nil, gdterrors.ParseError(path, err)
	}
	m, err := mask.Parse(s)
	if err != nil {
		return nil, gdterrors.ParseError(path, err)
	}
	return m.Iter(), nil
}

// onlineCPUs returns the set of logical processor ids visible to the
// current cgroup/namespace. Per section 4.3.2 of the specification, this
// enumeration -- not 0..runtime.NumCPU() -- is the universe for every
// subsequent detection and affinity operation, so that a container or
// cgroup-limited process never reports or targets a CPU it cannot use.
func onlineCPUs() ([]int, error) {
	return readRangeList(filepath.Join(sysCPUDir, "online"))
}

// readProcCPUInfo extracts the vendor and model-name strings from
// /proc/cpuinfo. Works for both x86 ("vendor_id"/"model name") and
// AArch64 ("CPU implementer"/"CPU part", mapped to a name) layouts.
func readProcCPUInfo() (vendor, modelName string) {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "", ""
	}
	defer f.Close()

	var implementer, part string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "vendor_id":
			if vendor == "" {
				vendor = val
			}
		case "model name":
			if modelName == "" {
				modelName = val
			}
		case "CPU implementer":
			if implementer == "" {
				implementer = val
			}
		case "CPU part":
			if part == "" {
				part = val
			}
		}
		if vendor != "" && modelName != "" {
			break
		}
	}

	if vendor == "" && implementer != "" {
		vendor = armImplementerName(implementer)
	}
	if modelName == "" && part != "" {
		modelName = fmt.Sprintf("%s (part %s)", vendor, part)
	}
	return vendor, modelName
}

// armImplementerName maps the handful of "CPU implementer" codes that show
// up in practice on AArch64 Linux hosts to a vendor name.
func armImplementerName(code string) string {
	switch strings.ToLower(code) {
	case "0x41":
		return "ARM"
	case "0x42":
		return "Broadcom"
	case "0x43":
		return "Cavium"
	case "0x46":
		return "Fujitsu"
	case "0x48":
		return "HiSilicon"
	case "0x4e":
		return "Nvidia"
	case "0x50":
		return "Ampere"
	case "0x51":
		return "Qualcomm"
	case "0x53":
		return "Samsung"
	case "0x56":
		return "Marvell"
	case "0x61":
		return "Apple"
	default:
		return "Unknown (" + code + ")"
	}
}
