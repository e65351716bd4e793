//go:build !linux && !windows && !darwin

// File: detect/detect_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms this library does not implement topology
// detection for.

package detect

import (
	"runtime"

	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/topology"
)

func platformDetect() (*topology.CPU, error) {
	return nil, gdterrors.New(gdterrors.KindUnsupportedPlatform, "detect.platformDetect",
		"no topology detector for GOOS="+runtime.GOOS+" GOARCH="+runtime.GOARCH)
}
