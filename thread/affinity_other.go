//go:build !linux && !windows && !darwin

// File: thread/affinity_other.go
// Author: momentics <momentics@gmail.com>

package thread

import (
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

func setAffinityPlatform(_ mask.AffinityMask) error {
	return gdterrors.New(gdterrors.KindUnsupportedPlatform, "thread.SetAffinity", "not supported on this platform")
}
