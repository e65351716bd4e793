//go:build darwin && amd64 && !cgo

// File: thread/affinity_darwin_amd64_nocgo.go
// Author: momentics <momentics@gmail.com>
//
// Without cgo there is no way to reach thread_policy_set, so affinity
// hints are unavailable rather than silently ignored.

package thread

import (
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

func setAffinityPlatform(_ mask.AffinityMask) error {
	return gdterrors.New(gdterrors.KindUnsupported, "thread.SetAffinity", "thread affinity requires cgo on darwin/amd64")
}
