//go:build darwin && arm64

// File: thread/affinity_darwin_arm64.go
// Author: momentics <momentics@gmail.com>
//
// Apple Silicon exposes no thread-affinity API at all, even an
// advisory one; the kernel scheduler balances P/E cores on its own.

package thread

import (
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

func setAffinityPlatform(_ mask.AffinityMask) error {
	return gdterrors.New(gdterrors.KindUnsupported, "thread.SetAffinity", "thread affinity is not available on Apple Silicon")
}
