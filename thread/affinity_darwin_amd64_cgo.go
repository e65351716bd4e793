//go:build darwin && amd64 && cgo

// File: thread/affinity_darwin_amd64_cgo.go
// Author: momentics <momentics@gmail.com>
//
// Intel Mac affinity is advisory only: thread_policy_set with
// THREAD_AFFINITY_POLICY groups threads that share a tag onto the same
// L2 cache where possible, it does not pin to a specific logical
// processor. This library exposes it as a best-effort hint keyed by the
// mask's lowest set bit, since that is the closest match to the
// semantics this package promises elsewhere.

package thread

/*
#include <mach/mach.h>
#include <mach/thread_policy.h>

static kern_return_t gdt_set_affinity_tag(int tag) {
	thread_affinity_policy_data_t policy;
	policy.affinity_tag = tag;
	return thread_policy_set(mach_thread_self(), THREAD_AFFINITY_POLICY,
		(thread_policy_t)&policy, THREAD_AFFINITY_POLICY_COUNT);
}
*/
import "C"

import (
	"github.com/WildPixelGames/gdt-cpus/gdterrors"
	"github.com/WildPixelGames/gdt-cpus/mask"
)

func setAffinityPlatform(m mask.AffinityMask) error {
	if m.IsEmpty() {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetAffinity", "mask is empty")
	}
	tag := m.Iter()[0]
	if ret := C.gdt_set_affinity_tag(C.int(tag)); ret != 0 {
		return gdterrors.New(gdterrors.KindSystemCall, "thread_policy_set", "THREAD_AFFINITY_POLICY request rejected")
	}
	return nil
}
