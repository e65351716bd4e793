//go:build darwin && cgo

// File: thread/priority_darwin_cgo.go
// Author: momentics <momentics@gmail.com>
//
// macOS priority translation using pthread_setschedparam with the
// SCHED_RR policy for the two highest bands, and
// pthread_set_qos_class_self_np QoS hints for the rest. This is the one
// place this library reaches for cgo: neither API is exposed by
// golang.org/x/sys/unix on darwin.

package thread

/*
#include <pthread.h>
#include <sched.h>
#include <errno.h>

static int gdt_set_rt(int priority) {
	struct sched_param param;
	param.sched_priority = priority;
	return pthread_setschedparam(pthread_self(), SCHED_RR, &param);
}

static int gdt_set_qos(int qos_class) {
	return pthread_set_qos_class_self_np((qos_class_t)qos_class, 0);
}
*/
import "C"

import "github.com/WildPixelGames/gdt-cpus/gdterrors"

var qosByPriority = map[Priority]int{
	PriorityBackground:  qosBackground,
	PriorityLowest:      qosUtility,
	PriorityBelowNormal: qosUtility,
	PriorityNormal:      qosDefault,
	PriorityAboveNormal: qosUserInitiated,
}

const (
	qosBackground      = 0x09
	qosUtility         = 0x11
	qosDefault         = 0x15
	qosUserInitiated   = 0x19
	qosUserInteractive = 0x21
)

const rtPriorityHighest = 97
const rtPriorityTimeCritical = 99

func setPriorityPlatform(p Priority) error {
	if p == PriorityHighest || p == PriorityTimeCritical {
		prio := rtPriorityHighest
		if p == PriorityTimeCritical {
			prio = rtPriorityTimeCritical
		}
		if ret := C.gdt_set_rt(C.int(prio)); ret != 0 {
			return gdterrors.New(gdterrors.KindSystemCall, "pthread_setschedparam", "SCHED_RR request rejected, insufficient privilege")
		}
		return nil
	}

	qos, ok := qosByPriority[p]
	if !ok {
		return gdterrors.New(gdterrors.KindInvalidInput, "thread.SetCurrentThreadPriority", "unknown priority value")
	}
	if ret := C.gdt_set_qos(C.int(qos)); ret != 0 {
		return gdterrors.New(gdterrors.KindSystemCall, "pthread_set_qos_class_self_np", "QoS class request rejected")
	}
	return nil
}
