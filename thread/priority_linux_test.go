//go:build linux

// File: thread/priority_linux_test.go
// Author: momentics <momentics@gmail.com>

package thread

import "testing"

func TestRealtimePrioritiesAreHighAndDistinct(t *testing.T) {
	if rtPriorityHighest <= 1 {
		t.Fatalf("rtPriorityHighest = %d, want a high real-time priority, not the lowest legal value", rtPriorityHighest)
	}
	if rtPriorityTimeCritical <= rtPriorityHighest {
		t.Fatalf("rtPriorityTimeCritical (%d) must exceed rtPriorityHighest (%d)", rtPriorityTimeCritical, rtPriorityHighest)
	}
}
