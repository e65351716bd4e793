//go:build windows

// File: detect/detect_windows_registry.go
// Author: momentics <momentics@gmail.com>
//
// Reads vendor/model strings from
// HARDWARE\DESCRIPTION\System\CentralProcessor\0, per section 4.3.1 of
// the specification, via golang.org/x/sys/windows/registry -- the
// official companion to the raw syscall.NewLazyDLL idiom the teacher
// repo uses for everything else on Windows.

package detect

import "golang.org/x/sys/windows/registry"

func readCentralProcessorRegistry() (vendor, modelName string) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DESCRIPTION\System\CentralProcessor\0`, registry.QUERY_VALUE)
	if err != nil {
		return "", ""
	}
	defer k.Close()

	vendor, _, _ = k.GetStringValue("VendorIdentifier")
	modelName, _, _ = k.GetStringValue("ProcessorNameString")
	return vendor, modelName
}
