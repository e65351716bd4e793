// File: cmd/gdt-cpus-info/main.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"fmt"
	"log"

	"github.com/WildPixelGames/gdt-cpus/gdtcpus"
)

func main() {
	cpu, err := gdtcpus.CPUInfo()
	if err != nil {
		log.Fatalf("cpu topology detection failed: %v", err)
	}
	fmt.Print(cpu.Display())
}
