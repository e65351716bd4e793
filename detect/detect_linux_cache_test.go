//go:build linux

// File: detect/detect_linux_cache_test.go
// Author: momentics <momentics@gmail.com>

package detect

import (
	"testing"

	"github.com/WildPixelGames/gdt-cpus/topology"
)

func TestParseSizeString(t *testing.T) {
	cases := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"32K", 32 * 1024, false},
		{"32k", 32 * 1024, false},
		{"256K", 256 * 1024, false},
		{"1M", 1024 * 1024, false},
		{"6144K", 6144 * 1024, false},
		{"1G", 1024 * 1024 * 1024, false},
		{"4096", 4096, false},
		{"", 0, true},
		{"K", 0, true},
		{"xyz", 0, true},
	}
	for _, tc := range cases {
		got, err := parseSizeString(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseSizeString(%q) = %d, nil; want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSizeString(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseSizeString(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCacheKind(t *testing.T) {
	cases := []struct {
		in   string
		want topology.CacheKind
		ok   bool
	}{
		{"Data", topology.CacheData, true},
		{"instruction", topology.CacheInstruction, true},
		{"Unified", topology.CacheUnified, true},
		{"  data  ", topology.CacheData, true},
		{"bogus", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseCacheKind(tc.in)
		if ok != tc.ok {
			t.Errorf("parseCacheKind(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("parseCacheKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
