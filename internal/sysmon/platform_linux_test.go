//go:build linux

package sysmon

import "testing"

func TestParseMeminfo(t *testing.T) {
	sample := `MemTotal:       16000000 kB
MemFree:         2000000 kB
MemAvailable:    4000000 kB
Buffers:          500000 kB
`
	pct, ok := parseMeminfo(sample)
	if !ok {
		t.Fatal("well-formed meminfo must parse")
	}
	if pct != 75.0 {
		t.Fatalf("utilization = %.1f, want 75.0", pct)
	}
}

func TestParseMeminfoRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"MemTotal: abc kB\nMemAvailable: 1 kB\n",
		"MemTotal: 0 kB\nMemAvailable: 0 kB\n",
		"MemTotal: 100 kB\nMemAvailable: 200 kB\n",
	}
	for _, in := range cases {
		if _, ok := parseMeminfo(in); ok {
			t.Fatalf("parseMeminfo(%q) should not parse", in)
		}
	}
}

func TestHostMemoryPercentInRange(t *testing.T) {
	pct, ok := hostMemoryPercent()
	if !ok {
		t.Skip("/proc/meminfo unavailable")
	}
	if pct <= 0 || pct >= 100 {
		t.Fatalf("host memory utilization = %.1f, want (0,100)", pct)
	}
}
