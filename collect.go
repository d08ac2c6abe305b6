package speedup

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Mode int

const (
	ModeSoftware Mode = iota
	ModeHardware
)

func (m Mode) String() string {
	if m == ModeHardware {
		return "hw"
	}
	return "sw"
}

// ParseMode maps the filename token to a Mode. The token is
// case-sensitive: anything other than "sw" or "hw" is rejected.
func ParseMode(token string) (Mode, bool) {
	switch token {
	case "sw":
		return ModeSoftware, true
	case "hw":
		return ModeHardware, true
	}
	return 0, false
}

// Times holds the run times recorded for one cache size. The presence
// flags make the software-only and hardware-only states explicit.
type Times struct {
	Software    float64
	Hardware    float64
	HasSoftware bool
	HasHardware bool
}

func (t Times) Complete() bool {
	return t.HasSoftware && t.HasHardware
}

// Delta is the software run time minus the hardware run time. Positive
// means the hardware-accelerated run finished faster.
func (t Times) Delta() float64 {
	return t.Software - t.Hardware
}

type ExperimentTable map[int64]Times

// Insert records the run time for one (cache size, mode) cell. A later
// insert for the same cell overwrites the earlier value.
func (t ExperimentTable) Insert(cacheSize int64, mode Mode, seconds float64) {
	times := t[cacheSize]
	switch mode {
	case ModeSoftware:
		times.Software = seconds
		times.HasSoftware = true
	case ModeHardware:
		times.Hardware = seconds
		times.HasHardware = true
	}
	t[cacheSize] = times
}

// Collect scans the results directory and builds the experiment table.
// Entries that do not match the filename pattern, cannot be read, or do
// not contain the mixgraph run time line are logged and skipped; no
// single file can abort the scan.
func (a *Analyzer) Collect() (ExperimentTable, error) {
	entries, err := os.ReadDir(a.resultsDir)
	if err != nil {
		return nil, err
	}
	table := ExperimentTable{}
	for _, entry := range entries {
		name := entry.Name()
		match := a.fileNamePattern.FindStringSubmatch(name)
		if match == nil {
			a.LogFStdOut("Skipping unrecognized file format: %s\n", name)
			continue
		}
		cacheSize, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			a.LogFStdOut("Skipping %s: bad cache size %q: %v\n", name, match[1], err)
			continue
		}
		mode, ok := ParseMode(match[2])
		if !ok {
			a.LogFStdOut("Skipping %s: unknown mode %q\n", name, match[2])
			continue
		}
		content, err := os.ReadFile(filepath.Join(a.resultsDir, name))
		if err != nil {
			a.LogFStdOut("Error reading file %s: %v\n", name, err)
			continue
		}
		timeMatch := a.runTimePattern.FindSubmatch(content)
		if timeMatch == nil {
			a.LogFStdOut("Could not find mixgraph run time in file: %s\n", name)
			continue
		}
		seconds, err := strconv.ParseFloat(string(timeMatch[1]), 64)
		if err != nil {
			a.LogFStdOut("Skipping %s: bad run time %q: %v\n", name, timeMatch[1], err)
			continue
		}
		table.Insert(cacheSize, mode, seconds)
		a.LogFStdOut("Parsed %s run time for cache size %d bytes: %g seconds\n",
			strings.ToUpper(mode.String()), cacheSize, seconds)
	}
	return table, nil
}
