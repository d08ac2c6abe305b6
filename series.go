package speedup

import (
	"fmt"
	"math"
	"sort"
)

const mebibyte = 1 << 20

type Scale int

const (
	ScaleLog2 Scale = iota
	ScaleLinear
)

type Point struct {
	X     float64
	Delta float64
}

type Tick struct {
	Value float64
	Label string
}

// CacheSizeLabel renders a byte count the way the chart labels its
// x-axis ticks: whole mebibytes for sizes of at least 1MiB, raw bytes
// below that.
func CacheSizeLabel(cacheSize int64) string {
	if cacheSize >= mebibyte {
		return fmt.Sprintf("%dMB", cacheSize/mebibyte)
	}
	return fmt.Sprintf("%dB", cacheSize)
}

// Series reduces the experiment table to the ordered delta series.
// Cache sizes missing either run are logged and left out. On the log2
// scale it also returns one tick per plotted cache size so the axis can
// show real sizes instead of exponents; on the linear scale ticks are
// nil and x is the cache size in mebibytes.
func (a *Analyzer) Series(table ExperimentTable) ([]Point, []Tick) {
	cacheSizes := make([]int64, 0, len(table))
	for cacheSize := range table {
		cacheSizes = append(cacheSizes, cacheSize)
	}
	sort.Slice(cacheSizes, func(i, j int) bool { return cacheSizes[i] < cacheSizes[j] })
	var points []Point
	var ticks []Tick
	for _, cacheSize := range cacheSizes {
		times := table[cacheSize]
		if !times.Complete() {
			side := "hw"
			if !times.HasSoftware {
				side = "sw"
			}
			a.LogFStdOut("Missing %s data for cache size %d bytes. Skipping.\n", side, cacheSize)
			continue
		}
		delta := times.Delta()
		var x float64
		switch a.scale {
		case ScaleLinear:
			x = float64(cacheSize) / mebibyte
		default:
			x = math.Log2(float64(cacheSize))
			ticks = append(ticks, Tick{Value: x, Label: CacheSizeLabel(cacheSize)})
		}
		points = append(points, Point{X: x, Delta: delta})
		a.LogFStdOut("Cache Size: %d bytes (%g MB) - SW Time: %gs, HW Time: %gs, Difference: %gs\n",
			cacheSize, float64(cacheSize)/mebibyte, times.Software, times.Hardware, delta)
	}
	return points, ticks
}
