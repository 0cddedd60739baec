package analyze

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Luminance weights from ITU-R BT.601, matching how the channels contribute
// to perceived brightness.
const (
	redWeight   = 0.299
	greenWeight = 0.587
	blueWeight  = 0.114
)

type comparator struct {
	config Config
}

func newComparator(config Config) *comparator {
	return &comparator{config: config}
}

// compare classifies every pixel pair into the tri-state mask and returns the
// significant and antialias counts. The stage has no cross-pixel state beyond
// read-only neighbor lookups, so it runs in parallel row bands.
func (c *comparator) compare(expected *PixelBuffer, actual *PixelBuffer) (*DiffMask, int, int) {
	width := expected.Width
	height := expected.Height
	mask := newDiffMask(width, height)

	var significantCount int64
	var antiAliasCount int64

	// Use GOMAXPROCS instead of runtime.NumCPU() to consider cgroup.
	// https://tip.golang.org/doc/go1.25#container-aware-gomaxprocs
	numWorkers := runtime.GOMAXPROCS(0)
	rowsPerWorker := height / numWorkers

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := 0; i < numWorkers; i++ {
		startY := i * rowsPerWorker
		endY := startY + rowsPerWorker
		if i == numWorkers-1 {
			endY = height
		}

		go func(startY int, endY int) {
			defer wg.Done()
			c.processRows(expected, actual, mask, startY, endY, &significantCount, &antiAliasCount)
		}(startY, endY)
	}

	wg.Wait()

	return mask, int(significantCount), int(antiAliasCount)
}

func (c *comparator) processRows(expected *PixelBuffer, actual *PixelBuffer, mask *DiffMask, startY int, endY int, significantCount *int64, antiAliasCount *int64) {
	var localSignificant int64
	var localAntiAlias int64

	width := expected.Width
	for y := startY; y < endY; y++ {
		for x := 0; x < width; x++ {
			index := y*width + x
			delta := channelDelta(expected.colorAt(index), actual.colorAt(index))
			if delta <= c.config.Threshold {
				continue
			}

			if !c.config.IncludeAntiAliasing && c.isAntiAliased(expected, actual, x, y) {
				mask.States[index] = PixelAntiAlias
				localAntiAlias++
				continue
			}

			mask.States[index] = PixelSignificant
			localSignificant++
		}
	}

	atomic.AddInt64(significantCount, localSignificant)
	atomic.AddInt64(antiAliasCount, localAntiAlias)
}

// isAntiAliased attributes a differing pixel to sub-pixel antialiasing when a
// neighbor of each buffer already carries the other buffer's color, i.e. the
// difference looks like an edge shifted by less than a pixel.
func (c *comparator) isAntiAliased(expected *PixelBuffer, actual *PixelBuffer, x int, y int) bool {
	tolerance := c.config.Threshold * (1 + c.config.Alpha)
	expectedColor := expected.At(x, y)
	actualColor := actual.At(x, y)

	neighborMatchesActual := false
	neighborMatchesExpected := false

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			ny := y + dy
			if nx < 0 || nx >= expected.Width || ny < 0 || ny >= expected.Height {
				continue
			}

			if !neighborMatchesActual && channelDelta(expected.At(nx, ny), actualColor) <= tolerance {
				neighborMatchesActual = true
			}
			if !neighborMatchesExpected && channelDelta(actual.At(nx, ny), expectedColor) <= tolerance {
				neighborMatchesExpected = true
			}
			if neighborMatchesActual && neighborMatchesExpected {
				return true
			}
		}
	}

	return false
}

// channelDelta is the weighted per-channel difference normalized to [0,1].
// The alpha channel is compared unweighted and dominates when larger.
func channelDelta(expected Color, actual Color) float64 {
	dr := float64(absDiff(expected.R, actual.R))
	dg := float64(absDiff(expected.G, actual.G))
	db := float64(absDiff(expected.B, actual.B))

	delta := (redWeight*dr + greenWeight*dg + blueWeight*db) / 255.0

	if da := float64(absDiff(expected.A, actual.A)) / 255.0; da > delta {
		delta = da
	}

	return delta
}

func absDiff(a uint8, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
