package render

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// bandPanic carries a panic out of a band goroutine so it can be raised
// again on the goroutine that called Draw.
type bandPanic struct {
	value any
}

func (p *bandPanic) Error() string {
	return fmt.Sprint(p.value)
}

// rasterizeBands draws the queued triangles with one goroutine per
// horizontal band and returns the number of pixels written.
//
// Each band walks the whole queue in submission order but only touches its
// own rows, so every pixel is written by one goroutine in the same order the
// sequential path would use. The outer bands are open-ended so off-screen
// rows still reach the sink, and a panic in the sink is raised again on the
// calling goroutine.
func (p *Pipeline[In, VSOut, GSOut]) rasterizeBands(queue []Triangle[GSOut]) int {
	if len(queue) == 0 {
		return 0
	}

	bands := min(p.bands, max(p.height, 1))
	rows := (p.height + bands - 1) / bands
	counts := make([]int, bands)

	var g errgroup.Group
	for i := range bands {
		s := newScanliner(p.effect.PixelShader, p.sink)
		if i > 0 {
			s.minY = i * rows
		}
		if i < bands-1 {
			s.maxY = (i + 1) * rows
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &bandPanic{value: r}
				}
			}()
			for _, tri := range queue {
				s.triangle(tri.V0, tri.V1, tri.V2)
			}
			counts[i] = s.pixels
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if bp, ok := err.(*bandPanic); ok {
			panic(bp.value)
		}
		panic(err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

