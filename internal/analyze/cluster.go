package analyze

type clusterer struct {
	minRegionSize int
}

func newClusterer(minRegionSize int) *clusterer {
	return &clusterer{minRegionSize: minRegionSize}
}

// extract finds the 4-connected components of significant-diff pixels and
// returns them as candidate regions in scan order. Components smaller than
// minRegionSize are dropped as noise. Every significant pixel is visited
// exactly once; the visited set lives only for this call.
func (c *clusterer) extract(mask *DiffMask) []Region {
	width := mask.Width
	height := mask.Height
	visited := make([]bool, width*height)

	var regions []Region
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			index := y*width + x
			if mask.States[index] != PixelSignificant || visited[index] {
				continue
			}

			region := c.fill(mask, visited, x, y)
			if region.PixelCount >= c.minRegionSize {
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// fill flood-fills one component with an explicit stack. Contiguous diff
// areas can span the whole image, so recursion is off the table.
func (c *clusterer) fill(mask *DiffMask, visited []bool, startX int, startY int) Region {
	width := mask.Width
	height := mask.Height

	minX := startX
	minY := startY
	maxX := startX
	maxY := startY

	start := startY*width + startX
	visited[start] = true
	stack := []int{start}
	var pixels []int

	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pixels = append(pixels, index)

		x := index % width
		y := index / width

		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}

		if x > 0 {
			stack = c.push(mask, visited, index-1, stack)
		}
		if x < width-1 {
			stack = c.push(mask, visited, index+1, stack)
		}
		if y > 0 {
			stack = c.push(mask, visited, index-width, stack)
		}
		if y < height-1 {
			stack = c.push(mask, visited, index+width, stack)
		}
	}

	return Region{
		Bounds: Rectangle{
			X:      minX,
			Y:      minY,
			Width:  maxX - minX + 1,
			Height: maxY - minY + 1,
		},
		PixelCount: len(pixels),
		pixels:     pixels,
	}
}

func (c *clusterer) push(mask *DiffMask, visited []bool, index int, stack []int) []int {
	if mask.States[index] == PixelSignificant && !visited[index] {
		visited[index] = true
		stack = append(stack, index)
	}
	return stack
}
