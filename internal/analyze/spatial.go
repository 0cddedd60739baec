package analyze

// spatialTagger labels coordinates into coarse layout zones with two purely
// geometric heuristics: a margin band around the edges is border, a centered
// band is assumed to hold text, everything else is content. This is a
// best-effort approximation with no layout or text-detection introspection.
type spatialTagger struct {
	width  int
	height int
	rules  Ruleset
}

func newSpatialTagger(width int, height int, rules Ruleset) *spatialTagger {
	return &spatialTagger{
		width:  width,
		height: height,
		rules:  rules,
	}
}

func (s *spatialTagger) zoneAt(x int, y int) Zone {
	minSide := s.width
	if s.height < minSide {
		minSide = s.height
	}
	margin := int(s.rules.BorderMarginRatio * float64(minSide))

	if x < margin || y < margin || x >= s.width-margin || y >= s.height-margin {
		return ZoneBorder
	}

	bandWidth := s.rules.TextBandWidthRatio * float64(s.width)
	bandHeight := s.rules.TextBandHeightRatio * float64(s.height)
	dx := float64(x) - float64(s.width)/2
	dy := float64(y) - float64(s.height)/2
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx <= bandWidth/2 && dy <= bandHeight/2 {
		return ZoneText
	}

	return ZoneContent
}

// zoneOf tags a region by the center of its bounding box.
func (s *spatialTagger) zoneOf(region *Region) Zone {
	centerX := region.Bounds.X + region.Bounds.Width/2
	centerY := region.Bounds.Y + region.Bounds.Height/2
	return s.zoneAt(centerX, centerY)
}
