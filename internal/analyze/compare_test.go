package analyze

import "testing"

func TestComparator_Compare(t *testing.T) {
	t.Run("NoDifference", func(t *testing.T) {
		expected := solidBuffer(50, 50, white)
		actual := solidBuffer(50, 50, white)

		_, significant, antiAlias := newComparator(DefaultConfig()).compare(expected, actual)

		if significant != 0 {
			t.Errorf("Expected 0 significant pixels, got %d", significant)
		}
		if antiAlias != 0 {
			t.Errorf("Expected 0 antialias pixels, got %d", antiAlias)
		}
	})

	t.Run("CompleteDifference", func(t *testing.T) {
		expected := solidBuffer(50, 50, white)
		actual := solidBuffer(50, 50, black)

		mask, significant, _ := newComparator(DefaultConfig()).compare(expected, actual)

		if significant != 50*50 {
			t.Errorf("Expected %d significant pixels, got %d", 50*50, significant)
		}
		if mask.At(25, 25) != PixelSignificant {
			t.Errorf("Expected mask to mark (25,25) significant, got %d", mask.At(25, 25))
		}
	})

	t.Run("BelowThreshold", func(t *testing.T) {
		expected := solidBuffer(50, 50, Color{R: 100, G: 100, B: 100, A: 255})
		actual := solidBuffer(50, 50, Color{R: 110, G: 110, B: 110, A: 255})

		// Weighted delta of a uniform +10 shift is 10/255 ~ 0.039.
		_, significant, _ := newComparator(DefaultConfig()).compare(expected, actual)

		if significant != 0 {
			t.Errorf("Expected a sub-threshold shift to be unchanged, got %d significant pixels", significant)
		}
	})

	t.Run("ZeroThreshold", func(t *testing.T) {
		expected := solidBuffer(50, 50, Color{R: 100, G: 100, B: 100, A: 255})
		actual := solidBuffer(50, 50, Color{R: 101, G: 100, B: 100, A: 255})

		config := DefaultConfig()
		config.Threshold = 0
		config.IncludeAntiAliasing = true

		_, significant, _ := newComparator(config).compare(expected, actual)

		if significant != 50*50 {
			t.Errorf("Expected every pixel to differ at threshold 0, got %d", significant)
		}
	})
}

// A one-pixel edge shift should be attributed to antialiasing: a neighbor of
// each buffer already carries the other buffer's color.
func TestComparator_AntiAliasing(t *testing.T) {
	makePair := func() (*PixelBuffer, *PixelBuffer) {
		expected := solidBuffer(20, 20, white)
		fillRect(expected, 0, 0, 10, 20, black)
		actual := solidBuffer(20, 20, white)
		fillRect(actual, 0, 0, 11, 20, black)
		return expected, actual
	}

	t.Run("Excluded", func(t *testing.T) {
		expected, actual := makePair()

		mask, significant, antiAlias := newComparator(DefaultConfig()).compare(expected, actual)

		if significant != 0 {
			t.Errorf("Expected shifted edge to carry no significant pixels, got %d", significant)
		}
		if antiAlias != 20 {
			t.Errorf("Expected 20 antialias pixels, got %d", antiAlias)
		}
		if mask.At(10, 5) != PixelAntiAlias {
			t.Errorf("Expected mask to mark (10,5) antialias, got %d", mask.At(10, 5))
		}
	})

	t.Run("Included", func(t *testing.T) {
		expected, actual := makePair()

		config := DefaultConfig()
		config.IncludeAntiAliasing = true

		_, significant, antiAlias := newComparator(config).compare(expected, actual)

		if significant != 20 {
			t.Errorf("Expected 20 significant pixels when antialiasing is included, got %d", significant)
		}
		if antiAlias != 0 {
			t.Errorf("Expected 0 antialias pixels when antialiasing is included, got %d", antiAlias)
		}
	})
}

func TestChannelDelta(t *testing.T) {
	if delta := channelDelta(white, white); delta != 0 {
		t.Errorf("Expected identical colors to have delta 0, got %f", delta)
	}
	if delta := channelDelta(white, black); delta < 0.99 || delta > 1.0 {
		t.Errorf("Expected white/black delta near 1, got %f", delta)
	}

	transparent := Color{R: 255, G: 255, B: 255, A: 0}
	if delta := channelDelta(white, transparent); delta != 1.0 {
		t.Errorf("Expected alpha-only difference to dominate, got %f", delta)
	}
}

func BenchmarkComparator_Compare(b *testing.B) {
	expected := solidBuffer(1920, 1080, white)
	actual := solidBuffer(1920, 1080, white)
	fillRect(actual, 200, 200, 600, 400, black)
	comparator := newComparator(DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		comparator.compare(expected, actual)
	}
}
