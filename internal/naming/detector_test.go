package naming

import "testing"

// TestIsDerivative tests derivative classification over the naming
// convention: dimension suffixes, scaled/rotated markers, and the
// large-dimension threshold.
func TestIsDerivative(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleset()

	testCases := []struct {
		name     string
		filename string
		expected bool
	}{
		// Plain main files.
		{"plain name", "sunset.jpg", false},
		{"no extension", "README", false},
		{"underscored name", "my_photo.png", false},

		// Dimension suffixes.
		{"thumbnail", "sunset-150x150.jpg", true},
		{"medium size", "banner-768x432.jpg", true},
		{"dimension without extension", "thumb-100x100", true},
		{"zero dimensions", "broken-0x0.jpg", true},

		// The last dimension pattern controls the decision.
		{"chained shrinking", "photo-500x500-300x300.jpg", true},
		{"chained growing", "photo-300x300-1200x1200.jpg", false},

		// Large dimensions read as part of the real name.
		{"large product shot", "product-1200x1600.jpg", false},
		{"exactly at threshold", "poster-1000x1000.jpg", false},
		{"width below threshold", "poster-999x1000.jpg", true},
		{"height below threshold", "poster-1000x999.jpg", true},
		{"overflowing digits", "huge-99999999999999999999x99999999999999999999.jpg", false},
		{"one axis overflows", "huge-5x99999999999999999999.jpg", true},

		// Platform markers are terminal regardless of dimensions.
		{"scaled", "image-scaled.jpg", true},
		{"rotated", "image-rotated.jpg", true},
		{"scaled uppercase", "image-SCALED.JPG", true},
		{"marker mid-name", "image-scaled-final.jpg", true},
		{"marker with large dimensions", "image-scaled-1200x1200.jpg", true},

		// Double extensions.
		{"re-encoded thumbnail", "sunset-150x150.jpg.webp", true},
		{"re-encoded main", "sunset.jpg.webp", false},

		// Pathological inputs stay defined.
		{"empty string", "", false},
		{"bare dotfile", ".jpg", false},
		{"only hyphens", "---", false},
		{"dimension-like text", "photo-axb.jpg", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rules.IsDerivative(tc.filename)
			if got != tc.expected {
				t.Errorf("IsDerivative(%q) = %v, expected %v", tc.filename, got, tc.expected)
			}
		})
	}
}

// TestIsDerivativeCustomThreshold tests that the dimension threshold is
// configuration, not a constant.
func TestIsDerivativeCustomThreshold(t *testing.T) {
	t.Parallel()

	rules := NewRuleset(DefaultExtensions, DefaultInnerExtensions, 500, 500)

	if rules.IsDerivative("photo-600x600.jpg") {
		t.Error("IsDerivative(photo-600x600.jpg) = true, expected false with 500x500 threshold")
	}
	if !rules.IsDerivative("photo-400x400.jpg") {
		t.Error("IsDerivative(photo-400x400.jpg) = false, expected true with 500x500 threshold")
	}
}

// TestIsDerivativeDeterministic tests that classification is stable across
// repeated calls for arbitrary inputs.
func TestIsDerivativeDeterministic(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleset()

	inputs := []string{
		"", ".", "..", "...", "-", "-x-", "x", "-1x", "-x1", "-1x1",
		"a-1x1-2x2-3x3.jpg", "\x00weird\xff", "日本語-150x150.jpg",
		"photo-scaled-rotated-100x100.jpg.webp", "....jpg", "a-b-c-d",
	}

	for _, input := range inputs {
		first := rules.IsDerivative(input)
		second := rules.IsDerivative(input)
		if first != second {
			t.Errorf("IsDerivative(%q) flapped: %v then %v", input, first, second)
		}
	}
}
