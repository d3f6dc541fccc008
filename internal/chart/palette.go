package chart

// palette is the fixed series color rotation used by both chart modes.
var palette = []string{"#4CAF50", "#2196F3", "#FF9800", "#E91E63", "#9C27B0", "#00BCD4"}

// darkerShades pairs each palette color with its hand-picked darker variant.
// The pairs are fixed for visual consistency, not computed.
var darkerShades = map[string]string{
	"#4CAF50": "#2E7D32",
	"#2196F3": "#1565C0",
	"#FF9800": "#E65100",
	"#E91E63": "#AD1457",
	"#9C27B0": "#6A1B9A",
	"#00BCD4": "#00838F",
}

const fallbackShade = "#444466"

// SeriesColor returns the palette color for a series index, round-robin
func SeriesColor(i int) string {
	return palette[i%len(palette)]
}

// DarkerShade maps a palette color to its fixed darker pair; unknown colors
// fall back to a neutral dark gray
func DarkerShade(color string) string {
	if shade, ok := darkerShades[color]; ok {
		return shade
	}
	return fallbackShade
}
