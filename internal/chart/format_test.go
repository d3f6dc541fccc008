package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{minor: 0, want: "0"},
		{minor: 950, want: "10"},
		{minor: 99_900, want: "999"},
		{minor: 100_000, want: "1K"},
		{minor: 1_000_000, want: "10K"},
		{minor: 1_050_000, want: "10.5K"},
		{minor: 99_999_999, want: "1000.0K"},
		{minor: 100_000_000, want: "1.0M"},
		{minor: 250_000_000, want: "2.5M"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.minor))
		})
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+300", FormatDelta(30_000))
	assert.Equal(t, "-300", FormatDelta(-30_000))
	assert.Equal(t, "±0", FormatDelta(0))
}

func TestSeriesColorRoundRobin(t *testing.T) {
	assert.Equal(t, "#4CAF50", SeriesColor(0))
	assert.Equal(t, "#00BCD4", SeriesColor(5))
	assert.Equal(t, "#4CAF50", SeriesColor(6))
}

func TestDarkerShade(t *testing.T) {
	pairs := map[string]string{
		"#4CAF50": "#2E7D32",
		"#2196F3": "#1565C0",
		"#FF9800": "#E65100",
		"#E91E63": "#AD1457",
		"#9C27B0": "#6A1B9A",
		"#00BCD4": "#00838F",
	}
	for bright, dark := range pairs {
		assert.Equal(t, dark, DarkerShade(bright))
	}
	assert.Equal(t, "#444466", DarkerShade("#123456"))
}
