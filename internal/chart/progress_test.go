package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarwatch/jarwatch/internal/models"
)

func TestBuildProgressChart_EmptyInputRendersPlaceholder(t *testing.T) {
	doc := BuildProgressChart(nil, 800, 150)

	placeholder := doc.FindElement("//text[@class='placeholder']")
	require.NotNil(t, placeholder)
	assert.Equal(t, "no data", placeholder.Text())
}

func TestBuildProgressChart_SplitsBarIntoPreviousAndDelta(t *testing.T) {
	doc := BuildProgressChart([]BarDatum{
		{Name: "Alpha", Current: 800, Goal: 1000, Delta: 300},
	}, 800, 150)

	require.Len(t, doc.FindElements("//rect[@class='bar-track']"), 1)

	previous := doc.FindElement("//rect[@class='bar-previous']")
	require.NotNil(t, previous)
	assert.Equal(t, DarkerShade(SeriesColor(0)), previous.SelectAttrValue("fill", ""))

	delta := doc.FindElement("//rect[@class='bar-delta']")
	require.NotNil(t, delta)
	assert.Equal(t, SeriesColor(0), delta.SelectAttrValue("fill", ""))

	percent := doc.FindElement("//text[@class='bar-percent']")
	require.NotNil(t, percent)
	assert.Equal(t, "80%", percent.Text())
}

func TestBuildProgressChart_ZeroGoalRendersEmptyTrack(t *testing.T) {
	doc := BuildProgressChart([]BarDatum{
		{Name: "Alpha", Current: 800, Goal: 0, Delta: 100},
	}, 800, 150)

	assert.Len(t, doc.FindElements("//rect[@class='bar-track']"), 1)
	assert.Empty(t, doc.FindElements("//rect[@class='bar-previous']"))
	assert.Empty(t, doc.FindElements("//rect[@class='bar-delta']"))

	percent := doc.FindElement("//text[@class='bar-percent']")
	require.NotNil(t, percent)
	assert.Equal(t, "0%", percent.Text())
}

func TestBuildProgressChart_DeltaLabelForms(t *testing.T) {
	tests := []struct {
		name      string
		delta     int64
		wantText  string
		wantColor string
	}{
		{name: "gain", delta: 30_000, wantText: "+300", wantColor: deltaGainColor},
		{name: "loss", delta: -30_000, wantText: "-300", wantColor: deltaLossColor},
		{name: "flat", delta: 0, wantText: "±0", wantColor: deltaGainColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := BuildProgressChart([]BarDatum{
				{Name: "Alpha", Current: 80_000, Goal: 100_000, Delta: tt.delta},
			}, 800, 150)

			label := doc.FindElement("//text[@class='bar-delta-label']")
			require.NotNil(t, label)
			assert.Equal(t, tt.wantText, label.Text())
			assert.Equal(t, tt.wantColor, label.SelectAttrValue("fill", ""))
		})
	}
}

func TestBuildProgressChart_OverfundedBarIsClamped(t *testing.T) {
	doc := BuildProgressChart([]BarDatum{
		{Name: "Alpha", Current: 1500, Goal: 1000, Delta: 100},
	}, 800, 150)

	percent := doc.FindElement("//text[@class='bar-percent']")
	require.NotNil(t, percent)
	assert.Equal(t, "150%", percent.Text())
}

func TestGenerateChart_FiltersAndSizes(t *testing.T) {
	goal := int64(100_000)
	reports := []models.JarReport{
		{JarID: "a", Name: "Alpha", Amount: 50_000, Goal: &goal, Delta: 1000},
		{JarID: "b", Name: "Beta", Amount: 20_000},
		{JarID: "c", Name: "Gamma", Amount: 70_000, Goal: &goal, Delta: -500},
		{JarID: "d", Name: "Delta", Amount: 10_000, Goal: &goal},
	}

	img := GenerateChart(reports)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	// three bars with goals: 25 + 3*52 + 15 = 196
	assert.Equal(t, 196, cfg.Height)
}

func TestGenerateChart_MinimumHeight(t *testing.T) {
	img := GenerateChart(nil)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}
