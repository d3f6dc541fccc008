package chart

import (
	"fmt"
	"math"

	"github.com/beevik/etree"

	"github.com/jarwatch/jarwatch/internal/models"
)

// BarDatum is one entry of the progress-bar chart
type BarDatum struct {
	Name    string
	Current int64
	Goal    int64
	Delta   int64
}

const (
	barSlotHeight  = 52.0
	barHeight      = 22.0
	barTopPad      = 25.0
	barBottomPad   = 15.0
	barLeft        = 20.0
	barTextArea    = 220.0
	barTrackColor  = "#EEEEEE"
	deltaGainColor = "#2E7D32"
	deltaLossColor = "#C62828"
)

// BuildProgressChart lays out one horizontal goal-progress bar per entry,
// stacked top to bottom. Each bar splits into the darker "previous" segment
// and the bright "today" segment; goal <= 0 renders the empty track only.
// Empty input produces the "no data" placeholder.
func BuildProgressChart(data []BarDatum, width, height int) *etree.Document {
	if len(data) == 0 {
		return placeholderDrawing(width, height)
	}

	doc, svg := newDrawing(width, height)
	trackWidth := float64(width) - barLeft - barTextArea

	for i, d := range data {
		top := barTopPad + float64(i)*barSlotHeight
		color := SeriesColor(i)

		name := addText(svg, barLeft, top+12, 13, titleColor, "", d.Name)
		name.CreateAttr("class", "bar-name")

		barY := top + 18
		addRect(svg, barLeft, barY, trackWidth, barHeight, barTrackColor, "bar-track")

		var percent, prevFrac, currFrac float64
		if d.Goal > 0 {
			percent = float64(d.Current) / float64(d.Goal) * 100
			prevFrac = clampFraction(float64(d.Current-d.Delta) / float64(d.Goal))
			currFrac = clampFraction(float64(d.Current) / float64(d.Goal))
		}
		if prevFrac > 0 {
			addRect(svg, barLeft, barY, trackWidth*prevFrac, barHeight, DarkerShade(color), "bar-previous")
		}
		if currFrac > prevFrac {
			addRect(svg, barLeft+trackWidth*prevFrac, barY, trackWidth*(currFrac-prevFrac), barHeight, color, "bar-delta")
		}

		textX := barLeft + trackWidth + 12
		percentLabel := addText(svg, textX, barY+9, 13, titleColor, "", fmt.Sprintf("%d%%", int(math.Round(percent))))
		percentLabel.CreateAttr("class", "bar-percent")
		percentLabel.CreateAttr("font-weight", "bold")

		amounts := addText(svg, textX+52, barY+9, 12, labelColor, "", FormatAmount(d.Current)+" / "+FormatAmount(d.Goal))
		amounts.CreateAttr("class", "bar-amounts")

		deltaColor := deltaGainColor
		if d.Delta < 0 {
			deltaColor = deltaLossColor
		}
		delta := addText(svg, textX, barY+24, 12, deltaColor, "", FormatDelta(d.Delta))
		delta.CreateAttr("class", "bar-delta-label")
	}

	return doc
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GenerateChart renders the progress-bar report image for jars with a
// configured positive goal, at a fixed 800px width and a height that grows
// with the number of bars
func GenerateChart(reports []models.JarReport) []byte {
	var data []BarDatum
	for _, r := range reports {
		if r.Goal == nil || *r.Goal <= 0 {
			continue
		}
		data = append(data, BarDatum{Name: r.Name, Current: r.Amount, Goal: *r.Goal, Delta: r.Delta})
	}

	height := int(barTopPad) + len(data)*int(barSlotHeight) + int(barBottomPad)
	if height < 150 {
		height = 150
	}
	return Rasterize(BuildProgressChart(data, 800, height))
}

// GenerateLineChart renders a time-series line chart straight to image bytes
func GenerateLineChart(series []LineSeries, width, height int) []byte {
	return Rasterize(BuildLineChart(series, width, height))
}
