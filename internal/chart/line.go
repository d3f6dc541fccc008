package chart

import (
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/jarwatch/jarwatch/internal/models"
)

// ChartPoint is one (date, amount) pair of a rendered time series
type ChartPoint struct {
	Date   string
	Amount int64
}

// LineSeries is a named time series to draw; Color falls back to the palette
// rotation when empty
type LineSeries struct {
	Name   string
	Color  string
	Points []ChartPoint
}

const (
	marginLeft   = 60.0
	marginRight  = 20.0
	marginTop    = 40.0
	marginBottom = 40.0

	gridlineCount = 5
	maxDateLabels = 7

	markerRadius = 3.5
	legendStride = 140.0
)

// BuildLineChart lays out a time-series line chart as an SVG drawing.
// Empty input produces the "no data" placeholder.
func BuildLineChart(series []LineSeries, width, height int) *etree.Document {
	pointCount := 0
	for _, s := range series {
		pointCount += len(s.Points)
	}
	if pointCount == 0 {
		return placeholderDrawing(width, height)
	}

	doc, svg := newDrawing(width, height)

	plotX := marginLeft
	plotY := marginTop
	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom

	minDate, maxDate, maxAmount, dates := lineDomains(series)

	// The date span is at least one day and the amount ceiling at least 1.0,
	// so both interpolations below divide by a positive quantity.
	spanDays := maxDate.Sub(minDate).Hours() / 24
	if spanDays < 1 {
		spanDays = 1
	}
	yCeil := 1.1 * float64(maxAmount)
	if yCeil < 1 {
		yCeil = 1
	}

	mapX := func(d time.Time) float64 {
		return plotX + d.Sub(minDate).Hours()/24/spanDays*plotW
	}
	// y grows downward, matching raster coordinates
	mapY := func(amount float64) float64 {
		return plotY + plotH*(1-amount/yCeil)
	}

	// horizontal gridlines, evenly spaced in amount-space
	for i := 1; i <= gridlineCount; i++ {
		value := yCeil * float64(i) / gridlineCount
		y := mapY(value)
		addLine(svg, plotX, y, plotX+plotW, y, gridColor, 1)
		label := addText(svg, plotX-8, y+4, 11, labelColor, "end", FormatAmount(int64(value)))
		label.CreateAttr("class", "grid-label")
	}

	// x axis and adaptive date labels
	addLine(svg, plotX, plotY+plotH, plotX+plotW, plotY+plotH, axisColor, 1)
	stride := len(dates) / maxDateLabels
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(dates); i += stride {
		d, ok := parseDate(dates[i])
		if !ok {
			continue
		}
		label := addText(svg, mapX(d), plotY+plotH+18, 11, labelColor, "middle", shortDate(dates[i]))
		label.CreateAttr("class", "x-label")
	}

	for i, s := range series {
		color := s.Color
		if color == "" {
			color = SeriesColor(i)
		}

		points := make([]ChartPoint, len(s.Points))
		copy(points, s.Points)
		sort.Slice(points, func(a, b int) bool { return points[a].Date < points[b].Date })

		var coords []string
		for _, p := range points {
			d, ok := parseDate(p.Date)
			if !ok {
				continue
			}
			coords = append(coords, fmtCoord(mapX(d))+","+fmtCoord(mapY(float64(p.Amount))))
		}
		// a single point draws a marker only, never a line
		if len(coords) > 1 {
			addPolyline(svg, strings.Join(coords, " "), color, 2)
		}
		for _, p := range points {
			d, ok := parseDate(p.Date)
			if !ok {
				continue
			}
			addCircle(svg, mapX(d), mapY(float64(p.Amount)), markerRadius, color)
		}

		// legend entry
		swatchX := marginLeft + float64(i)*legendStride
		addRect(svg, swatchX, 12, 12, 12, color, "legend-swatch")
		label := addText(svg, swatchX+18, 22, 12, titleColor, "", s.Name)
		label.CreateAttr("class", "legend-label")
	}

	return doc
}

// lineDomains computes the date and amount domains plus the sorted set of
// distinct dates across all series
func lineDomains(series []LineSeries) (minDate, maxDate time.Time, maxAmount int64, dates []string) {
	seen := map[string]bool{}
	for _, s := range series {
		for _, p := range s.Points {
			d, ok := parseDate(p.Date)
			if !ok {
				continue
			}
			if minDate.IsZero() || d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
			if p.Amount > maxAmount {
				maxAmount = p.Amount
			}
			if !seen[p.Date] {
				seen[p.Date] = true
				dates = append(dates, p.Date)
			}
		}
	}
	sort.Strings(dates)
	return minDate, maxDate, maxAmount, dates
}

func parseDate(date string) (time.Time, bool) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// shortDate drops the year from a YYYY-MM-DD label
func shortDate(date string) string {
	if len(date) == len(models.DateLayout) {
		return date[5:]
	}
	return date
}
