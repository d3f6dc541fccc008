package chart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLineChart_EmptyInputRendersPlaceholder(t *testing.T) {
	for _, series := range [][]LineSeries{
		nil,
		{},
		{{Name: "Alpha"}, {Name: "Beta", Points: []ChartPoint{}}},
	} {
		doc := BuildLineChart(series, 600, 400)

		placeholder := doc.FindElement("//text[@class='placeholder']")
		require.NotNil(t, placeholder)
		assert.Equal(t, "no data", placeholder.Text())
		assert.Empty(t, doc.FindElements("//polyline"))
		assert.Empty(t, doc.FindElements("//circle"))
	}
}

func TestBuildLineChart_SinglePointDrawsMarkerOnly(t *testing.T) {
	doc := BuildLineChart([]LineSeries{
		{Name: "Alpha", Points: []ChartPoint{{Date: "2024-03-10", Amount: 500}}},
	}, 600, 400)

	assert.Len(t, doc.FindElements("//circle"), 1)
	assert.Empty(t, doc.FindElements("//polyline"))
}

func TestBuildLineChart_MultiPointDrawsPolylineAndMarkers(t *testing.T) {
	doc := BuildLineChart([]LineSeries{
		{Name: "Alpha", Points: []ChartPoint{
			{Date: "2024-03-12", Amount: 800},
			{Date: "2024-03-10", Amount: 500},
			{Date: "2024-03-11", Amount: 650},
		}},
	}, 600, 400)

	polylines := doc.FindElements("//polyline")
	require.Len(t, polylines, 1)
	assert.Len(t, doc.FindElements("//circle"), 3)

	// points are sorted by date before drawing, so x coordinates ascend
	var xs [3]float64
	n, err := fmt.Sscanf(polylines[0].SelectAttrValue("points", ""), "%f,%f %f,%f %f,%f",
		&xs[0], new(float64), &xs[1], new(float64), &xs[2], new(float64))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	assert.Less(t, xs[0], xs[1])
	assert.Less(t, xs[1], xs[2])
}

func TestBuildLineChart_GridlinesAndLabels(t *testing.T) {
	doc := BuildLineChart([]LineSeries{
		{Name: "Alpha", Points: []ChartPoint{
			{Date: "2024-03-10", Amount: 100_000},
			{Date: "2024-03-11", Amount: 200_000},
		}},
	}, 600, 400)

	assert.Len(t, doc.FindElements("//text[@class='grid-label']"), 5)
	assert.Len(t, doc.FindElements("//text[@class='legend-label']"), 1)
}

func TestBuildLineChart_DateLabelStride(t *testing.T) {
	var points []ChartPoint
	for day := 1; day <= 28; day++ {
		points = append(points, ChartPoint{Date: fmt.Sprintf("2024-03-%02d", day), Amount: int64(day * 100)})
	}
	doc := BuildLineChart([]LineSeries{{Name: "Alpha", Points: points}}, 800, 400)

	// stride = max(1, 28/7) = 4, labelling days 1, 5, 9, ... 25
	assert.Len(t, doc.FindElements("//text[@class='x-label']"), 7)
}

func TestBuildLineChart_AllZeroAmounts(t *testing.T) {
	doc := BuildLineChart([]LineSeries{
		{Name: "Alpha", Points: []ChartPoint{
			{Date: "2024-03-10", Amount: 0},
			{Date: "2024-03-11", Amount: 0},
		}},
	}, 600, 400)

	// amount domain floor keeps the layout finite
	require.Len(t, doc.FindElements("//polyline"), 1)
	assert.Len(t, doc.FindElements("//circle"), 2)
}

func TestBuildLineChart_PaletteAssignment(t *testing.T) {
	series := make([]LineSeries, 3)
	for i := range series {
		series[i] = LineSeries{
			Name:   fmt.Sprintf("S%d", i),
			Points: []ChartPoint{{Date: "2024-03-10", Amount: 100}, {Date: "2024-03-11", Amount: 200}},
		}
	}
	doc := BuildLineChart(series, 600, 400)

	swatches := doc.FindElements("//rect[@class='legend-swatch']")
	require.Len(t, swatches, 3)
	for i, swatch := range swatches {
		assert.Equal(t, SeriesColor(i), swatch.SelectAttrValue("fill", ""))
	}
}
