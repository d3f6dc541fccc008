package chart

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

const (
	fontFamily      = "Helvetica, Arial, sans-serif"
	backgroundColor = "#FFFFFF"
	axisColor       = "#999999"
	gridColor       = "#DDDDDD"
	labelColor      = "#666666"
	titleColor      = "#333333"
)

// newDrawing creates an SVG document of the given pixel size with a solid
// background, returning the document and its root element
func newDrawing(width, height int) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(width))
	svg.CreateAttr("height", strconv.Itoa(height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))

	addRect(svg, 0, 0, float64(width), float64(height), backgroundColor, "")
	return doc, svg
}

// placeholderDrawing is the defined degenerate output for empty chart input
func placeholderDrawing(width, height int) *etree.Document {
	doc, svg := newDrawing(width, height)
	label := addText(svg, float64(width)/2, float64(height)/2, 16, labelColor, "middle", "no data")
	label.CreateAttr("class", "placeholder")
	return doc
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func addRect(parent *etree.Element, x, y, w, h float64, fill, class string) *etree.Element {
	rect := parent.CreateElement("rect")
	rect.CreateAttr("x", fmtCoord(x))
	rect.CreateAttr("y", fmtCoord(y))
	rect.CreateAttr("width", fmtCoord(w))
	rect.CreateAttr("height", fmtCoord(h))
	rect.CreateAttr("fill", fill)
	if class != "" {
		rect.CreateAttr("class", class)
	}
	return rect
}

func addLine(parent *etree.Element, x1, y1, x2, y2 float64, stroke string, width float64) *etree.Element {
	line := parent.CreateElement("line")
	line.CreateAttr("x1", fmtCoord(x1))
	line.CreateAttr("y1", fmtCoord(y1))
	line.CreateAttr("x2", fmtCoord(x2))
	line.CreateAttr("y2", fmtCoord(y2))
	line.CreateAttr("stroke", stroke)
	line.CreateAttr("stroke-width", fmtCoord(width))
	return line
}

func addCircle(parent *etree.Element, cx, cy, r float64, fill string) *etree.Element {
	circle := parent.CreateElement("circle")
	circle.CreateAttr("cx", fmtCoord(cx))
	circle.CreateAttr("cy", fmtCoord(cy))
	circle.CreateAttr("r", fmtCoord(r))
	circle.CreateAttr("fill", fill)
	return circle
}

func addPolyline(parent *etree.Element, points string, stroke string, width float64) *etree.Element {
	poly := parent.CreateElement("polyline")
	poly.CreateAttr("points", points)
	poly.CreateAttr("fill", "none")
	poly.CreateAttr("stroke", stroke)
	poly.CreateAttr("stroke-width", fmtCoord(width))
	return poly
}

func addText(parent *etree.Element, x, y float64, size int, fill, anchor, text string) *etree.Element {
	el := parent.CreateElement("text")
	el.CreateAttr("x", fmtCoord(x))
	el.CreateAttr("y", fmtCoord(y))
	el.CreateAttr("font-family", fontFamily)
	el.CreateAttr("font-size", strconv.Itoa(size))
	el.CreateAttr("fill", fill)
	if anchor != "" {
		el.CreateAttr("text-anchor", anchor)
	}
	el.SetText(text)
	return el
}
