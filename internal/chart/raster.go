package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/png"
	"strconv"

	"github.com/beevik/etree"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	fallbackWidth  = 800
	fallbackHeight = 150
)

// Rasterize renders an SVG drawing to PNG bytes at its natural pixel size.
// A drawing that fails to serialize or parse yields the deterministic
// fallback image, never an error: callers always receive valid image bytes.
func Rasterize(doc *etree.Document) []byte {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fallbackImage(fallbackWidth, fallbackHeight)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return fallbackImage(fallbackWidth, fallbackHeight)
	}

	width := int(icon.ViewBox.W)
	height := int(icon.ViewBox.H)
	if width <= 0 || height <= 0 {
		return fallbackImage(fallbackWidth, fallbackHeight)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	// the shape rasterizer handles paths only, so labels go on separately
	drawTexts(doc, img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fallbackImage(width, height)
	}
	return buf.Bytes()
}

// drawTexts overlays the drawing's text elements onto the rendered image,
// honoring position, fill color and text-anchor
func drawTexts(doc *etree.Document, img *image.RGBA) {
	for _, el := range doc.FindElements("//text") {
		label := el.Text()
		if label == "" {
			continue
		}
		x, errX := strconv.ParseFloat(el.SelectAttrValue("x", ""), 64)
		y, errY := strconv.ParseFloat(el.SelectAttrValue("y", ""), 64)
		if errX != nil || errY != nil {
			continue
		}

		labelWidth := font.MeasureString(basicfont.Face7x13, label).Round()
		switch el.SelectAttrValue("text-anchor", "") {
		case "middle":
			x -= float64(labelWidth) / 2
		case "end":
			x -= float64(labelWidth)
		}

		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(parseHexColor(el.SelectAttrValue("fill", ""))),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(int(x), int(y)),
		}
		drawer.DrawString(label)
	}
}

// parseHexColor decodes a #RRGGBB value, defaulting to near-black
func parseHexColor(s string) color.RGBA {
	if len(s) == 7 && s[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 0xFF}
		}
	}
	return color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
}

// fallbackImage is a solid background with an error label, used whenever the
// vector drawing cannot be rendered
func fallbackImage(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}), image.Point{}, stddraw.Src)

	label := "chart rendering error"
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0xB4, G: 0x28, B: 0x28, A: 0xFF}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(width/2-len(label)*7/2, height/2),
	}
	drawer.DrawString(label)

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
