// Package preview renders a schematic card of a processed route: the
// raw input path, the smoothed path on top of it, the sampled camera
// positions with their headings, and a short stats line. Useful for
// checking what the camera will do before spending imagery quota.
package preview

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"drivelapse/geo"
	"drivelapse/pipeline"
)

const (
	padding     = 32.0
	headingTick = 7.0
)

// Card renders the run onto a width x height canvas.
func Card(res *pipeline.Result, width, height int) (image.Image, error) {
	dc := gg.NewContext(width, height)

	dc.SetRGB(0.08, 0.09, 0.12)
	dc.Clear()

	pts := append(append([]geo.Point{}, res.Raw...), res.Path...)
	if len(pts) > 0 {
		proj := newProjector(pts, float64(width), float64(height))
		drawRaw(dc, proj, res)
		drawPath(dc, proj, res)
		drawWaypoints(dc, proj, res)
	}

	if err := drawStats(dc, res, height); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Save renders the card and writes it as a PNG.
func Save(path string, res *pipeline.Result, width, height int) error {
	img, err := Card(res, width, height)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

func drawRaw(dc *gg.Context, proj projector, res *pipeline.Result) {
	if len(res.Raw) == 0 {
		return
	}
	dc.SetRGBA(0.55, 0.57, 0.62, 0.6)
	dc.SetLineWidth(1)
	for i, p := range res.Raw {
		x, y := proj.xy(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

func drawPath(dc *gg.Context, proj projector, res *pipeline.Result) {
	dc.SetRGB(0.35, 0.65, 0.95)
	dc.SetLineWidth(2.5)
	for i, p := range res.Path {
		x, y := proj.xy(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

func drawWaypoints(dc *gg.Context, proj projector, res *pipeline.Result) {
	// Heading ticks first so the dots sit on top of them.
	dc.SetRGBA(0.95, 0.85, 0.4, 0.8)
	dc.SetLineWidth(1.5)
	for _, w := range res.Waypoints {
		x, y := proj.xy(w.Point)
		rad := gg.Radians(w.Heading)
		dc.DrawLine(x, y, x+math.Sin(rad)*headingTick, y-math.Cos(rad)*headingTick)
	}
	dc.Stroke()

	dc.SetRGB(0.95, 0.85, 0.4)
	for _, w := range res.Waypoints {
		x, y := proj.xy(w.Point)
		dc.DrawCircle(x, y, 2)
		dc.Fill()
	}

	if len(res.Waypoints) > 0 {
		sx, sy := proj.xy(res.Waypoints[0].Point)
		dc.SetRGB(0.3, 0.85, 0.4)
		dc.DrawCircle(sx, sy, 4.5)
		dc.Fill()

		ex, ey := proj.xy(res.Waypoints[len(res.Waypoints)-1].Point)
		dc.SetRGB(0.9, 0.35, 0.35)
		dc.DrawCircle(ex, ey, 4.5)
		dc.Fill()
	}
}

func drawStats(dc *gg.Context, res *pipeline.Result, height int) error {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("preview: parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 13}))
	dc.SetRGB(0.85, 0.87, 0.9)

	line := fmt.Sprintf("%.1f km, %d waypoints", res.Stats.PathLength/1000, res.Stats.Waypoints)
	if res.Stats.Waypoints == 0 {
		line = "no waypoints"
	}
	dc.DrawString(line, 12, float64(height)-12)
	return nil
}

// projector maps geographic points onto the canvas with an
// equirectangular fit: longitudes are shrunk by the cosine of the
// mid-latitude, then the whole box is scaled and centered with padding.
type projector struct {
	minLat, minLng float64
	cosMid         float64
	scale          float64
	offX, offY     float64
	height         float64
}

func newProjector(points []geo.Point, width, height float64) projector {
	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLng = math.Min(minLng, p.Lng)
		maxLng = math.Max(maxLng, p.Lng)
	}

	cosMid := math.Cos(gg.Radians((minLat + maxLat) / 2))
	spanX := math.Max((maxLng-minLng)*cosMid, 1e-9)
	spanY := math.Max(maxLat-minLat, 1e-9)
	scale := math.Min((width-2*padding)/spanX, (height-2*padding)/spanY)

	return projector{
		minLat: minLat,
		minLng: minLng,
		cosMid: cosMid,
		scale:  scale,
		offX:   (width - spanX*scale) / 2,
		offY:   (height - spanY*scale) / 2,
		height: height,
	}
}

func (p projector) xy(pt geo.Point) (float64, float64) {
	x := (pt.Lng-p.minLng)*p.cosMid*p.scale + p.offX
	y := p.height - ((pt.Lat-p.minLat)*p.scale + p.offY)
	return x, y
}
