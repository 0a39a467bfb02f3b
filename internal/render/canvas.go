package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/clockface/internal/face"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936

// Canvas rasterizes face primitives onto an RGBA image with anti-aliasing.
// Shapes go through the freetype rasterizer; glyphs through font.Drawer.
type Canvas struct {
	img     *image.RGBA
	fonts   *Fonts
	rast    *raster.Rasterizer
	painter *raster.RGBAPainter
}

var _ face.Surface = (*Canvas)(nil)

// NewCanvas draws into img, whose bounds must start at the origin.
func NewCanvas(img *image.RGBA, fonts *Fonts) *Canvas {
	b := img.Bounds()
	return &Canvas{
		img:     img,
		fonts:   fonts,
		rast:    raster.NewRasterizer(b.Dx(), b.Dy()),
		painter: raster.NewRGBAPainter(img),
	}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

// Fill paints the whole image with col.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) FillCircle(center face.Point, radius float64, col color.RGBA) {
	if radius <= 0 {
		return
	}
	c.rast.Clear()
	addCircle(c.rast, center.X, center.Y, radius)
	c.paint(col)
}

func (c *Canvas) FillRect(bounds face.Rect, col color.RGBA) {
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return
	}
	c.rast.Clear()
	addRect(c.rast, bounds)
	c.paint(col)
}

// StrokeCircle fills the ring between radius-w/2 and radius+w/2; the
// rasterizer's even-odd rule cuts out the inner disc.
func (c *Canvas) StrokeCircle(center face.Point, radius, strokeWidth float64, col color.RGBA) {
	if strokeWidth <= 0 {
		return
	}
	outer := radius + strokeWidth/2
	inner := radius - strokeWidth/2
	if outer <= 0 {
		return
	}
	c.rast.Clear()
	addCircle(c.rast, center.X, center.Y, outer)
	if inner > 0 {
		addCircle(c.rast, center.X, center.Y, inner)
	}
	c.paint(col)
}

func (c *Canvas) StrokeRect(bounds face.Rect, strokeWidth float64, col color.RGBA) {
	if strokeWidth <= 0 {
		return
	}
	half := strokeWidth / 2
	outer := face.Rect{Left: bounds.Left - half, Top: bounds.Top - half, Right: bounds.Right + half, Bottom: bounds.Bottom + half}
	inner := face.Rect{Left: bounds.Left + half, Top: bounds.Top + half, Right: bounds.Right - half, Bottom: bounds.Bottom - half}
	if outer.Width() <= 0 || outer.Height() <= 0 {
		return
	}
	c.rast.Clear()
	addRect(c.rast, outer)
	if inner.Width() > 0 && inner.Height() > 0 {
		addRect(c.rast, inner)
	}
	c.paint(col)
}

func (c *Canvas) Line(from, to face.Point, strokeWidth float64, col color.RGBA, lineCap face.StrokeCap) {
	if strokeWidth <= 0 {
		return
	}
	if from == to {
		// a zero-length round-capped line is a dot
		if lineCap == face.CapRound {
			c.FillCircle(from, strokeWidth/2, col)
		}
		return
	}
	var path raster.Path
	path.Start(fp(from.X, from.Y))
	path.Add1(fp(to.X, to.Y))
	c.rast.Clear()
	c.rast.AddStroke(path, fixed.Int26_6(strokeWidth*64), capper(lineCap), raster.RoundJoiner)
	c.paint(col)
}

func (c *Canvas) Text(glyph string, position face.Point, fontSize float64, col color.RGBA, align face.TextAlign) {
	if glyph == "" || c.fonts == nil {
		return
	}
	// a glyph taller than the whole canvas is never legible
	b := c.img.Bounds()
	if math.IsNaN(fontSize) || fontSize > float64(max(b.Dx(), b.Dy())) {
		return
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.fonts.Face(fontSize),
	}
	x := fixed.Int26_6(position.X * 64)
	switch align {
	case face.TextAlignCenter:
		x -= drawer.MeasureString(glyph) / 2
	case face.TextAlignRight:
		x -= drawer.MeasureString(glyph)
	}
	drawer.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(position.Y * 64)}
	drawer.DrawString(glyph)
}

func (c *Canvas) paint(col color.RGBA) {
	c.painter.SetColor(col)
	c.rast.Rasterize(c.painter)
}

func capper(lineCap face.StrokeCap) raster.Capper {
	switch lineCap {
	case face.CapRound:
		return raster.RoundCapper
	case face.CapSquare:
		return raster.SquareCapper
	default:
		return raster.ButtCapper
	}
}

func fp(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

type adder interface {
	Start(a fixed.Point26_6)
	Add1(b fixed.Point26_6)
	Add3(b, c, d fixed.Point26_6)
}

// addCircle adds a closed circle made of four cubic arcs.
func addCircle(a adder, cx, cy, r float64) {
	k := kappa * r
	a.Start(fp(cx+r, cy))
	a.Add3(fp(cx+r, cy+k), fp(cx+k, cy+r), fp(cx, cy+r))
	a.Add3(fp(cx-k, cy+r), fp(cx-r, cy+k), fp(cx-r, cy))
	a.Add3(fp(cx-r, cy-k), fp(cx-k, cy-r), fp(cx, cy-r))
	a.Add3(fp(cx+k, cy-r), fp(cx+r, cy-k), fp(cx+r, cy))
}

func addRect(a adder, r face.Rect) {
	a.Start(fp(r.Left, r.Top))
	a.Add1(fp(r.Right, r.Top))
	a.Add1(fp(r.Right, r.Bottom))
	a.Add1(fp(r.Left, r.Bottom))
	a.Add1(fp(r.Left, r.Top))
}
