package face

import (
	"fmt"
	"image/color"
)

type Point struct {
	X float64
	Y float64
}

func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Rect uses left, top, right, bottom edges.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// StrokeCap describes how line endpoints are drawn.
type StrokeCap int

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

func (c StrokeCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return fmt.Sprintf("StrokeCap(%d)", int(c))
	}
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// Surface receives primitive draw calls. Text positions are the anchor
// selected by align on the x axis and the baseline on the y axis.
type Surface interface {
	FillCircle(center Point, radius float64, c color.RGBA)
	FillRect(bounds Rect, c color.RGBA)
	StrokeCircle(center Point, radius, strokeWidth float64, c color.RGBA)
	StrokeRect(bounds Rect, strokeWidth float64, c color.RGBA)
	Line(from, to Point, strokeWidth float64, c color.RGBA, cap StrokeCap)
	Text(glyph string, position Point, fontSize float64, c color.RGBA, align TextAlign)
}

// Primitive is a single draw call.
type Primitive interface {
	Draw(s Surface)
	translate(dx, dy float64) Primitive
}

type FillCircle struct {
	Center Point
	Radius float64
	Color  color.RGBA
}

func (p FillCircle) Draw(s Surface) { s.FillCircle(p.Center, p.Radius, p.Color) }

func (p FillCircle) translate(dx, dy float64) Primitive {
	p.Center = p.Center.Add(dx, dy)
	return p
}

type FillRect struct {
	Bounds Rect
	Color  color.RGBA
}

func (p FillRect) Draw(s Surface) { s.FillRect(p.Bounds, p.Color) }

func (p FillRect) translate(dx, dy float64) Primitive {
	p.Bounds = p.Bounds.Translate(dx, dy)
	return p
}

type StrokeCircle struct {
	Center      Point
	Radius      float64
	StrokeWidth float64
	Color       color.RGBA
}

func (p StrokeCircle) Draw(s Surface) { s.StrokeCircle(p.Center, p.Radius, p.StrokeWidth, p.Color) }

func (p StrokeCircle) translate(dx, dy float64) Primitive {
	p.Center = p.Center.Add(dx, dy)
	return p
}

type StrokeRect struct {
	Bounds      Rect
	StrokeWidth float64
	Color       color.RGBA
}

func (p StrokeRect) Draw(s Surface) { s.StrokeRect(p.Bounds, p.StrokeWidth, p.Color) }

func (p StrokeRect) translate(dx, dy float64) Primitive {
	p.Bounds = p.Bounds.Translate(dx, dy)
	return p
}

type Line struct {
	From        Point
	To          Point
	StrokeWidth float64
	Color       color.RGBA
	Cap         StrokeCap
}

func (p Line) Draw(s Surface) { s.Line(p.From, p.To, p.StrokeWidth, p.Color, p.Cap) }

func (p Line) translate(dx, dy float64) Primitive {
	p.From = p.From.Add(dx, dy)
	p.To = p.To.Add(dx, dy)
	return p
}

type Text struct {
	Glyph    string
	Position Point
	FontSize float64
	Color    color.RGBA
	Align    TextAlign
}

func (p Text) Draw(s Surface) { s.Text(p.Glyph, p.Position, p.FontSize, p.Color, p.Align) }

func (p Text) translate(dx, dy float64) Primitive {
	p.Position = p.Position.Add(dx, dy)
	return p
}

// Layer names the face part a command belongs to.
type Layer int

const (
	LayerBackground Layer = iota
	LayerBorder
	LayerNumerals
	LayerHourHand
	LayerMinuteHand
	LayerSecondHand
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerBorder:
		return "border"
	case LayerNumerals:
		return "numerals"
	case LayerHourHand:
		return "hour"
	case LayerMinuteHand:
		return "minute"
	case LayerSecondHand:
		return "second"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

type Command struct {
	Layer     Layer
	Primitive Primitive
}

// DisplayList is an ordered frame; later commands paint over earlier ones.
type DisplayList []Command

// Replay issues every command to s in order.
func (l DisplayList) Replay(s Surface) {
	for _, cmd := range l {
		cmd.Primitive.Draw(s)
	}
}

// Translate returns a copy of the list moved by (dx, dy).
func (l DisplayList) Translate(dx, dy float64) DisplayList {
	out := make(DisplayList, len(l))
	for i, cmd := range l {
		out[i] = Command{Layer: cmd.Layer, Primitive: cmd.Primitive.translate(dx, dy)}
	}
	return out
}

// Layers returns the distinct layers in drawing order.
func (l DisplayList) Layers() []Layer {
	var layers []Layer
	for _, cmd := range l {
		if len(layers) == 0 || layers[len(layers)-1] != cmd.Layer {
			layers = append(layers, cmd.Layer)
		}
	}
	return layers
}
