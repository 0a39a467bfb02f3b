package render

import (
	"bytes"
	"fmt"
	"html"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/clockface/internal/face"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	backdrop *color.RGBA
	groups   bool
}

// WithBackdrop paints the full viewBox with c before the face.
func WithBackdrop(c color.RGBA) SVGOption { return func(r *svgRenderer) { r.backdrop = &c } }

// WithLayerGroups wraps each layer's elements in a <g class="layer-..."> group.
func WithLayerGroups() SVGOption { return func(r *svgRenderer) { r.groups = true } }

// RenderSVG writes frame as a standalone SVG document of the given size.
func RenderSVG(frame face.DisplayList, width, height float64, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.backdrop != nil {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" %s/>`+"\n", width, height, fillAttrs(*r.backdrop))
	}

	surface := &SVGSurface{buf: &buf, indent: "  "}
	open := false
	var current face.Layer
	for _, cmd := range frame {
		if r.groups && (!open || cmd.Layer != current) {
			if open {
				buf.WriteString("  </g>\n")
			}
			fmt.Fprintf(&buf, "  <g class=\"layer-%s\">\n", cmd.Layer)
			current, open = cmd.Layer, true
			surface.indent = "    "
		}
		cmd.Primitive.Draw(surface)
	}
	if open {
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// SVGSurface writes one SVG element per primitive.
type SVGSurface struct {
	buf    *bytes.Buffer
	indent string
}

var _ face.Surface = (*SVGSurface)(nil)

// NewSVGSurface appends elements to buf.
func NewSVGSurface(buf *bytes.Buffer) *SVGSurface { return &SVGSurface{buf: buf} }

func (s *SVGSurface) FillCircle(center face.Point, radius float64, c color.RGBA) {
	fmt.Fprintf(s.buf, `%s<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n",
		s.indent, center.X, center.Y, radius, fillAttrs(c))
}

func (s *SVGSurface) FillRect(b face.Rect, c color.RGBA) {
	fmt.Fprintf(s.buf, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`+"\n",
		s.indent, b.Left, b.Top, b.Width(), b.Height(), fillAttrs(c))
}

func (s *SVGSurface) StrokeCircle(center face.Point, radius, strokeWidth float64, c color.RGBA) {
	fmt.Fprintf(s.buf, `%s<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" %s/>`+"\n",
		s.indent, center.X, center.Y, radius, strokeAttrs(c, strokeWidth))
}

func (s *SVGSurface) StrokeRect(b face.Rect, strokeWidth float64, c color.RGBA) {
	fmt.Fprintf(s.buf, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" %s/>`+"\n",
		s.indent, b.Left, b.Top, b.Width(), b.Height(), strokeAttrs(c, strokeWidth))
}

func (s *SVGSurface) Line(from, to face.Point, strokeWidth float64, c color.RGBA, lineCap face.StrokeCap) {
	fmt.Fprintf(s.buf, `%s<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="%s" %s/>`+"\n",
		s.indent, from.X, from.Y, to.X, to.Y, lineCap, strokeAttrs(c, strokeWidth))
}

func (s *SVGSurface) Text(glyph string, position face.Point, fontSize float64, c color.RGBA, align face.TextAlign) {
	fmt.Fprintf(s.buf, `%s<text x="%.2f" y="%.2f" font-size="%.2f" font-family="Go, sans-serif" text-anchor="%s" %s>%s</text>`+"\n",
		s.indent, position.X, position.Y, fontSize, textAnchor(align), fillAttrs(c), html.EscapeString(glyph))
}

func textAnchor(align face.TextAlign) string {
	switch align {
	case face.TextAlignCenter:
		return "middle"
	case face.TextAlignRight:
		return "end"
	default:
		return "start"
	}
}

func fillAttrs(c color.RGBA) string {
	hex, opacity := svgColor(c)
	if opacity < 1 {
		return fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hex, opacity)
	}
	return fmt.Sprintf(`fill="%s"`, hex)
}

func strokeAttrs(c color.RGBA, width float64) string {
	hex, opacity := svgColor(c)
	if opacity < 1 {
		return fmt.Sprintf(`stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"`, hex, opacity, width)
	}
	return fmt.Sprintf(`stroke="%s" stroke-width="%.2f"`, hex, width)
}

// svgColor splits a premultiplied RGBA color into a straight hex color and
// an opacity.
func svgColor(c color.RGBA) (string, float64) {
	if c.A == 0 {
		return "#000000", 0
	}
	col, _ := colorful.MakeColor(c)
	return col.Hex(), float64(c.A) / 0xFF
}
