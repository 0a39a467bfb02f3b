package face

import "image/color"

type recordingSurface struct {
	calls []string
}

func (r *recordingSurface) FillCircle(Point, float64, color.RGBA) {
	r.calls = append(r.calls, "fillCircle")
}

func (r *recordingSurface) FillRect(Rect, color.RGBA) {
	r.calls = append(r.calls, "fillRect")
}

func (r *recordingSurface) StrokeCircle(Point, float64, float64, color.RGBA) {
	r.calls = append(r.calls, "strokeCircle")
}

func (r *recordingSurface) StrokeRect(Rect, float64, color.RGBA) {
	r.calls = append(r.calls, "strokeRect")
}

func (r *recordingSurface) Line(Point, Point, float64, color.RGBA, StrokeCap) {
	r.calls = append(r.calls, "line")
}

func (r *recordingSurface) Text(string, Point, float64, color.RGBA, TextAlign) {
	r.calls = append(r.calls, "text")
}
