package face

// Viewport is the area the host gives the face, in length units.
type Viewport struct {
	Width  float64
	Height float64
}

type MeasureMode int

const (
	MeasureUnspecified MeasureMode = iota
	MeasureExactly
	MeasureAtMost
)

// MeasureSpec is one dimension proposed by the host layout.
type MeasureSpec struct {
	Mode MeasureMode
	Size float64
}

func Exactly(size float64) MeasureSpec     { return MeasureSpec{Mode: MeasureExactly, Size: size} }
func AtMost(size float64) MeasureSpec      { return MeasureSpec{Mode: MeasureAtMost, Size: size} }
func Unspecified(size float64) MeasureSpec { return MeasureSpec{Mode: MeasureUnspecified, Size: size} }

// MeasureSquare negotiates a 1:1 size. An exact dimension wins over a
// loose one; two exact or two loose dimensions give the smaller size.
func MeasureSquare(width, height MeasureSpec) Viewport {
	var size float64
	switch {
	case width.Mode == MeasureExactly && height.Mode == MeasureExactly:
		size = min(width.Size, height.Size)
	case width.Mode == MeasureExactly:
		size = width.Size
	case height.Mode == MeasureExactly:
		size = height.Size
	default:
		size = min(width.Size, height.Size)
	}
	if size < 0 {
		size = 0
	}
	return Viewport{Width: size, Height: size}
}
