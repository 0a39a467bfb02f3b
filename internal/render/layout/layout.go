package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SquareSize returns the side of the largest square that fits into rect.
func SquareSize(rect image.Rectangle) int {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	if size < 0 {
		size = 0
	}
	return size
}

// CenterSquare returns the largest square that fits into rect, centered on both axes.
func CenterSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := SquareSize(rect)
	x := rect.Min.X + (rect.Dx()-size)/2
	y := rect.Min.Y + (rect.Dy()-size)/2
	return image.Rect(x, y, x+size, y+size)
}

// Fit scales a srcW x srcH area to the largest rectangle with the same aspect
// ratio that fits into dst, centered.
func Fit(srcW, srcH int, dst image.Rectangle) image.Rectangle {
	dst = Normalize(dst)
	if srcW <= 0 || srcH <= 0 || dst.Empty() {
		return image.Rectangle{Min: dst.Min, Max: dst.Min}
	}
	w := dst.Dx()
	h := w * srcH / srcW
	if h > dst.Dy() {
		h = dst.Dy()
		w = h * srcW / srcH
	}
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
