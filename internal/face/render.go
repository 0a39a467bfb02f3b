// Package face lays out an analog clock face as an ordered list of drawing
// primitives. Render is a pure function of the time, the style and the
// viewport; it keeps no state between calls.
package face

import "math"

// Render produces the frame for t. The list is ordered background, border,
// numerals, hour hand, minute hand, second hand; disabled parts are omitted.
// A zero viewport yields zero-sized primitives.
func Render(t TimeOfDay, style StyleConfig, vp Viewport) DisplayList {
	style = style.Clamped()

	centerX := vp.Width / 2
	centerY := vp.Height / 2
	center := Point{X: centerX, Y: centerY}
	radius := max(min(centerX, centerY), 0)

	list := make(DisplayList, 0, 20)
	list = appendBackground(list, style, center, radius)
	list = appendBorder(list, style, center, radius)
	list = appendNumerals(list, style, center, radius)

	availableRadius := radius - style.BorderWidth
	list = appendHand(list, LayerHourHand, style.HourHand, t.HourAngle(), center, availableRadius)
	list = appendHand(list, LayerMinuteHand, style.MinuteHand, t.MinuteAngle(), center, availableRadius)
	list = appendHand(list, LayerSecondHand, style.SecondHand, t.SecondAngle(), center, availableRadius)
	return list
}

func appendBackground(list DisplayList, style StyleConfig, center Point, radius float64) DisplayList {
	var p Primitive
	switch style.Shape {
	case ShapeSquare:
		p = FillRect{Bounds: squareAround(center, radius), Color: style.BackgroundColor}
	default:
		p = FillCircle{Center: center, Radius: radius, Color: style.BackgroundColor}
	}
	return append(list, Command{Layer: LayerBackground, Primitive: p})
}

// The stroke is centered on the outline, so the outline is inset by half
// the border width to keep the whole stroke inside radius.
func appendBorder(list DisplayList, style StyleConfig, center Point, radius float64) DisplayList {
	if style.BorderWidth == 0 {
		return list
	}
	half := style.BorderWidth / 2
	var p Primitive
	switch style.Shape {
	case ShapeSquare:
		p = StrokeRect{Bounds: squareAround(center, radius-half), StrokeWidth: style.BorderWidth, Color: style.BorderColor}
	default:
		p = StrokeCircle{Center: center, Radius: radius - half, StrokeWidth: style.BorderWidth, Color: style.BorderColor}
	}
	return append(list, Command{Layer: LayerBorder, Primitive: p})
}

func appendHand(list DisplayList, layer Layer, hand Hand, degrees float64, center Point, availableRadius float64) DisplayList {
	if !hand.Show {
		return list
	}
	length := availableRadius * hand.LengthPercentage
	return append(list, Command{Layer: layer, Primitive: Line{
		From:        center,
		To:          HandEnd(center, degrees, length),
		StrokeWidth: availableRadius * hand.WidthPercentage,
		Color:       hand.Color,
		Cap:         CapRound,
	}})
}

// HandEnd returns the tip of a hand of the given length. Zero degrees points
// at 12 o'clock and angles grow clockwise on a y-down surface.
func HandEnd(center Point, degrees, length float64) Point {
	rad := Radians(degrees)
	return Point{
		X: center.X + math.Sin(rad)*length,
		Y: center.Y - math.Cos(rad)*length,
	}
}

func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func squareAround(center Point, half float64) Rect {
	return Rect{
		Left:   center.X - half,
		Top:    center.Y - half,
		Right:  center.X + half,
		Bottom: center.Y + half,
	}
}
