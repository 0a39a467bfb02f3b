package face

import "math"

// Numeral glyph sets, index 0 is the label for 1 o'clock.
var (
	ArabicNumerals = [12]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
	RomanNumerals  = [12]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}
)

// Glyphs returns the glyph set for n, or nil for NumeralsNone.
func (n NumeralsType) Glyphs() []string {
	switch n {
	case NumeralsArabic:
		return ArabicNumerals[:]
	case NumeralsRoman:
		return RomanNumerals[:]
	}
	return nil
}

// RoundNumeralAngle is the placement angle of numeral index i, in degrees
// clockwise from the positive x axis. Index 2 ("3") sits at 0 degrees.
func RoundNumeralAngle(i int) float64 {
	return float64(i-2) * 30
}

func appendNumerals(list DisplayList, style StyleConfig, center Point, radius float64) DisplayList {
	glyphs := style.Numerals.Glyphs()
	if glyphs == nil {
		return list
	}
	var positions [12]Point
	if style.Shape == ShapeSquare {
		positions = squareNumeralPositions(center, radius, style.BorderWidth, style.NumeralsFontSize)
	} else {
		positions = roundNumeralPositions(center, radius, style.BorderWidth, style.NumeralsFontSize)
	}
	for i, glyph := range glyphs {
		list = append(list, Command{Layer: LayerNumerals, Primitive: Text{
			Glyph:    glyph,
			Position: positions[i],
			FontSize: style.NumeralsFontSize,
			Color:    style.NumeralsColor,
			Align:    TextAlignCenter,
		}})
	}
	return list
}

// roundNumeralPositions returns baseline anchors indexed like the glyph sets.
// Anchors sit one font size inside the border and are nudged down by half
// the font size so the glyph is roughly centered on the circle.
func roundNumeralPositions(center Point, radius, borderWidth, fontSize float64) [12]Point {
	var out [12]Point
	distance := radius - borderWidth - fontSize
	for i := range out {
		rad := Radians(RoundNumeralAngle(i))
		out[i] = Point{
			X: center.X + distance*math.Cos(rad),
			Y: center.Y + distance*math.Sin(rad) + fontSize/2,
		}
	}
	return out
}

// squareNumeralPositions lays out three numerals per edge. The edges are
// walked clockwise from the top-left corner, so the top edge reads 12, 1, 2,
// the right edge 3, 4, 5 downwards, the bottom edge 6, 7, 8 leftwards and the
// left edge 9, 10, 11 upwards. Each edge holds three glyph cells and four
// equal gaps.
func squareNumeralPositions(center Point, radius, borderWidth, fontSize float64) [12]Point {
	var out [12]Point
	inner := radius - borderWidth
	side := inner * 2
	gap := (side - fontSize*3) / 4

	left := center.X - inner
	right := center.X + inner
	top := center.Y - inner
	bottom := center.Y + inner

	for k := 0; k < 3; k++ {
		// distance from the edge start to the middle of cell k
		along := gap*float64(k+1) + fontSize*float64(k) + fontSize/2

		out[(k+11)%12] = Point{X: left + along, Y: top + fontSize*1.5}
		out[k+2] = Point{X: right - fontSize, Y: top + along}
		out[k+5] = Point{X: right - along, Y: bottom - fontSize}
		out[k+8] = Point{X: left + fontSize, Y: bottom - along}
	}
	return out
}
