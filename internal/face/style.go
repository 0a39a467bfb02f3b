package face

import (
	"fmt"
	"image/color"
	"strings"
)

// Shape selects the outer silhouette and the numeral layout.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeSquare
)

func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "round"
	case ShapeSquare:
		return "square"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ShapeFromOrdinal maps a host enum ordinal to a Shape. Unknown ordinals yield ShapeRound.
func ShapeFromOrdinal(ordinal int) Shape {
	switch Shape(ordinal) {
	case ShapeRound, ShapeSquare:
		return Shape(ordinal)
	}
	return ShapeRound
}

// ParseShape accepts the lower-case shape name.
func ParseShape(name string) (Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "round":
		return ShapeRound, true
	case "square":
		return ShapeSquare, true
	}
	return ShapeRound, false
}

type NumeralsType int

const (
	NumeralsArabic NumeralsType = iota
	NumeralsRoman
	NumeralsNone
)

func (n NumeralsType) String() string {
	switch n {
	case NumeralsArabic:
		return "arabic"
	case NumeralsRoman:
		return "roman"
	case NumeralsNone:
		return "none"
	default:
		return fmt.Sprintf("NumeralsType(%d)", int(n))
	}
}

// NumeralsTypeFromOrdinal maps a host enum ordinal. Unknown ordinals yield NumeralsArabic.
func NumeralsTypeFromOrdinal(ordinal int) NumeralsType {
	switch NumeralsType(ordinal) {
	case NumeralsArabic, NumeralsRoman, NumeralsNone:
		return NumeralsType(ordinal)
	}
	return NumeralsArabic
}

func ParseNumeralsType(name string) (NumeralsType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "arabic":
		return NumeralsArabic, true
	case "roman":
		return NumeralsRoman, true
	case "none":
		return NumeralsNone, true
	}
	return NumeralsArabic, false
}

// UpdateType is the refresh cadence of the face.
type UpdateType int

const (
	UpdateEverySecond UpdateType = iota
	UpdateEveryMinute
	UpdateStatic
)

func (u UpdateType) String() string {
	switch u {
	case UpdateEverySecond:
		return "everySecond"
	case UpdateEveryMinute:
		return "everyMinute"
	case UpdateStatic:
		return "static"
	default:
		return fmt.Sprintf("UpdateType(%d)", int(u))
	}
}

// UpdateTypeFromOrdinal maps a host enum ordinal. Unknown ordinals yield UpdateEverySecond.
func UpdateTypeFromOrdinal(ordinal int) UpdateType {
	switch UpdateType(ordinal) {
	case UpdateEverySecond, UpdateEveryMinute, UpdateStatic:
		return UpdateType(ordinal)
	}
	return UpdateEverySecond
}

func ParseUpdateType(name string) (UpdateType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "everysecond", "every_second", "every-second":
		return UpdateEverySecond, true
	case "everyminute", "every_minute", "every-minute":
		return UpdateEveryMinute, true
	case "static":
		return UpdateStatic, true
	}
	return UpdateEverySecond, false
}

// Clamp ranges for hand proportions, as fractions of the available radius.
const (
	MinHandLength = 0.1
	MaxHandLength = 1.0
	MinHandWidth  = 0.01
	MaxHandWidth  = 0.2
)

// DefaultNumeralsFontSize is used when no positive font size is configured.
const DefaultNumeralsFontSize = 24.0

var (
	Black = color.RGBA{A: 0xFF}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Red   = color.RGBA{R: 0xFF, A: 0xFF}
)

// Hand configures one clock hand.
type Hand struct {
	Show             bool
	Color            color.RGBA
	LengthPercentage float64
	WidthPercentage  float64
}

// StyleConfig is the complete visual configuration of a face.
// Build it with NewStyle so the proportion ranges hold.
type StyleConfig struct {
	Shape       Shape
	BorderWidth float64

	Numerals         NumeralsType
	NumeralsFontSize float64
	NumeralsColor    color.RGBA

	HourHand   Hand
	MinuteHand Hand
	SecondHand Hand

	BackgroundColor color.RGBA
	BorderColor     color.RGBA

	Update UpdateType
}

// DefaultStyle returns the stock face: round, no border, Arabic numerals,
// black hour and minute hands, red second hand, white background.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		Shape:            ShapeRound,
		BorderWidth:      0,
		Numerals:         NumeralsArabic,
		NumeralsFontSize: DefaultNumeralsFontSize,
		NumeralsColor:    Black,
		HourHand:         Hand{Show: true, Color: Black, LengthPercentage: 0.4, WidthPercentage: 0.05},
		MinuteHand:       Hand{Show: true, Color: Black, LengthPercentage: 0.6, WidthPercentage: 0.03},
		SecondHand:       Hand{Show: true, Color: Red, LengthPercentage: 0.8, WidthPercentage: 0.02},
		BackgroundColor:  White,
		BorderColor:      Black,
		Update:           UpdateEverySecond,
	}
}

// NewStyle returns s with every out-of-range value clamped and every
// unknown enum replaced by its default. Nothing is rejected.
func NewStyle(s StyleConfig) StyleConfig {
	return s.Clamped()
}

// Clamped normalizes the style. It is idempotent.
func (s StyleConfig) Clamped() StyleConfig {
	s.Shape = ShapeFromOrdinal(int(s.Shape))
	s.Numerals = NumeralsTypeFromOrdinal(int(s.Numerals))
	s.Update = UpdateTypeFromOrdinal(int(s.Update))
	if !(s.BorderWidth > 0) {
		s.BorderWidth = 0
	}
	if !(s.NumeralsFontSize > 0) {
		s.NumeralsFontSize = DefaultNumeralsFontSize
	}
	s.HourHand = s.HourHand.clamped()
	s.MinuteHand = s.MinuteHand.clamped()
	s.SecondHand = s.SecondHand.clamped()
	return s
}

func (h Hand) clamped() Hand {
	h.LengthPercentage = clamp(h.LengthPercentage, MinHandLength, MaxHandLength)
	h.WidthPercentage = clamp(h.WidthPercentage, MinHandWidth, MaxHandWidth)
	return h
}

// clamp maps NaN to lo.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v >= lo {
		return v
	}
	return lo
}
