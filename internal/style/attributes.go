// Package style turns host-supplied attributes into a face.StyleConfig.
//
// Attributes come from a flat key/value source: a style file, a preset, CLI
// flags or query parameters. Decoding never fails. Anything unusable is
// reported as an Issue and replaced with its default.
package style

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rook-computer/clockface/internal/face"
)

// Attribute names, matching the widget's XML attributes.
const (
	AttrShape            = "shape"
	AttrBorderWidth      = "borderWidth"
	AttrNumeralsType     = "numeralsType"
	AttrNumeralsFontSize = "numeralsFontSize"
	AttrNumeralsColor    = "numeralsColor"
	AttrBackgroundColor  = "backgroundColor"
	AttrBorderColor      = "borderColor"
	AttrUpdateType       = "updateType"

	AttrShowHourHand             = "showHourHand"
	AttrHourHandColor            = "hourHandColor"
	AttrHourHandLengthPercentage = "hourHandLengthPercentage"
	AttrHourHandWidthPercentage  = "hourHandWidthPercentage"

	AttrShowMinuteHand             = "showMinuteHand"
	AttrMinuteHandColor            = "minuteHandColor"
	AttrMinuteHandLengthPercentage = "minuteHandLengthPercentage"
	AttrMinuteHandWidthPercentage  = "minuteHandWidthPercentage"

	AttrShowSecondHand             = "showSecondHand"
	AttrSecondHandColor            = "secondHandColor"
	AttrSecondHandLengthPercentage = "secondHandLengthPercentage"
	AttrSecondHandWidthPercentage  = "secondHandWidthPercentage"
)

// Attributes maps attribute names to their textual values.
type Attributes map[string]string

// Issue describes an attribute that was ignored or adjusted.
type Issue struct {
	Attr   string `json:"attr"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q: %s", i.Attr, i.Value, i.Reason)
}

type decoder struct {
	attrs  Attributes
	issues []Issue
	seen   map[string]bool
}

// Decode builds a style from attrs on top of face.DefaultStyle. The result
// is always usable; issues are sorted by attribute name.
func Decode(attrs Attributes) (face.StyleConfig, []Issue) {
	d := &decoder{attrs: attrs, seen: map[string]bool{}}
	s := face.DefaultStyle()

	d.enum(AttrShape, func(v string) bool {
		shape, ok := face.ParseShape(v)
		if !ok {
			var n int
			if n, ok = ordinal(v, 2); ok {
				shape = face.ShapeFromOrdinal(n)
			}
		}
		if ok {
			s.Shape = shape
		}
		return ok
	})
	d.enum(AttrNumeralsType, func(v string) bool {
		numerals, ok := face.ParseNumeralsType(v)
		if !ok {
			var n int
			if n, ok = ordinal(v, 3); ok {
				numerals = face.NumeralsTypeFromOrdinal(n)
			}
		}
		if ok {
			s.Numerals = numerals
		}
		return ok
	})
	d.enum(AttrUpdateType, func(v string) bool {
		update, ok := face.ParseUpdateType(v)
		if !ok {
			var n int
			if n, ok = ordinal(v, 3); ok {
				update = face.UpdateTypeFromOrdinal(n)
			}
		}
		if ok {
			s.Update = update
		}
		return ok
	})

	d.float(AttrBorderWidth, &s.BorderWidth)
	d.float(AttrNumeralsFontSize, &s.NumeralsFontSize)
	d.rgba(AttrNumeralsColor, &s.NumeralsColor)
	d.rgba(AttrBackgroundColor, &s.BackgroundColor)
	d.rgba(AttrBorderColor, &s.BorderColor)

	d.hand(&s.HourHand, AttrShowHourHand, AttrHourHandColor, AttrHourHandLengthPercentage, AttrHourHandWidthPercentage)
	d.hand(&s.MinuteHand, AttrShowMinuteHand, AttrMinuteHandColor, AttrMinuteHandLengthPercentage, AttrMinuteHandWidthPercentage)
	d.hand(&s.SecondHand, AttrShowSecondHand, AttrSecondHandColor, AttrSecondHandLengthPercentage, AttrSecondHandWidthPercentage)

	clamped := face.NewStyle(s)
	d.reportAdjustments(s, clamped)

	for name, v := range attrs {
		if !d.seen[name] {
			d.issue(name, v, "unknown attribute")
		}
	}
	sort.SliceStable(d.issues, func(i, j int) bool { return d.issues[i].Attr < d.issues[j].Attr })
	return clamped, d.issues
}

// Encode is the inverse of Decode for a normalized style.
func Encode(s face.StyleConfig) Attributes {
	a := Attributes{
		AttrShape:            s.Shape.String(),
		AttrBorderWidth:      formatFloat(s.BorderWidth),
		AttrNumeralsType:     s.Numerals.String(),
		AttrNumeralsFontSize: formatFloat(s.NumeralsFontSize),
		AttrNumeralsColor:    FormatColor(s.NumeralsColor),
		AttrBackgroundColor:  FormatColor(s.BackgroundColor),
		AttrBorderColor:      FormatColor(s.BorderColor),
		AttrUpdateType:       s.Update.String(),
	}
	encodeHand(a, s.HourHand, AttrShowHourHand, AttrHourHandColor, AttrHourHandLengthPercentage, AttrHourHandWidthPercentage)
	encodeHand(a, s.MinuteHand, AttrShowMinuteHand, AttrMinuteHandColor, AttrMinuteHandLengthPercentage, AttrMinuteHandWidthPercentage)
	encodeHand(a, s.SecondHand, AttrShowSecondHand, AttrSecondHandColor, AttrSecondHandLengthPercentage, AttrSecondHandWidthPercentage)
	return a
}

func encodeHand(a Attributes, h face.Hand, show, col, length, width string) {
	a[show] = strconv.FormatBool(h.Show)
	a[col] = FormatColor(h.Color)
	a[length] = formatFloat(h.LengthPercentage)
	a[width] = formatFloat(h.WidthPercentage)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// ordinal accepts the host's integer enum values below n.
func ordinal(v string, n int) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

func (d *decoder) lookup(name string) (string, bool) {
	d.seen[name] = true
	v, ok := d.attrs[name]
	return v, ok
}

func (d *decoder) issue(name, value, reason string) {
	d.issues = append(d.issues, Issue{Attr: name, Value: value, Reason: reason})
}

func (d *decoder) enum(name string, apply func(string) bool) {
	v, ok := d.lookup(name)
	if !ok {
		return
	}
	if !apply(v) {
		d.issue(name, v, "unknown value, using default")
	}
}

func (d *decoder) float(name string, dst *float64) {
	v, ok := d.lookup(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		d.issue(name, v, "not a number, using default")
		return
	}
	*dst = f
}

func (d *decoder) flag(name string, dst *bool) {
	v, ok := d.lookup(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		d.issue(name, v, "not a boolean, using default")
		return
	}
	*dst = b
}

func (d *decoder) rgba(name string, dst *color.RGBA) {
	v, ok := d.lookup(name)
	if !ok {
		return
	}
	c, err := ParseColor(v)
	if err != nil {
		d.issue(name, v, "not a color, using default")
		return
	}
	*dst = c
}

func (d *decoder) hand(h *face.Hand, show, col, length, width string) {
	d.flag(show, &h.Show)
	d.rgba(col, &h.Color)
	d.float(length, &h.LengthPercentage)
	d.float(width, &h.WidthPercentage)
}

// reportAdjustments records every value NewStyle changed.
func (d *decoder) reportAdjustments(raw, clamped face.StyleConfig) {
	adjusted := func(name string, from, to float64) {
		if from != to {
			d.issue(name, d.attrs[name], "clamped to "+formatFloat(to))
		}
	}
	adjusted(AttrBorderWidth, raw.BorderWidth, clamped.BorderWidth)
	adjusted(AttrNumeralsFontSize, raw.NumeralsFontSize, clamped.NumeralsFontSize)
	adjusted(AttrHourHandLengthPercentage, raw.HourHand.LengthPercentage, clamped.HourHand.LengthPercentage)
	adjusted(AttrHourHandWidthPercentage, raw.HourHand.WidthPercentage, clamped.HourHand.WidthPercentage)
	adjusted(AttrMinuteHandLengthPercentage, raw.MinuteHand.LengthPercentage, clamped.MinuteHand.LengthPercentage)
	adjusted(AttrMinuteHandWidthPercentage, raw.MinuteHand.WidthPercentage, clamped.MinuteHand.WidthPercentage)
	adjusted(AttrSecondHandLengthPercentage, raw.SecondHand.LengthPercentage, clamped.SecondHand.LengthPercentage)
	adjusted(AttrSecondHandWidthPercentage, raw.SecondHand.WidthPercentage, clamped.SecondHand.WidthPercentage)
}
