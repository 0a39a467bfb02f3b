package style

import (
	"image/color"
	"strings"
	"testing"

	"github.com/rook-computer/clockface/internal/face"
)

func TestDecodeEmptyIsDefault(t *testing.T) {
	s, issues := Decode(nil)
	if s != face.DefaultStyle() {
		t.Errorf("Decode(nil) = %+v", s)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
}

func TestDecodeAttributes(t *testing.T) {
	s, issues := Decode(Attributes{
		AttrShape:                      "square",
		AttrBorderWidth:                "12",
		AttrNumeralsType:               "1",
		AttrNumeralsFontSize:           "30",
		AttrNumeralsColor:              "#3B2F2F",
		AttrShowSecondHand:             "false",
		AttrHourHandColor:              "blue",
		AttrMinuteHandLengthPercentage: "0.75",
		AttrUpdateType:                 "everyMinute",
	})
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if s.Shape != face.ShapeSquare || s.Numerals != face.NumeralsRoman || s.Update != face.UpdateEveryMinute {
		t.Errorf("enums = %v/%v/%v", s.Shape, s.Numerals, s.Update)
	}
	if s.BorderWidth != 12 || s.NumeralsFontSize != 30 {
		t.Errorf("sizes = %v/%v", s.BorderWidth, s.NumeralsFontSize)
	}
	if s.SecondHand.Show {
		t.Error("second hand should be hidden")
	}
	if s.HourHand.Color != (color.RGBA{B: 0xFF, A: 0xFF}) {
		t.Errorf("hour hand color = %v", s.HourHand.Color)
	}
	if s.MinuteHand.LengthPercentage != 0.75 {
		t.Errorf("minute length = %v", s.MinuteHand.LengthPercentage)
	}
}

func TestDecodeReportsIssues(t *testing.T) {
	tests := []struct {
		name   string
		attrs  Attributes
		attr   string
		reason string
		check  func(face.StyleConfig) bool
	}{
		{"unknown shape", Attributes{AttrShape: "oval"}, AttrShape, "unknown value",
			func(s face.StyleConfig) bool { return s.Shape == face.ShapeRound }},
		{"ordinal out of range", Attributes{AttrUpdateType: "3"}, AttrUpdateType, "unknown value",
			func(s face.StyleConfig) bool { return s.Update == face.UpdateEverySecond }},
		{"bad number", Attributes{AttrBorderWidth: "thick"}, AttrBorderWidth, "not a number",
			func(s face.StyleConfig) bool { return s.BorderWidth == 0 }},
		{"nan", Attributes{AttrSecondHandLengthPercentage: "NaN"}, AttrSecondHandLengthPercentage, "not a number",
			func(s face.StyleConfig) bool { return s.SecondHand.LengthPercentage == 0.8 }},
		{"bad bool", Attributes{AttrShowHourHand: "maybe"}, AttrShowHourHand, "not a boolean",
			func(s face.StyleConfig) bool { return s.HourHand.Show }},
		{"bad color", Attributes{AttrBackgroundColor: "#12"}, AttrBackgroundColor, "not a color",
			func(s face.StyleConfig) bool { return s.BackgroundColor == face.White }},
		{"clamped length", Attributes{AttrHourHandLengthPercentage: "5"}, AttrHourHandLengthPercentage, "clamped to 1",
			func(s face.StyleConfig) bool { return s.HourHand.LengthPercentage == 1 }},
		{"negative border", Attributes{AttrBorderWidth: "-3"}, AttrBorderWidth, "clamped to 0",
			func(s face.StyleConfig) bool { return s.BorderWidth == 0 }},
		{"unknown attribute", Attributes{"tickMarks": "true"}, "tickMarks", "unknown attribute",
			func(s face.StyleConfig) bool { return s == face.DefaultStyle() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, issues := Decode(tt.attrs)
			if len(issues) != 1 {
				t.Fatalf("issues = %v, want exactly one", issues)
			}
			if issues[0].Attr != tt.attr || !strings.Contains(issues[0].Reason, tt.reason) {
				t.Errorf("issue = %v, want %s: %s", issues[0], tt.attr, tt.reason)
			}
			if !tt.check(s) {
				t.Errorf("unexpected style %+v", s)
			}
		})
	}
}

func TestDecodeIssuesSorted(t *testing.T) {
	_, issues := Decode(Attributes{AttrShape: "x", AttrBorderColor: "x", "zzz": "1"})
	if len(issues) != 3 {
		t.Fatalf("issues = %v", issues)
	}
	for i := 1; i < len(issues); i++ {
		if issues[i-1].Attr > issues[i].Attr {
			t.Errorf("issues not sorted: %v", issues)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s := face.DefaultStyle()
	s.Shape = face.ShapeSquare
	s.BorderWidth = 6.5
	s.Numerals = face.NumeralsRoman
	s.MinuteHand.Show = false
	s.SecondHand.Color = color.RGBA{R: 0x40, A: 0x80}
	s.Update = face.UpdateStatic

	got, issues := Decode(Encode(s))
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}
