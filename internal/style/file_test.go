package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/face"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "face.yml", `
shape: square
borderWidth: 10
numeralsType: roman
showSecondHand: false
hourHandLengthPercentage: 0.5
backgroundColor: "#F5EBDC"
`)
	s, issues, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
	if s.Shape != face.ShapeSquare || s.Numerals != face.NumeralsRoman || s.BorderWidth != 10 {
		t.Errorf("style = %+v", s)
	}
	if s.SecondHand.Show || s.HourHand.LengthPercentage != 0.5 {
		t.Errorf("hands = %+v / %+v", s.HourHand, s.SecondHand)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "face.toml", `
shape = "round"
numeralsType = 2
updateType = "static"
secondHandWidthPercentage = 0.5
`)
	s, issues, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Numerals != face.NumeralsNone || s.Update != face.UpdateStatic {
		t.Errorf("style = %+v", s)
	}
	if s.SecondHand.WidthPercentage != face.MaxHandWidth {
		t.Errorf("second width = %v, want clamped %v", s.SecondHand.WidthPercentage, face.MaxHandWidth)
	}
	if len(issues) != 1 || issues[0].Attr != AttrSecondHandWidthPercentage {
		t.Errorf("issues = %v", issues)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, _, err := LoadFile("face.json"); err == nil {
		t.Error("unsupported extension accepted")
	}
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
	bad := writeFile(t, "bad.yaml", "shape: [round\n")
	s, _, err := LoadFile(bad)
	if err == nil {
		t.Error("malformed yaml accepted")
	}
	if s != face.DefaultStyle() {
		t.Error("failed load should return the default style")
	}
}

func TestParseAttributesRejectsNesting(t *testing.T) {
	attrs, issues, err := ParseAttributes([]byte("shape: square\nhands:\n  hour: red\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if attrs[AttrShape] != "square" {
		t.Errorf("attrs = %v", attrs)
	}
	if len(issues) != 1 || issues[0].Attr != "hands" {
		t.Errorf("issues = %v", issues)
	}
}

func TestPresetsDecodeCleanly(t *testing.T) {
	names := assets.PresetNames()
	if len(names) < 3 {
		t.Fatalf("presets = %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, issues, err := LoadPreset(name)
			if err != nil {
				t.Fatal(err)
			}
			if len(issues) != 0 {
				t.Errorf("issues = %v", issues)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	s, _, err := Load("")
	if err != nil || s != face.DefaultStyle() {
		t.Errorf("Load(\"\") = %+v, %v", s, err)
	}

	s, _, err = Load("minimal")
	if err != nil {
		t.Fatal(err)
	}
	if s.Numerals != face.NumeralsNone || s.SecondHand.Show || s.Update != face.UpdateEveryMinute {
		t.Errorf("minimal preset = %+v", s)
	}

	path := writeFile(t, "mine.yaml", "shape: square\n")
	if s, _, err = Load(path); err != nil || s.Shape != face.ShapeSquare {
		t.Errorf("Load(file) = %+v, %v", s, err)
	}

	if _, _, err := Load("no-such-style"); err == nil {
		t.Error("unknown preset accepted")
	}
}
